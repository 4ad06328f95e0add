package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir             string        `mapstructure:"data_dir"`
	OrdersFile          string        `mapstructure:"orders_file"`
	MenuFile            string        `mapstructure:"menu_file"`
	FeedbackFile        string        `mapstructure:"feedback_file"`
	CashierPasswordFile string        `mapstructure:"cashier_password_file"`
	ChefPasswordFile    string        `mapstructure:"chef_password_file"`
	MaxOrders           int           `mapstructure:"max_orders"`
	FirstOrderID        int64         `mapstructure:"first_order_id"`
	PopularCategory     string        `mapstructure:"popular_category"`
	LogLevel            string        `mapstructure:"log_level"`
	LogPretty           bool          `mapstructure:"log_pretty"`
	Kafka               KafkaConfig   `mapstructure:"kafka"`
	Archive             ArchiveConfig `mapstructure:"archive"`
}

type KafkaConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	OrderTopic string `mapstructure:"order_topic"`
}

type ArchiveConfig struct {
	Name         string `mapstructure:"name"`
	MigrationDir string `mapstructure:"migration_dir"`
	DatabaseDSN  string `mapstructure:"dsn"`
}

var DefaultConfig = Config{
	DataDir:             ".",
	OrdersFile:          "orders.txt",
	MenuFile:            "menu.txt",
	FeedbackFile:        "feedbacks.txt",
	CashierPasswordFile: "password.txt",
	ChefPasswordFile:    "chef_password.txt",
	MaxOrders:           60,
	FirstOrderID:        1001,
	PopularCategory:     "food",
	LogLevel:            "info",
	LogPretty:           true,
	Kafka: KafkaConfig{
		Enabled:    false,
		Host:       "localhost:29092",
		OrderTopic: "POS_ORDER_TOPIC",
	},
	Archive: ArchiveConfig{
		Name:         "archive",
		MigrationDir: "migration/archive",
		DatabaseDSN:  "root:1@tcp(localhost:3306)/pos_archive?parseTime=true",
	},
}

// Load overlays DefaultConfig with the optional file at path and with
// POS_ prefixed environment variables (POS_KAFKA_ENABLED, POS_DATA_DIR, ...).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig)

	v.SetEnvPrefix("pos")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("orders_file", d.OrdersFile)
	v.SetDefault("menu_file", d.MenuFile)
	v.SetDefault("feedback_file", d.FeedbackFile)
	v.SetDefault("cashier_password_file", d.CashierPasswordFile)
	v.SetDefault("chef_password_file", d.ChefPasswordFile)
	v.SetDefault("max_orders", d.MaxOrders)
	v.SetDefault("first_order_id", d.FirstOrderID)
	v.SetDefault("popular_category", d.PopularCategory)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_pretty", d.LogPretty)
	v.SetDefault("kafka.enabled", d.Kafka.Enabled)
	v.SetDefault("kafka.host", d.Kafka.Host)
	v.SetDefault("kafka.order_topic", d.Kafka.OrderTopic)
	v.SetDefault("archive.name", d.Archive.Name)
	v.SetDefault("archive.migration_dir", d.Archive.MigrationDir)
	v.SetDefault("archive.dsn", d.Archive.DatabaseDSN)
}

func (c Config) OrdersPath() string { return filepath.Join(c.DataDir, c.OrdersFile) }

func (c Config) MenuPath() string { return filepath.Join(c.DataDir, c.MenuFile) }

func (c Config) FeedbackPath() string { return filepath.Join(c.DataDir, c.FeedbackFile) }

func (c Config) CashierPasswordPath() string {
	return filepath.Join(c.DataDir, c.CashierPasswordFile)
}

func (c Config) ChefPasswordPath() string {
	return filepath.Join(c.DataDir, c.ChefPasswordFile)
}
