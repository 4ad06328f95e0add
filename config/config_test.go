package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, conf)
}

func Test_Load_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos.yaml")
	content := "data_dir: /var/pos\nmax_orders: 10\nkafka:\n  enabled: true\n  host: broker:9092\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("POS_POPULAR_CATEGORY", "drink")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/pos", conf.DataDir)
	assert.Equal(t, 10, conf.MaxOrders)
	assert.True(t, conf.Kafka.Enabled)
	assert.Equal(t, "broker:9092", conf.Kafka.Host)
	assert.Equal(t, DefaultConfig.Kafka.OrderTopic, conf.Kafka.OrderTopic)
	assert.Equal(t, "drink", conf.PopularCategory)
	assert.Equal(t, filepath.Join("/var/pos", "orders.txt"), conf.OrdersPath())
}

func Test_Load_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
