package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/unmoha/restaurant-customer-order-management/config"
	"github.com/unmoha/restaurant-customer-order-management/console"
	"github.com/unmoha/restaurant-customer-order-management/kafka"
	"github.com/unmoha/restaurant-customer-order-management/ledger_event"
	"github.com/unmoha/restaurant-customer-order-management/model"
	"github.com/unmoha/restaurant-customer-order-management/service/archive"
	"github.com/unmoha/restaurant-customer-order-management/service/order"
	"github.com/unmoha/restaurant-customer-order-management/service/report"
)

const versionTimeFormat = "20060102150405"

var configPath string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "pos",
		Short:         "restaurant point-of-sale console",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConsole,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml)")
	rootCmd.AddCommand(
		consoleCommand(),
		ordersCommand(),
		reportCommand(),
		popularCommand(),
		archiveCommand(),
		eventsCommand(),
		createMigrationCommand(),
		migrateCommand(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadApp(cmd *cobra.Command) (*app, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), conf)
}

func consoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "start the interactive role menus",
		Args:  cobra.NoArgs,
		RunE:  runConsole,
	}
}

func runConsole(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	filter, label := a.popularFilter()
	return console.NewStdio(console.Deps{
		Orders:       a.orders,
		Menu:         a.menu,
		Feedback:     a.feedback,
		Reports:      a.reports,
		Gate:         a.gate,
		Popular:      filter,
		PopularLabel: label,
		Log:          a.log,
	}).Run(cmd.Context())
}

func ordersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "inspect the order ledger",
	}
	var sorted bool
	list := &cobra.Command{
		Use:   "list",
		Short: "print the ledger in its stored order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			orders := a.orders.List()
			if sorted {
				orders = order.MergeSort(orders, order.ByTimestamp)
			}
			printOrders(cmd, orders)
			return nil
		},
	}
	list.Flags().BoolVar(&sorted, "sorted", false, "print by creation time without rewriting the file")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "sort",
			Short: "sort the ledger by creation time and save it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := loadApp(cmd)
				if err != nil {
					return err
				}
				defer a.close()
				if err := a.orders.SortByTimestamp(cmd.Context()); err != nil {
					return err
				}
				printOrders(cmd, a.orders.List())
				return nil
			},
		},
	)
	return cmd
}

func printOrders(cmd *cobra.Command, orders []model.Order) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s%-20s%-20s%-8s%-10s%s\n", "ID", "Customer", "Item", "Qty", "Total", "Time")
	for _, o := range orders {
		fmt.Fprintf(out, "%-6d%-20s%-20s%-8s%-10s%s\n",
			o.ID, o.Customer, o.Item, o.Quantity.StringFixed(2), o.Total.StringFixed(2), o.Timestamp)
	}
}

func reportCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "print the daily sales report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if date == "" {
				date = report.Today(time.Now())
			}
			r := a.reports.DailyReport(date)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\nTotal Orders: %d\nTotal Revenue: %s birr\n",
				r.Date, r.TotalOrders, r.TotalRevenue.StringFixed(2))
			for _, name := range r.Names() {
				sales := r.Items[name]
				fmt.Fprintf(out, "%-20s%-10s%s\n", name, sales.Quantity.StringFixed(2), sales.Revenue.StringFixed(2))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "report day, YYYY-MM-DD (default today)")
	return cmd
}

func popularCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "print the most ordered item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			filter, label := a.popularFilter()
			if all {
				filter, label = report.AnyCategory, "Item"
			}
			best, ok := a.reports.MostPopular(filter)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Most Popular %s: (No valid orders)\n", label)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Most Popular %s: %s (Sold %s units)\n", label, best.Name, best.Quantity.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "count every category")
	return cmd
}

func archiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "copy the ledger into the MySQL sales archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			db, err := sqlx.ConnectContext(cmd.Context(), "mysql", a.conf.Archive.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := archive.NewService(archive.NewRepo(db), a.orders, a.log)
			n, err := svc.Archive(cmd.Context())
			if err != nil {
				return err
			}
			total, err := svc.Archived(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d orders (%d in archive)\n", n, total)
			return nil
		},
	}
}

func eventsCommand() *cobra.Command {
	var stopAfter time.Duration
	tail := &cobra.Command{
		Use:   "tail",
		Short: "print ledger events from the order topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}
			consumer, err := kafka.NewConsumer(conf.Kafka.Host, conf.Kafka.OrderTopic)
			if err != nil {
				return err
			}
			defer consumer.Close()
			return tailEvents(cmd, consumer, stopAfter)
		},
	}
	tail.Flags().DurationVar(&stopAfter, "for", 0, "stop after this long (0 runs until interrupted)")

	cmd := &cobra.Command{
		Use:   "events",
		Short: "ledger event stream",
	}
	cmd.AddCommand(tail)
	return cmd
}

func tailEvents(cmd *cobra.Command, consumer kafka.IConsumer, stopAfter time.Duration) error {
	ctx := cmd.Context()
	var timeout <-chan time.Time
	if stopAfter > 0 {
		timeout = time.After(stopAfter)
	}
	out := cmd.OutOrStdout()
	for {
		select {
		case msg := <-consumer.Messages():
			var event ledger_event.OrderEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping offset %d: %v\n", msg.Offset, err)
				continue
			}
			fmt.Fprintf(out, "%s %-14s order=%d item=%q total=%s\n",
				event.OccurredAt, event.Kind, event.OrderID, event.Item, event.Total)
		case err := <-consumer.Errors():
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to consume message: %v\n", err)
		case <-timeout:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func createMigrationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-create [service] [name]",
		Short: "create sql migrations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}
			now := time.Now()
			version := now.Format(versionTimeFormat)
			service := args[0]
			name := args[1]
			migrationDir, _, err := getMigrationAndDatabase(service, conf)
			if err != nil {
				return err
			}
			up := fmt.Sprintf("%s/%s_%s.up.sql", migrationDir, version, name)
			down := fmt.Sprintf("%s/%s_%s.down.sql", migrationDir, version, name)

			if err := os.WriteFile(up, []byte{}, 0644); err != nil {
				return err
			}
			if err := os.WriteFile(down, []byte{}, 0644); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Created SQL up script:", up)
			fmt.Fprintln(cmd.OutOrStdout(), "Created SQL down script:", down)
			return nil
		},
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-up [service]",
		Short: "migrate all the way up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}
			migrationDir, databaseDSN, err := getMigrationAndDatabase(args[0], conf)
			if err != nil {
				return err
			}
			m, err := migrate.New(
				fmt.Sprintf("file://%s", migrationDir),
				fmt.Sprintf("mysql://%s", databaseDSN),
			)
			if err != nil {
				return err
			}
			defer m.Close()

			err = m.Up()
			if err == migrate.ErrNoChange {
				fmt.Fprintln(cmd.OutOrStdout(), "No change in migration")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrated up")
			return nil
		},
	}
}

func getMigrationAndDatabase(service string, conf config.Config) (string, string, error) {
	if service == conf.Archive.Name {
		return conf.Archive.MigrationDir, conf.Archive.DatabaseDSN, nil
	}
	return "", "", fmt.Errorf("unknown service %q", service)
}
