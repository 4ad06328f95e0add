package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/unmoha/restaurant-customer-order-management/config"
	"github.com/unmoha/restaurant-customer-order-management/kafka"
	"github.com/unmoha/restaurant-customer-order-management/logger"
	"github.com/unmoha/restaurant-customer-order-management/model"
	"github.com/unmoha/restaurant-customer-order-management/service/auth"
	"github.com/unmoha/restaurant-customer-order-management/service/feedback"
	"github.com/unmoha/restaurant-customer-order-management/service/menu"
	"github.com/unmoha/restaurant-customer-order-management/service/order"
	"github.com/unmoha/restaurant-customer-order-management/service/report"
)

type app struct {
	conf     config.Config
	log      zerolog.Logger
	producer kafka.IProducer
	menu     menu.IService
	orders   order.IService
	feedback feedback.IService
	reports  report.IService
	gate     auth.Gate
}

func newApp(ctx context.Context, conf config.Config) (*app, error) {
	log := logger.New(conf.LogLevel, conf.LogPretty)
	if err := os.MkdirAll(conf.DataDir, 0755); err != nil {
		return nil, model.IOError("mkdir", conf.DataDir, err)
	}

	var producer kafka.IProducer = kafka.NopProducer{}
	if conf.Kafka.Enabled {
		p, err := kafka.NewProducer(conf.Kafka.Host, conf.Kafka.OrderTopic)
		if err != nil {
			log.Warn().Err(err).Str("host", conf.Kafka.Host).Msg("event publishing disabled")
		} else {
			producer = p
		}
	}

	catalog, err := menu.NewService(ctx, menu.NewRepo(conf.MenuPath()), log)
	if err != nil {
		return nil, err
	}
	orders, err := order.NewService(ctx, order.NewRepo(conf.OrdersPath()), catalog, producer, log, order.Options{
		MaxOrders:    conf.MaxOrders,
		FirstOrderID: conf.FirstOrderID,
	})
	if err != nil {
		return nil, err
	}
	fb, err := feedback.NewService(ctx, feedback.NewRepo(conf.FeedbackPath()), orders, log, nil)
	if err != nil {
		return nil, err
	}
	gate, err := auth.NewFileGate(map[auth.Role]string{
		auth.RoleCashier: conf.CashierPasswordPath(),
		auth.RoleChef:    conf.ChefPasswordPath(),
	}, log)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("data_dir", absPath(conf.DataDir)).Msg("stores loaded")
	return &app{
		conf:     conf,
		log:      log,
		producer: producer,
		menu:     catalog,
		orders:   orders,
		feedback: fb,
		reports:  report.NewService(orders),
		gate:     gate,
	}, nil
}

// popularFilter maps the popular_category setting to a report filter. Only
// "all" counts every category; anything unrecognised counts food.
func (a *app) popularFilter() (report.Filter, string) {
	switch a.conf.PopularCategory {
	case "all":
		return report.AnyCategory, "Item"
	case string(model.CategoryDrink):
		return report.CategoryFilter(model.CategoryDrink), "Drink"
	default:
		return report.CategoryFilter(model.CategoryFood), "Food"
	}
}

func (a *app) close() {
	if err := a.producer.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close producer")
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
