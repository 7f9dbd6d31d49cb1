package initializers

import (
	"context"
	"time"

	"pmfin-backend/config"
	"pmfin-backend/db"
	"pmfin-backend/fiberlog"
	"pmfin-backend/lib/analytics"
	billinghandler "pmfin-backend/lib/billing"
	categoryprovider "pmfin-backend/lib/dicts/category"
	vendorprovider "pmfin-backend/lib/dicts/supplier"
	taxprovider "pmfin-backend/lib/dicts/tax"
	"pmfin-backend/lib/events"
	xlsexport "pmfin-backend/lib/export/xls"
	invoicehandler "pmfin-backend/lib/invoice"
	overdueworker "pmfin-backend/lib/invoice/overdue-worker"
	notificationhandler "pmfin-backend/lib/notification"
	projecthandler "pmfin-backend/lib/project"
	"pmfin-backend/lib/rbac"
	reimbursementhandler "pmfin-backend/lib/reimbursement"
	taskhandler "pmfin-backend/lib/task"
	teamhandler "pmfin-backend/lib/team"
	usershandler "pmfin-backend/lib/users"
	connectionhub "pmfin-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger(config.Conf.App.LogLevel)
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	events.NewProducer(config.Conf.Kafka.Brokers, config.Conf.Kafka.Topic)
	connectionhub.Init()
	rbac.NewHandler()
	xlsexport.NewHandler()

	// order matters: handlers capture the instances they depend on
	usershandler.NewHandler(db.DB)
	notificationhandler.NewHandler(db.DB)
	vendorprovider.NewHandler(db.DB)
	taxprovider.NewHandler(db.DB)
	categoryprovider.NewHandler(db.DB)
	teamhandler.NewHandler(db.DB)
	projecthandler.NewHandler(db.DB)
	taskhandler.NewHandler(db.DB)
	invoicehandler.NewHandler(db.DB)
	billinghandler.NewHandler(db.DB)
	reimbursementhandler.NewHandler(db.DB)
	analytics.NewHandler(db.DB)

	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	overdueworker.StartWorker(ctx, time.Duration(config.Conf.Workers.OverdueIntervalSec)*time.Second)
}
