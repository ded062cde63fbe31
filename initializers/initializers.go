package initializers

import (
	"context"
	"time"

	"solar-projects-backend/config"
	"solar-projects-backend/fiberlog"
	authhandler "solar-projects-backend/lib/auth"
	dailyreporthandler "solar-projects-backend/lib/daily-report"
	pdfexport "solar-projects-backend/lib/export/pdf"
	xlsexport "solar-projects-backend/lib/export/xls"
	notificationhandler "solar-projects-backend/lib/notification"
	projecthandler "solar-projects-backend/lib/project"
	dashboardworker "solar-projects-backend/lib/project/dashboard-worker"
	workrequesthandler "solar-projects-backend/lib/work-request"
	approvalhandler "solar-projects-backend/lib/work-request/approval"
	reminderworker "solar-projects-backend/lib/work-request/reminder-worker"
	connectionhub "solar-projects-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	InitRedis(ctx)
	connectionhub.Init()
	notificationhandler.NewHandler()
	authhandler.NewHandler()
	xlsexport.NewHandler()
	pdfexport.NewHandler()
	projecthandler.NewHandler()
	workrequesthandler.NewHandler()
	approvalhandler.NewHandler()
	dailyreporthandler.NewHandler()
	go initWorkers(ctx)
}

// workers start with a gap between them to spread the load
func initWorkers(ctx context.Context) {
	reminderworker.StartWorker(ctx)
	if makeTimeGap(ctx) {
		dashboardworker.StartWorker(ctx)
	}
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
