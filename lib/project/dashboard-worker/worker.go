package dashboardworker

import (
	"context"
	"time"

	"solar-projects-backend/config"
	"solar-projects-backend/lib/notification"
	"solar-projects-backend/lib/notification/audience"
	"solar-projects-backend/lib/project"
	baseworker "solar-projects-backend/lib/utils/base-worker"
	"solar-projects-backend/models"
)

// StartWorker periodically recomputes dashboard statistics and pushes
// them to managers, administrators and map viewers. The push is
// ephemeral, nothing is stored.
func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Dashboard.StatsIntervalMin) * time.Minute
	i := &impl{
		BaseImpl: *baseworker.NewInstance("DashboardStatsWorker", time.Minute, interval),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	stats, err := project.Instance.GetDashboardStats()
	if err != nil {
		logger.WithError(err).Error("dashboard stats computation failed")
		return
	}
	err = notification.Instance.Dispatch(notification.DispatchEvent{
		Event: audience.Event{
			Type: models.NotifyDashboardStats,
		},
		Payload: stats,
	})
	if err != nil {
		logger.WithError(err).Error("dashboard stats dispatch failed")
		return
	}
	logger.Debug("dashboard stats pushed")
}
