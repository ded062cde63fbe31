package reminderworker

import (
	"context"
	"time"

	"solar-projects-backend/config"
	baseworker "solar-projects-backend/lib/utils/base-worker"
	"solar-projects-backend/lib/utils/lock"
	"solar-projects-backend/lib/work-request/approval"
)

const lockKey = "approval-reminder-scan"

func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Approval.ReminderIntervalMin) * time.Minute
	i := &impl{
		BaseImpl: *baseworker.NewInstance("ApprovalReminderWorker", 30*time.Second, interval),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

// handle scans for stale pending approvals. The lock keeps overlapping
// scans from double-sending when a run outlives the interval.
func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	ok, err := lock.WithDelay(ctx, lockKey, 5*time.Second, func() error {
		sent, err := approval.Instance.SendApprovalReminders()
		if err != nil {
			return err
		}
		if sent > 0 {
			logger.WithField("reminders_sent", sent).Info("approval reminders dispatched")
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("approval reminder scan failed")
		return
	}
	if !ok {
		logger.Warn("previous reminder scan still running, skipped")
	}
}
