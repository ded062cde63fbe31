package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "solar-projects-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "migration failed for User")
	}
	if err := DB.AutoMigrate(&dbmodels.Project{}); err != nil {
		return errors.Wrap(err, "migration failed for Project")
	}
	if err := DB.AutoMigrate(&dbmodels.ProjectTask{}); err != nil {
		return errors.Wrap(err, "migration failed for ProjectTask")
	}
	if err := DB.AutoMigrate(&dbmodels.DailyReport{}); err != nil {
		return errors.Wrap(err, "migration failed for DailyReport")
	}
	if err := DB.AutoMigrate(&dbmodels.DailyReportAttachment{}); err != nil {
		return errors.Wrap(err, "migration failed for DailyReportAttachment")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkRequest{}); err != nil {
		return errors.Wrap(err, "migration failed for WorkRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkRequestApproval{}); err != nil {
		return errors.Wrap(err, "migration failed for WorkRequestApproval")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkRequestNotification{}); err != nil {
		return errors.Wrap(err, "migration failed for WorkRequestNotification")
	}
	log.Info("migrations finished")
	return nil
}
