package approvalstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"solar-projects-backend/models"
	workrequestapimodels "solar-projects-backend/models/api/work-request"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	CreateRecord(rec dbmodels.WorkRequestApproval) (string, error)
	// CloseActiveRecords stamps ProcessedAt on every active record of
	// the request and drops the active flag.
	CloseActiveRecords(workRequestID string) error
	GetActiveRecord(workRequestID string) (rec *dbmodels.WorkRequestApproval, err error)
	GetHistory(workRequestID string) (list []dbmodels.WorkRequestApproval, err error)
	GetStatistics(since *time.Time) (stats workrequestapimodels.ApprovalStatistics, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateRecord(rec dbmodels.WorkRequestApproval) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) CloseActiveRecords(workRequestID string) error {
	now := time.Now()
	return i.db.Model(&dbmodels.WorkRequestApproval{}).
		Where("work_request_id = ? AND is_active = true", workRequestID).
		Updates(map[string]interface{}{
			"is_active":    false,
			"processed_at": now,
		}).
		Error
}

func (i impl) GetActiveRecord(workRequestID string) (rec *dbmodels.WorkRequestApproval, err error) {
	err = i.db.Model(dbmodels.WorkRequestApproval{}).
		Where("work_request_id = ? AND is_active = true", workRequestID).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetHistory(workRequestID string) (list []dbmodels.WorkRequestApproval, err error) {
	err = i.db.Model(dbmodels.WorkRequestApproval{}).
		Where("work_request_id = ?", workRequestID).
		Preload(clause.Associations).
		Order("created_at").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}

func (i impl) GetStatistics(since *time.Time) (stats workrequestapimodels.ApprovalStatistics, err error) {
	base := func() *gorm.DB {
		tx := i.db.Model(dbmodels.WorkRequest{})
		if since != nil {
			tx = tx.Where("submitted_for_approval_date >= ?", *since)
		}
		return tx
	}
	err = base().Where("submitted_for_approval_date IS NOT NULL").Count(&stats.TotalSubmitted).Error
	if err != nil {
		return stats, err
	}
	err = base().Where("status = ?", models.WRStatusPendingManagerApproval).Count(&stats.PendingManager).Error
	if err != nil {
		return stats, err
	}
	err = base().Where("status = ?", models.WRStatusPendingAdminApproval).Count(&stats.PendingAdmin).Error
	if err != nil {
		return stats, err
	}
	err = base().Where("status IN ?", []models.WorkRequestStatus{
		models.WRStatusApproved,
		models.WRStatusInProgress,
		models.WRStatusCompleted,
	}).Count(&stats.Approved).Error
	if err != nil {
		return stats, err
	}
	err = base().Where("status = ?", models.WRStatusRejected).Count(&stats.Rejected).Error
	if err != nil {
		return stats, err
	}
	err = base().Where("is_auto_approved = true").Count(&stats.AutoApproved).Error
	if err != nil {
		return stats, err
	}

	// Average decision time over requests that fully cleared the chain.
	row := base().
		Select("COALESCE(AVG(EXTRACT(EPOCH FROM (COALESCE(admin_approval_date, manager_approval_date) - submitted_for_approval_date)) / 3600), 0)").
		Where("status IN ? AND submitted_for_approval_date IS NOT NULL", []models.WorkRequestStatus{
			models.WRStatusApproved,
			models.WRStatusInProgress,
			models.WRStatusCompleted,
		}).
		Row()
	err = row.Scan(&stats.AvgApprovalHours)
	if err != nil {
		return stats, err
	}
	return stats, nil
}
