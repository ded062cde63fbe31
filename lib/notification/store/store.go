package notificationstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"solar-projects-backend/models"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkRequestNotification) (string, error)
	ListPendingByRecipient(recipientID string) ([]dbmodels.WorkRequestNotification, error)
	MarkSent(ids []string) error
	// MarkRead updates at most one row and reports whether it changed.
	MarkRead(notificationID, recipientID string) (updated bool, err error)
	MarkAllRead(recipientID string) (int64, error)
	GetList(recipientID string, unreadOnly bool, page, limit int) (list []dbmodels.WorkRequestNotification, rowCount int64, err error)
	UnreadCount(recipientID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkRequestNotification) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListPendingByRecipient(recipientID string) (list []dbmodels.WorkRequestNotification, err error) {
	err = i.db.Model(dbmodels.WorkRequestNotification{}).
		Where("recipient_id = ? AND status = ?", recipientID, models.NotificationStatusPending).
		Order("created_at").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkSent(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	return i.db.Model(&dbmodels.WorkRequestNotification{}).
		Where("id IN ? AND status = ?", ids, models.NotificationStatusPending).
		Updates(map[string]interface{}{
			"status":  models.NotificationStatusSent,
			"sent_at": now,
		}).
		Error
}

func (i impl) MarkRead(notificationID, recipientID string) (bool, error) {
	now := time.Now()
	tx := i.db.Model(&dbmodels.WorkRequestNotification{}).
		Where("id = ? AND recipient_id = ? AND read_at IS NULL", notificationID, recipientID).
		Updates(map[string]interface{}{
			"status":  models.NotificationStatusRead,
			"read_at": now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) MarkAllRead(recipientID string) (int64, error) {
	now := time.Now()
	tx := i.db.Model(&dbmodels.WorkRequestNotification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Updates(map[string]interface{}{
			"status":  models.NotificationStatusRead,
			"read_at": now,
		})
	return tx.RowsAffected, tx.Error
}

func (i impl) GetList(recipientID string, unreadOnly bool, page, limit int) (list []dbmodels.WorkRequestNotification, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.WorkRequestNotification{}).
		Where("recipient_id = ?", recipientID)
	if unreadOnly {
		tx = tx.Where("read_at IS NULL")
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err = tx.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) UnreadCount(recipientID string) (count int64, err error) {
	err = i.db.Model(dbmodels.WorkRequestNotification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
