package dbmodels

import (
	"time"

	"github.com/lib/pq"
	"solar-projects-backend/models"
)

// WorkRequestNotification is the durable subset of dispatched events.
// Ephemeral events (dashboard pushes, progress updates) are never stored;
// work-request notifications survive so an offline recipient gets them on
// reconnect and can mark them read.
type WorkRequestNotification struct {
	BaseModel
	WorkRequestID string                    `gorm:"type:varchar(36);index"`
	WorkRequest   *WorkRequest              `gorm:"foreignKey:WorkRequestID"`
	RecipientID   string                    `gorm:"type:varchar(36);index"`
	SenderID      *string                   `gorm:"type:varchar(36)"`
	Type          models.NotificationType   `gorm:"type:varchar(50)"`
	Status        models.NotificationStatus `gorm:"type:varchar(50);index"`
	Subject       string                    `gorm:"type:varchar(255)"`
	Message       string
	TargetGroups  pq.StringArray `gorm:"type:text[]"`
	SentAt        *time.Time
	ReadAt        *time.Time
}

func (n WorkRequestNotification) IsRead() bool {
	return n.ReadAt != nil
}
