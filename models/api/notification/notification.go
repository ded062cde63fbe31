package notificationapimodels

import (
	"time"

	"solar-projects-backend/models"
	apimodels "solar-projects-backend/models/api"
	dbmodels "solar-projects-backend/models/db"
)

type NotificationView struct {
	ID            string                    `json:"id"`
	WorkRequestID string                    `json:"work_request_id"`
	Type          models.NotificationType   `json:"type"`
	Status        models.NotificationStatus `json:"status"`
	Subject       string                    `json:"subject"`
	Message       string                    `json:"message"`
	SentAt        *time.Time                `json:"sent_at"`
	ReadAt        *time.Time                `json:"read_at"`
	CreatedAt     time.Time                 `json:"created_at"`
}

func ConvertToView(rec dbmodels.WorkRequestNotification) NotificationView {
	return NotificationView{
		ID:            rec.ID,
		WorkRequestID: rec.WorkRequestID,
		Type:          rec.Type,
		Status:        rec.Status,
		Subject:       rec.Subject,
		Message:       rec.Message,
		SentAt:        rec.SentAt,
		ReadAt:        rec.ReadAt,
		CreatedAt:     rec.CreatedAt,
	}
}

type NotificationFilter struct {
	apimodels.Pagination
	UnreadOnly bool `json:"unread_only"`
}
