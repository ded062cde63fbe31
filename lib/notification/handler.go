package notification

import (
	"time"

	log "github.com/sirupsen/logrus"

	"solar-projects-backend/db"
	"solar-projects-backend/lib/notification/audience"
	notificationstore "solar-projects-backend/lib/notification/store"
	apperror "solar-projects-backend/lib/utils/app-error"
	connectionhub "solar-projects-backend/lib/ws/hub/connection-hub"
	"solar-projects-backend/models"
	notificationapimodels "solar-projects-backend/models/api/notification"
	dbmodels "solar-projects-backend/models/db"
	wsmodels "solar-projects-backend/models/ws"
)

// DispatchEvent is one outbound event. Work-request events with
// explicit recipients additionally get a durable notification row per
// recipient so offline users receive them on reconnect.
type DispatchEvent struct {
	audience.Event
	WorkRequestID string
	SenderID      *string
	Message       string
	Payload       interface{}
}

type Provider interface {
	// Dispatch never fails the caller's workflow: it returns a
	// dispatch-kind error for logging only.
	Dispatch(ev DispatchEvent) error
	GetList(recipientID string, filter notificationapimodels.NotificationFilter) (list []notificationapimodels.NotificationView, rowCount int64, err error)
	MarkRead(notificationID, recipientID string) error
	MarkAllRead(recipientID string) (int64, error)
	UnreadCount(recipientID string) (int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: notificationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store notificationstore.Provider
}

func (i impl) Dispatch(ev DispatchEvent) error {
	groups := audience.Resolve(ev.Event)
	logger := log.
		WithField("event", string(ev.Type)).
		WithField("groups", groups)

	if i.isDurable(ev) {
		err := i.persist(ev, groups)
		if err != nil {
			logger.WithError(err).Error("notification persist failed")
			return apperror.Dispatch(err, "notification persist failed")
		}
	}

	now := time.Now().Format(time.RFC3339)
	for _, group := range groups {
		connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
			Group:   group,
			Event:   string(ev.Type),
			Time:    now,
			Payload: ev.Payload,
		})
	}
	logger.Debug("event dispatched")
	return nil
}

// isDurable reports whether the event survives in storage. Broadcast
// and dashboard pushes are fire-and-forget; anything tied to a work
// request with named recipients is kept.
func (i impl) isDurable(ev DispatchEvent) bool {
	return ev.WorkRequestID != "" && len(ev.RecipientIDs) > 0
}

func (i impl) persist(ev DispatchEvent, groups []string) error {
	for _, recipientID := range ev.RecipientIDs {
		if recipientID == "" {
			continue
		}
		rec := dbmodels.WorkRequestNotification{
			WorkRequestID: ev.WorkRequestID,
			RecipientID:   recipientID,
			SenderID:      ev.SenderID,
			Type:          ev.Type,
			Status:        models.NotificationStatusPending,
			Subject:       Subject(ev.Type),
			Message:       ev.Message,
			TargetGroups:  groups,
		}
		id, err := i.store.Create(rec)
		if err != nil {
			return err
		}
		// Connected recipients get it live, so flip it to sent at once.
		if connectionhub.Instance.IsConnected(recipientID) {
			err = i.store.MarkSent([]string{id})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (i impl) GetList(recipientID string, filter notificationapimodels.NotificationFilter) ([]notificationapimodels.NotificationView, int64, error) {
	page, limit := filter.GetPage()
	list, rowCount, err := i.store.GetList(recipientID, filter.UnreadOnly, page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]notificationapimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, notificationapimodels.ConvertToView(rec))
	}
	return result, rowCount, nil
}

// MarkRead is idempotent: re-reading an already read notification is
// not an error.
func (i impl) MarkRead(notificationID, recipientID string) error {
	updated, err := i.store.MarkRead(notificationID, recipientID)
	if err != nil {
		return err
	}
	if updated {
		i.pushUnreadCount(recipientID)
	}
	return nil
}

func (i impl) MarkAllRead(recipientID string) (int64, error) {
	updated, err := i.store.MarkAllRead(recipientID)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		i.pushUnreadCount(recipientID)
	}
	return updated, nil
}

// pushUnreadCount keeps connected clients' badge counters fresh after a
// read state change.
func (i impl) pushUnreadCount(recipientID string) {
	count, err := i.store.UnreadCount(recipientID)
	if err != nil {
		log.WithError(err).WithField("recipient_id", recipientID).Error("unread count push failed")
		return
	}
	connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
		Group:   audience.GroupUser(recipientID),
		Event:   "UnreadCount",
		Time:    time.Now().Format(time.RFC3339),
		Payload: map[string]int64{"unread_count": count},
	})
}

func (i impl) UnreadCount(recipientID string) (int64, error) {
	return i.store.UnreadCount(recipientID)
}
