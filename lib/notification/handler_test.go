package notification

import (
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"

	"solar-projects-backend/lib/notification/audience"
	connectionhub "solar-projects-backend/lib/ws/hub/connection-hub"
	"solar-projects-backend/models"
	dbmodels "solar-projects-backend/models/db"
	wsmodels "solar-projects-backend/models/ws"
)

func TestSubjectTableCoversEveryType(t *testing.T) {
	for _, nt := range AllTypes() {
		subject, ok := subjectTable[nt]
		require.True(t, ok, "missing subject for %s", nt)
		require.NotEmpty(t, subject)
	}
	require.Len(t, subjectTable, len(AllTypes()))
}

func TestSubjectFallsBackToRawType(t *testing.T) {
	require.Equal(t, "SomethingNew", Subject(models.NotificationType("SomethingNew")))
}

type fakeStore struct {
	created []dbmodels.WorkRequestNotification
	sentIDs []string
	readIDs []string
}

func (f *fakeStore) Create(rec dbmodels.WorkRequestNotification) (string, error) {
	rec.ID = "n" + string(rune('0'+len(f.created)))
	f.created = append(f.created, rec)
	return rec.ID, nil
}

func (f *fakeStore) ListPendingByRecipient(recipientID string) ([]dbmodels.WorkRequestNotification, error) {
	return nil, nil
}

func (f *fakeStore) MarkSent(ids []string) error {
	f.sentIDs = append(f.sentIDs, ids...)
	return nil
}

func (f *fakeStore) MarkRead(notificationID, recipientID string) (bool, error) {
	for _, id := range f.readIDs {
		if id == notificationID {
			return false, nil
		}
	}
	f.readIDs = append(f.readIDs, notificationID)
	return true, nil
}

func (f *fakeStore) MarkAllRead(recipientID string) (int64, error) {
	return int64(len(f.created)), nil
}

func (f *fakeStore) GetList(recipientID string, unreadOnly bool, page, limit int) ([]dbmodels.WorkRequestNotification, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) UnreadCount(recipientID string) (int64, error) {
	return 0, nil
}

type fakeHub struct {
	connected map[string]bool
	sent      []wsmodels.ServerMessage
}

func (f *fakeHub) AddClient(userID string, conn *websocket.Conn, initialGroups []string) string {
	return ""
}
func (f *fakeHub) DeleteClient(sessionID string)          {}
func (f *fakeHub) Join(sessionID, group string)           {}
func (f *fakeHub) Leave(sessionID, group string)          {}
func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) { f.sent = append(f.sent, msg) }
func (f *fakeHub) SendClose(sessionID string)             {}
func (f *fakeHub) IsConnected(userID string) bool         { return f.connected[userID] }
func (f *fakeHub) GroupSize(group string) int             { return 0 }

func newTestDispatcher(t *testing.T) (impl, *fakeStore, *fakeHub) {
	t.Helper()
	store := &fakeStore{}
	hub := &fakeHub{connected: map[string]bool{}}
	prev := connectionhub.Instance
	connectionhub.Instance = hub
	t.Cleanup(func() { connectionhub.Instance = prev })
	return impl{store: store}, store, hub
}

func TestDispatch(t *testing.T) {
	t.Run(`work request events with recipients are persisted per recipient`, func(t *testing.T) {
		handler, store, hub := newTestDispatcher(t)
		hub.connected["u2"] = true

		err := handler.Dispatch(DispatchEvent{
			Event: audience.Event{
				Type:         models.NotifyApprovalRequired,
				ProjectID:    "p1",
				RecipientIDs: []string{"u1", "u2"},
			},
			WorkRequestID: "wr1",
			Message:       "awaiting approval",
		})
		require.NoError(t, err)

		require.Len(t, store.created, 2)
		require.Equal(t, "u1", store.created[0].RecipientID)
		require.Equal(t, "u2", store.created[1].RecipientID)
		require.Equal(t, models.NotificationStatusPending, store.created[0].Status)
		require.Equal(t, "Your approval is required", store.created[0].Subject)
		require.NotEmpty(t, store.created[0].TargetGroups)

		// Only the connected recipient is flipped to sent right away.
		require.Equal(t, []string{"n1"}, store.sentIDs)

		// One websocket message per resolved group.
		require.Len(t, hub.sent, len(audience.Resolve(audience.Event{
			Type:         models.NotifyApprovalRequired,
			ProjectID:    "p1",
			RecipientIDs: []string{"u1", "u2"},
		})))
	})

	t.Run(`events without a work request stay ephemeral`, func(t *testing.T) {
		handler, store, hub := newTestDispatcher(t)

		err := handler.Dispatch(DispatchEvent{
			Event:   audience.Event{Type: models.NotifyDashboardStats},
			Message: "stats refreshed",
		})
		require.NoError(t, err)
		require.Empty(t, store.created)
		require.NotEmpty(t, hub.sent)
	})

	t.Run(`events without recipients stay ephemeral`, func(t *testing.T) {
		handler, store, _ := newTestDispatcher(t)

		err := handler.Dispatch(DispatchEvent{
			Event:         audience.Event{Type: models.NotifyWorkRequestCompleted, ProjectID: "p1"},
			WorkRequestID: "wr1",
		})
		require.NoError(t, err)
		require.Empty(t, store.created)
	})
}

func TestMarkReadIsIdempotent(t *testing.T) {
	handler, store, hub := newTestDispatcher(t)

	require.NoError(t, handler.MarkRead("n1", "u1"))
	require.NoError(t, handler.MarkRead("n1", "u1"))
	require.Equal(t, []string{"n1"}, store.readIDs)

	// Only the first call changed anything, so one badge refresh goes out.
	require.Len(t, hub.sent, 1)
	require.Equal(t, "user_u1", hub.sent[0].Group)
	require.Equal(t, "UnreadCount", hub.sent[0].Event)
}
