package connectionhub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"solar-projects-backend/models"
	dbmodels "solar-projects-backend/models/db"
	wsmodels "solar-projects-backend/models/ws"
)

type fakeNotifStore struct {
	mu      sync.Mutex
	pending []dbmodels.WorkRequestNotification
	sentIDs []string
}

func (f *fakeNotifStore) Create(rec dbmodels.WorkRequestNotification) (string, error) {
	return rec.ID, nil
}

func (f *fakeNotifStore) ListPendingByRecipient(recipientID string) ([]dbmodels.WorkRequestNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []dbmodels.WorkRequestNotification{}
	for _, rec := range f.pending {
		if rec.RecipientID == recipientID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeNotifStore) MarkSent(ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentIDs = append(f.sentIDs, ids...)
	return nil
}

func (f *fakeNotifStore) MarkRead(notificationID, recipientID string) (bool, error) {
	return false, nil
}

func (f *fakeNotifStore) MarkAllRead(recipientID string) (int64, error) {
	return 0, nil
}

func (f *fakeNotifStore) GetList(recipientID string, unreadOnly bool, page, limit int) ([]dbmodels.WorkRequestNotification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotifStore) UnreadCount(recipientID string) (int64, error) {
	return 0, nil
}

func (f *fakeNotifStore) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.sentIDs...)
}

func TestHubGroupBookkeeping(t *testing.T) {
	store := &fakeNotifStore{}
	hub := NewInstance(store)

	s1 := hub.AddClient("u1", nil, []string{"user_u1", "all"})
	s2 := hub.AddClient("u2", nil, []string{"user_u2", "all"})

	require.Equal(t, 2, hub.GroupSize("all"))
	require.Equal(t, 1, hub.GroupSize("user_u1"))
	require.Equal(t, 0, hub.GroupSize("project_p1"))

	t.Run(`join is idempotent`, func(t *testing.T) {
		hub.Join(s1, "project_p1")
		hub.Join(s1, "project_p1")
		require.Equal(t, 1, hub.GroupSize("project_p1"))
	})

	t.Run(`join for an unknown session is ignored`, func(t *testing.T) {
		hub.Join("no-such-session", "project_p2")
		require.Equal(t, 0, hub.GroupSize("project_p2"))
	})

	t.Run(`leave drops the membership`, func(t *testing.T) {
		hub.Join(s2, "project_p1")
		require.Equal(t, 2, hub.GroupSize("project_p1"))
		hub.Leave(s2, "project_p1")
		require.Equal(t, 1, hub.GroupSize("project_p1"))
		hub.Leave(s2, "project_p1")
		require.Equal(t, 1, hub.GroupSize("project_p1"))
	})

	t.Run(`delete removes the session everywhere`, func(t *testing.T) {
		hub.DeleteClient(s1)
		require.Equal(t, 1, hub.GroupSize("all"))
		require.Equal(t, 0, hub.GroupSize("user_u1"))
		require.Equal(t, 0, hub.GroupSize("project_p1"))
		// Deleting twice is harmless.
		hub.DeleteClient(s1)
	})

	t.Run(`messages to empty groups are dropped quietly`, func(t *testing.T) {
		hub.SendMessage(wsmodels.ServerMessage{Group: "user_u1", Event: "x"})
	})
}

func TestHubReplaysPendingNotificationsOnConnect(t *testing.T) {
	store := &fakeNotifStore{
		pending: []dbmodels.WorkRequestNotification{
			{
				BaseModel:   dbmodels.BaseModel{ID: "n1", CreatedAt: time.Now()},
				RecipientID: "u1",
				Type:        models.NotifyApprovalRequired,
				Status:      models.NotificationStatusPending,
			},
			{
				BaseModel:   dbmodels.BaseModel{ID: "n2", CreatedAt: time.Now()},
				RecipientID: "u1",
				Type:        models.NotifyWorkRequestApproved,
				Status:      models.NotificationStatusPending,
			},
			{
				BaseModel:   dbmodels.BaseModel{ID: "n3", CreatedAt: time.Now()},
				RecipientID: "u2",
				Type:        models.NotifyWorkRequestApproved,
				Status:      models.NotificationStatusPending,
			},
		},
	}
	hub := NewInstance(store)

	hub.AddClient("u1", nil, []string{"user_u1"})

	require.Eventually(t, func() bool {
		sent := store.sent()
		return len(sent) == 2 && sent[0] == "n1" && sent[1] == "n2"
	}, time.Second, 10*time.Millisecond)
}

func TestHubSurvivesDisconnectDuringReplay(t *testing.T) {
	pending := []dbmodels.WorkRequestNotification{}
	for _, id := range []string{"n1", "n2", "n3", "n4"} {
		pending = append(pending, dbmodels.WorkRequestNotification{
			BaseModel:   dbmodels.BaseModel{ID: id, CreatedAt: time.Now()},
			RecipientID: "u1",
			Type:        models.NotifyApprovalRequired,
			Status:      models.NotificationStatusPending,
		})
	}
	store := &fakeNotifStore{pending: pending}
	hub := NewInstance(store)

	// Disconnecting right after connecting races the replay goroutine.
	// The replay may still finish against the detached session, it just
	// must not panic the process.
	sessionID := hub.AddClient("u1", nil, []string{"user_u1"})
	hub.DeleteClient(sessionID)

	require.Eventually(t, func() bool {
		return len(store.sent()) == 4
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, 0, hub.GroupSize("user_u1"))
}
