package connectionhub

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"solar-projects-backend/db"
	notificationstore "solar-projects-backend/lib/notification/store"
	notificationapimodels "solar-projects-backend/models/api/notification"
	wsmodels "solar-projects-backend/models/ws"
)

// Provider is the in-process registry of websocket sessions keyed by
// subscription group. One user may hold several sessions; each session
// belongs to any number of groups.
type Provider interface {
	AddClient(userID string, conn *websocket.Conn, initialGroups []string) (sessionID string)
	DeleteClient(sessionID string)
	Join(sessionID, group string)
	Leave(sessionID, group string)
	SendMessage(msg wsmodels.ServerMessage)
	SendClose(sessionID string)
	IsConnected(userID string) bool
	GroupSize(group string) int
}

var Instance Provider

func Init() {
	Instance = NewInstance(notificationstore.NewInstance(db.DB))
}

func NewInstance(store notificationstore.Provider) Provider {
	return &impl{
		sessions: map[string]*clientSession{},
		groups:   map[string]map[string]struct{}{},
		store:    store,
	}
}

type impl struct {
	mu       sync.RWMutex
	sessions map[string]*clientSession      //map[sessionID]
	groups   map[string]map[string]struct{} //map[group]set of sessionID
	store    notificationstore.Provider
}

func (i *impl) AddClient(userID string, conn *websocket.Conn, initialGroups []string) string {
	sessionID := uuid.NewString()
	sess := newSession(userID, conn)

	i.mu.Lock()
	i.sessions[sessionID] = sess
	for _, group := range initialGroups {
		i.joinLocked(sessionID, group)
	}
	i.mu.Unlock()

	go i.sendDelayedNotifications(userID, sess)
	return sessionID
}

func (i *impl) DeleteClient(sessionID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.sessions[sessionID]
	if !ok {
		return
	}
	delete(i.sessions, sessionID)
	for group, members := range i.groups {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(i.groups, group)
		}
	}
	// The send channel is never closed: the replay goroutine may still
	// hold the session and write into the buffer. Stopping the writer
	// is enough, the channel is collected with the session.
	sess.stop()
}

func (i *impl) Join(sessionID, group string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.joinLocked(sessionID, group)
}

func (i *impl) joinLocked(sessionID, group string) {
	if _, ok := i.sessions[sessionID]; !ok {
		return
	}
	members, ok := i.groups[group]
	if !ok {
		members = map[string]struct{}{}
		i.groups[group] = members
	}
	members[sessionID] = struct{}{}
}

func (i *impl) Leave(sessionID, group string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	members, ok := i.groups[group]
	if !ok {
		return
	}
	delete(members, sessionID)
	if len(members) == 0 {
		delete(i.groups, group)
	}
}

// SendMessage fans the event out to every session in msg.Group.
// A session with a full buffer is skipped, it catches up through the
// durable notification replay on its next connect.
func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	members, ok := i.groups[msg.Group]
	if !ok {
		return
	}
	for sessionID := range members {
		sess, ok := i.sessions[sessionID]
		if !ok {
			continue
		}
		select {
		case sess.sendCh <- msg:
		default:
			log.WithField("group", msg.Group).Warn("session buffer full, message dropped")
		}
	}
}

func (i *impl) SendClose(sessionID string) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.sessions[sessionID]
	if ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, sess := range i.sessions {
		if sess.userID == userID && sess.conn != nil && sess.conn.Conn != nil {
			return true
		}
	}
	return false
}

func (i *impl) GroupSize(group string) int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.groups[group])
}

// sendDelayedNotifications replays durable notifications created while
// the user was offline, then marks them sent.
func (i *impl) sendDelayedNotifications(userID string, sess *clientSession) {
	logger := log.WithField("user_id", userID)
	list, err := i.store.ListPendingByRecipient(userID)
	if err != nil {
		logger.WithError(err).Error("pending notification list failed")
		return
	}
	sentIDs := []string{}
	for _, item := range list {
		msg := wsmodels.ServerMessage{
			Event:   string(item.Type),
			Time:    item.CreatedAt.Format(time.RFC3339),
			Payload: notificationapimodels.ConvertToView(item),
		}
		select {
		case sess.sendCh <- msg:
			sentIDs = append(sentIDs, item.ID)
		default:
			logger.Warn("session buffer full during replay")
		}
	}
	if len(sentIDs) > 0 {
		err = i.store.MarkSent(sentIDs)
		if err != nil {
			logger.WithError(err).Error("marking notifications sent failed")
		}
	}
}
