package wsclient

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"

	connectionhub "solar-projects-backend/lib/ws/hub/connection-hub"
	wsmodels "solar-projects-backend/models/ws"
)

func NewClient(userID, sessionID string, c *websocket.Conn) *WsClient {
	return &WsClient{
		conn:      c,
		userID:    userID,
		sessionID: sessionID,
	}
}

type WsClient struct {
	conn      *websocket.Conn
	userID    string
	sessionID string
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch reads client commands until the socket closes.
// Clients may join or leave subscription groups; anything else is logged
// and ignored.
func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("websocket read failed")
			}
			break
		}
		var msg wsmodels.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.WithField("ws_message", string(data)).Debug("unparsable client message")
			continue
		}
		c.handle(msg, logger)
	}
}

func (c *WsClient) handle(msg wsmodels.ClientMessage, logger *log.Entry) {
	group := strings.TrimSpace(msg.Group)
	if group == "" {
		return
	}
	if !isJoinable(group, c.userID) {
		logger.WithField("group", group).Warn("group subscription rejected")
		return
	}
	switch msg.Action {
	case wsmodels.ClientActionJoin:
		connectionhub.Instance.Join(c.sessionID, group)
	case wsmodels.ClientActionLeave:
		connectionhub.Instance.Leave(c.sessionID, group)
	default:
		logger.WithField("action", msg.Action).Debug("unknown client action")
	}
}

// isJoinable rejects self-service subscription to another user's private
// group. Role groups are assigned at connect time from the token, never
// on request.
func isJoinable(group, userID string) bool {
	if strings.HasPrefix(group, "user_") {
		return group == "user_"+userID
	}
	if strings.HasPrefix(group, "role_") {
		return false
	}
	return true
}
