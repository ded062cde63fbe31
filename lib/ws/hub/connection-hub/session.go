package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type clientSession struct {
	conn   *websocket.Conn
	userID string

	// Outbound messages, buffered. Content must be JSON-serializable.
	sendCh chan any
	stop   func()
}

func newSession(userID string, conn *websocket.Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.TODO())
	sess := &clientSession{
		stop:   cancelFn,
		conn:   conn,
		userID: userID,
		sendCh: make(chan any, 16), // buffered
	}
	go sess.startSend(ctx)
	return sess
}

func (s *clientSession) startSend(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			err := s.send(msg)
			if err != nil {
				log.WithError(err).Error("websocket send failed")
			}
		}
	}
}

func (s *clientSession) send(msg interface{}) error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	return s.conn.WriteJSON(msg)
}

func (s *clientSession) close() {
	if s.conn == nil || s.conn.Conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Millisecond))
	if err != nil {
		log.WithError(err).Error("websocket close failed")
	}
}
