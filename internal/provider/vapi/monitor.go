package vapi

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Listener consumes a call's monitor WebSocket. Every text message is
// JSON-decoded and handed to the frame handler; messages that fail to
// decode are dropped, not raised; the monitor feed is best-effort.
type Listener struct {
	conn    *websocket.Conn
	log     *logrus.Entry
	handler func(frame map[string]any)

	closeOnce sync.Once
}

// DialListener connects to the monitor URL and starts the read loop.
func DialListener(ctx context.Context, url string, log *logrus.Entry, handler func(frame map[string]any)) (*Listener, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	l := &Listener{conn: conn, log: log, handler: handler}
	go l.readLoop()
	return l, nil
}

func (l *Listener) readLoop() {
	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			l.log.WithError(err).Debug("monitor socket closed")
			return
		}

		var frame map[string]any
		if err := json.Unmarshal(data, &frame); err != nil {
			l.log.WithError(err).Debug("dropping undecodable monitor message")
			continue
		}
		l.handler(frame)
	}
}

func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		err = l.conn.Close()
	})
	return err
}
