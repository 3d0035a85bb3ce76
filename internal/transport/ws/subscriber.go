// Package ws exposes the notification bus to browsers over WebSocket.
package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	closeWait      = time.Second
	maxMessageSize = 4096
)

// ErrClosed is returned by Send once the connection has gone away.
var ErrClosed = errors.New("ws: subscriber closed")

// Subscriber is one connected client. Messages are queued on a bounded
// buffer and written by a dedicated goroutine; a client that stops reading
// fills the buffer and its next Send times out, which drops it from the bus.
type Subscriber struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newSubscriber(id string, conn *websocket.Conn, buffer int) *Subscriber {
	if buffer <= 0 {
		buffer = 64
	}
	return &Subscriber{
		id:   id,
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

func (s *Subscriber) ID() string { return s.id }

// Send queues msg for the write pump.
func (s *Subscriber) Send(ctx context.Context, msg []byte) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}

	select {
	case s.send <- msg:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the write pump, tells the client the server is going away and
// closes the socket. Safe to call repeatedly. The close frame goes out before
// the socket is torn down; a client that already left just makes it fail.
func (s *Subscriber) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(closeWait))
		err = s.conn.Close()
	})
	return err
}

// writePump owns all writes to the connection.
func (s *Subscriber) writePump(pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = s.Close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// readPump discards client frames and keeps the read deadline fresh on pong.
// It returns when the client goes away.
func (s *Subscriber) readPump(pongWait time.Duration) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}
