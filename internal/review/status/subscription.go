// Package status delivers live processing-progress messages for a
// project over the backend's WebSocket channel. A subscription is a
// cancellable object with an explicit open/close lifecycle tied to the
// owning view; it must be closed when the project leaves "processing"
// or the view goes away.
package status

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

func deadline() time.Time {
	return time.Now().Add(2 * time.Second)
}

// Subscription is one open status channel. Messages are delivered on
// Messages() until the peer closes, the context is cancelled, or
// Close() is called; the channel is then closed and Err() reports why.
type Subscription struct {
	conn     *websocket.Conn
	messages chan domain.ProcessingStatus

	closeOnce sync.Once
	done      chan struct{}

	mu  sync.Mutex
	err error
}

// Subscribe opens the status channel for a project. wsBase is the
// WebSocket origin, e.g. "ws://localhost:8000".
func Subscribe(ctx context.Context, wsBase, projectID string) (*Subscription, error) {
	u := strings.TrimRight(wsBase, "/") + "/ws/projects/" + projectID + "/status"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("open status channel: %w", err)
	}

	s := &Subscription{
		conn:     conn,
		messages: make(chan domain.ProcessingStatus, 8),
		done:     make(chan struct{}),
	}

	go s.readLoop()
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	return s, nil
}

// Messages returns the channel progress updates arrive on. It is
// closed when the subscription ends.
func (s *Subscription) Messages() <-chan domain.ProcessingStatus {
	return s.messages
}

// Err reports why the subscription ended, or nil for a clean close.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears down the connection. Safe to call more than once and
// from any goroutine.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			deadline())
		s.conn.Close()
	})
}

func (s *Subscription) readLoop() {
	defer close(s.messages)
	for {
		var msg domain.ProcessingStatus
		if err := s.conn.ReadJSON(&msg); err != nil {
			select {
			case <-s.done:
				// Closed locally; not an error.
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.mu.Lock()
					s.err = err
					s.mu.Unlock()
				}
				s.Close()
			}
			return
		}

		select {
		case s.messages <- msg:
		case <-s.done:
			return
		}
	}
}
