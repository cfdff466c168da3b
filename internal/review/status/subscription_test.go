package status_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bp-review/bp-review-go/internal/review/domain"
	"github.com/bp-review/bp-review-go/internal/review/status"
)

var upgrader = websocket.Upgrader{}

func wsServer(t *testing.T, handler func(conn *websocket.Conn)) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/ws/projects/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestSubscribe_DeliversMessages(t *testing.T) {
	wsBase := wsServer(t, func(conn *websocket.Conn) {
		conn.WriteJSON(domain.ProcessingStatus{Progress: 40, Message: "正在解析BP文档"})
		conn.WriteJSON(domain.ProcessingStatus{Progress: 80, Message: "正在生成评分"})
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		// Give the client a moment to read the close frame.
		time.Sleep(100 * time.Millisecond)
	})

	sub, err := status.Subscribe(context.Background(), wsBase, "2")
	require.NoError(t, err)
	defer sub.Close()

	var got []domain.ProcessingStatus
	for msg := range sub.Messages() {
		got = append(got, msg)
	}

	require.Len(t, got, 2)
	assert.Equal(t, 40, got[0].Progress)
	assert.Equal(t, "正在生成评分", got[1].Message)
	assert.NoError(t, sub.Err())
}

func TestClose_IsIdempotentAndEndsChannel(t *testing.T) {
	wsBase := wsServer(t, func(conn *websocket.Conn) {
		// Keep the connection open until the client closes it.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	sub, err := status.Subscribe(context.Background(), wsBase, "2")
	require.NoError(t, err)

	sub.Close()
	sub.Close()

	select {
	case _, open := <-sub.Messages():
		assert.False(t, open, "messages channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("messages channel not closed after Close")
	}
	assert.NoError(t, sub.Err())
}

func TestContextCancelTearsDown(t *testing.T) {
	wsBase := wsServer(t, func(conn *websocket.Conn) {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := status.Subscribe(ctx, wsBase, "2")
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-sub.Messages():
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("messages channel not closed after context cancel")
	}
}

func TestSubscribe_DialFailure(t *testing.T) {
	_, err := status.Subscribe(context.Background(), "ws://127.0.0.1:1", "2")
	assert.Error(t, err)
}
