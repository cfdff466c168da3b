package mockserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

var upgrader = websocket.Upgrader{
	// The mock server runs cross-origin from the dev front-end.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamStatus pushes processing-progress frames for a project over
// WebSocket. It polls the store for changes and keeps going until the
// project leaves "processing" or the client disconnects.
func (h *Handler) streamStatus(c *gin.Context) {
	projectID := c.Param("id")
	if _, ok := h.store.Get(projectID); !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Detect client-side close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pollTicker := time.NewTicker(1 * time.Second)
	defer pollTicker.Stop()

	var last domain.ProcessingStatus
	sent := false

	for {
		select {
		case <-done:
			return

		case <-pollTicker.C:
			statusStr, ok := h.store.ProjectStatus(projectID)
			if !ok {
				// Project deleted mid-stream.
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "project deleted"),
					time.Now().Add(time.Second))
				return
			}

			st, err := h.store.PlanStatus(projectID)
			if err == nil && (!sent || st != last) {
				if err := conn.WriteJSON(st); err != nil {
					return
				}
				last = st
				sent = true
			}

			if statusStr != domain.StatusProcessing {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(time.Second))
				return
			}
		}
	}
}
