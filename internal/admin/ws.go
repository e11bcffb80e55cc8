package admin

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard page is served from the same origin; the demo has
	// no auth layer beyond that.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS upgrades the connection and pushes vitals snapshots until
// the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer conn.Close()
		ticker := time.NewTicker(s.streamInterval)
		defer ticker.Stop()
		// Initial snapshot so clients render without waiting a tick.
		if err := conn.WriteJSON(s.Monitor.Snapshot()); err != nil {
			return
		}
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteJSON(s.Monitor.Snapshot()); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	}()
}
