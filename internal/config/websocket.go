package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader    websocket.Upgrader
	IdleTimeout time.Duration
	ReadLimit   int64
}

func NewWebSocket(c WebSocketConfig) (*WebSocket, error) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  c.ReadBufferSize,
		WriteBufferSize: c.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	ws := &WebSocket{
		Upgrader:    upgrader,
		IdleTimeout: c.IdleTimeout.Duration,
		ReadLimit:   c.ReadLimit,
	}

	return ws, nil
}
