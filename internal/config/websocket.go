package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocket carries the upgrader shared by the live-play endpoints.
// Origin filtering happens in the CORS layer, so the upgrader itself
// lets every origin through.
type WebSocket struct {
	Upgrader websocket.Upgrader
}

func NewWebSocket() (*WebSocket, error) {
	return &WebSocket{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}, nil
}
