package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/playforge/quiz-duel/internal/config"
)

// WSUpgrader handles WebSocket upgrades for the duel endpoint. Both surfaces
// are local; origin checking is intentionally permissive.
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewHTTPServer wires the base routes (health, metrics) plus the duel
// WebSocket endpoint.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, duelWSHandler http.HandlerFunc) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/ws/duel", duelWSHandler)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}
