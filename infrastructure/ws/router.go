package ws

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chat-relay/observability"
)

// NewRouter exposes the websocket endpoint plus the operational
// surface of the hub process.
func NewRouter(server *Server, stats *observability.HubStats) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/ws", server.ServeHTTP)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stats.Snapshot())
	})

	return r
}
