package network

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	uuid "github.com/satori/go.uuid"

	"github.com/lixenwraith/saber-drill/config"
)

// NewRouter wires the host routes
//
//	GET /ws              WebSocket session (?codec=json|msgpack)
//	GET /healthz         liveness and session count
//	GET /config          active simulation config
//	GET /sessions/{id}   counters of a live session
func NewRouter(h *Handler, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ws", h.Handle).Methods(http.MethodGet)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": h.SessionCount(),
		})
	}).Methods(http.MethodGet)

	router.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cfg)
	}).Methods(http.MethodGet)

	router.HandleFunc("/sessions/{id:[a-fA-F0-9\\-]+}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.FromString(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}
		s, ok := h.Session(id)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, s.Stats())
	}).Methods(http.MethodGet)

	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
