package network

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/lixenwraith/saber-drill/engine"
)

// SimulationFactory builds a fresh simulation for each session
type SimulationFactory func() (*engine.Simulation, error)

// Handler upgrades HTTP requests to WebSocket sessions, one simulation per session
type Handler struct {
	factory  SimulationFactory
	cfg      HandlerConfig
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	wg       sync.WaitGroup
}

// NewHandler creates a handler; zero config fields take defaults
func NewHandler(factory SimulationFactory, cfg HandlerConfig) *Handler {
	cfg = cfg.withDefaults()
	h := &Handler{
		factory:  factory,
		cfg:      cfg,
		logger:   log.Default(),
		sessions: make(map[uuid.UUID]*Session),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			if cfg.CheckOrigin == nil {
				return true
			}
			return cfg.CheckOrigin(r.Header.Get("Origin"))
		},
	}
	return h
}

// SetLogger replaces the standard logger
func (h *Handler) SetLogger(l *log.Logger) {
	if l != nil {
		h.logger = l
	}
}

// Handle serves /ws; the codec is chosen by the codec query parameter
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.SessionCount() >= h.cfg.MaxSessions {
		http.Error(w, "too many sessions", http.StatusServiceUnavailable)
		return
	}

	codec, err := CodecFor(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sim, err := h.factory()
	if err != nil {
		h.logger.Printf("Simulation factory: %v", err)
		http.Error(w, "simulation unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrader already replied
		h.logger.Printf("Upgrade: %v", err)
		return
	}

	sess := newSession(conn, codec, sim, h.cfg, h.logger)
	h.add(sess)
	defer h.remove(sess)

	h.logger.Printf("Session %s opened from %s (%s)", sess.ID, r.RemoteAddr, codec.Name())
	sess.Send(welcomeMessage(sess.ID.String(), sim.Config()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		sess.writeLoop()
	}()
	sess.readLoop()
	<-done

	st := sess.Stats()
	h.logger.Printf("Session %s closed: frames=%d hits=%d deflections=%d",
		sess.ID, st.Stats.Frames, st.Score.HitsTaken, st.Score.HitsDeflected)
}

func (h *Handler) add(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.wg.Add(1)
	h.mu.Unlock()
}

func (h *Handler) remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	h.mu.Unlock()
	h.wg.Done()
}

// Session looks up a live session
func (h *Handler) Session(id uuid.UUID) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

func (h *Handler) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close disconnects every session and waits for their handlers to return
// Hijacked connections are not closed by http.Server.Shutdown
func (h *Handler) Close() {
	h.mu.RLock()
	for _, s := range h.sessions {
		s.Close()
	}
	h.mu.RUnlock()
	h.wg.Wait()
}
