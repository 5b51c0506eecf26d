package network

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/lixenwraith/saber-drill/engine"
	"github.com/lixenwraith/saber-drill/event"
)

// SessionStats is a copy of a session's counters readable from any goroutine
type SessionStats struct {
	ID      string       `json:"id"`
	Codec   string       `json:"codec"`
	Started time.Time    `json:"started"`
	Stats   engine.Stats `json:"stats"`
	Score   event.Score  `json:"score"`
}

// Session binds one WebSocket connection to one simulation
// The simulation is only touched from the read loop
type Session struct {
	ID      uuid.UUID
	started time.Time

	conn   *websocket.Conn
	codec  Codec
	sim    *engine.Simulation
	cfg    HandlerConfig
	logger *log.Logger

	// Send queue
	sendCh chan *ServerMessage

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once

	mu    sync.RWMutex
	stats engine.Stats
	score event.Score
}

func newSession(conn *websocket.Conn, codec Codec, sim *engine.Simulation, cfg HandlerConfig, logger *log.Logger) *Session {
	return &Session{
		ID:      uuid.NewV4(),
		started: time.Now(),
		conn:    conn,
		codec:   codec,
		sim:     sim,
		cfg:     cfg,
		logger:  logger,
		sendCh:  make(chan *ServerMessage, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// Send queues a message for transmission
// A full queue means the client cannot keep up; the session is closed
func (s *Session) Send(msg *ServerMessage) bool {
	select {
	case <-s.closeCh:
		return false
	default:
	}

	select {
	case s.sendCh <- msg:
		return true
	default:
		s.logger.Printf("Session %s send queue full, closing", s.ID)
		s.Close()
		return false
	}
}

// Close sends a close frame and tears down the connection
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		deadline := time.Now().Add(s.cfg.WriteTimeout)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		s.conn.Close()
	})
}

// Done is closed once the session has shut down
func (s *Session) Done() <-chan struct{} {
	return s.closeCh
}

// readLoop decodes client messages and drives the simulation until the connection ends
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.cfg.ReadLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout))

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("Session %s read: %v", s.ID, err)
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout))

		var msg ClientMessage
		if err := s.codec.Unmarshal(data, &msg); err != nil {
			s.Send(errorMessage(fmt.Errorf("decode %s: %w", s.codec.Name(), err)))
			continue
		}
		if err := s.handle(&msg); err != nil {
			s.Send(errorMessage(err))
		}
	}
}

func (s *Session) handle(msg *ClientMessage) error {
	switch msg.Type {
	case MsgFrame:
		res := s.sim.Step(msg.Dt, msg.Player, msg.Blade)
		s.record()
		s.Send(stateMessage(&res, s.sim.Snapshot()))
	case MsgReset:
		s.sim.Reset()
		s.record()
		s.Send(stateMessage(nil, s.sim.Snapshot()))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

func (s *Session) record() {
	s.mu.Lock()
	s.stats = s.sim.Stats()
	s.score = s.sim.Score()
	s.mu.Unlock()
}

// writeLoop encodes queued messages onto the connection
func (s *Session) writeLoop() {
	defer s.Close()

	for {
		select {
		case <-s.closeCh:
			return
		case msg := <-s.sendCh:
			data, err := s.codec.Marshal(msg)
			if err != nil {
				s.logger.Printf("Session %s encode %s: %v", s.ID, msg.Type, err)
				continue
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(s.codec.FrameType(), data); err != nil {
				return
			}
		}
	}
}

// Stats returns a copy of the session counters
func (s *Session) Stats() SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionStats{
		ID:      s.ID.String(),
		Codec:   s.codec.Name(),
		Started: s.started,
		Stats:   s.stats,
		Score:   s.score,
	}
}
