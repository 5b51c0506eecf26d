package network

import (
	"time"

	"github.com/lixenwraith/saber-drill/parameter"
)

// HandlerConfig holds WebSocket host limits
type HandlerConfig struct {
	// MaxSessions bounds concurrent sessions; further upgrades get 503
	MaxSessions int

	// Frame limits
	ReadLimit       int64
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int

	// Timing
	WriteTimeout time.Duration
	IdleTimeout  time.Duration // no client frame within this closes the session

	// CheckOrigin overrides the same-origin check; nil accepts any origin
	CheckOrigin func(origin string) bool
}

// DefaultHandlerConfig returns defaults from parameter
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		MaxSessions:     parameter.WSMaxSessions,
		ReadLimit:       parameter.WSReadLimit,
		ReadBufferSize:  parameter.WSReadBufferSize,
		WriteBufferSize: parameter.WSWriteBufferSize,
		SendQueueSize:   parameter.WSSendQueueSize,
		WriteTimeout:    parameter.WSWriteTimeout,
		IdleTimeout:     parameter.WSIdleTimeout,
	}
}

// withDefaults fills zero fields
func (c HandlerConfig) withDefaults() HandlerConfig {
	d := DefaultHandlerConfig()
	if c.MaxSessions <= 0 {
		c.MaxSessions = d.MaxSessions
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = d.ReadLimit
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = d.SendQueueSize
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	return c
}
