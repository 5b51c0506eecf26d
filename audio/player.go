// @focus: #sys { audio }
package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/saber-drill/event"
)

// CuePlayer plays short tones for simulation events
// Silent until Start succeeds; speaker failure is not fatal
type CuePlayer struct {
	cfg        CueConfig
	sampleRate beep.SampleRate

	// play hands a streamer to the output, speaker.Play once started
	play func(beep.Streamer)

	running atomic.Bool
	muted   atomic.Bool
	played  atomic.Uint64

	mu sync.RWMutex // Protects cfg volumes
}

func NewCuePlayer(cfg CueConfig) (*CuePlayer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cue config: %w", err)
	}
	p := &CuePlayer{
		cfg:        cfg,
		sampleRate: beep.SampleRate(cfg.SampleRate),
	}
	p.muted.Store(!cfg.Enabled)
	return p, nil
}

// Start initializes the speaker with a 100ms buffer
func (p *CuePlayer) Start() error {
	if p.running.Load() {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	p.play = func(s beep.Streamer) { speaker.Play(s) }
	p.running.Store(true)
	return nil
}

// Close releases the speaker
func (p *CuePlayer) Close() {
	if p.running.CompareAndSwap(true, false) {
		speaker.Close()
	}
}

// OnEvent maps simulation events to cues
func (p *CuePlayer) OnEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventPlayerHit:
		p.Play(CueHit)
	case event.EventBoltDeflected:
		p.Play(CueDeflect)
	case event.EventBoltSpawned:
		p.Play(CueSpawn)
	}
}

// Play queues a cue; returns false when silent, muted or the cue has zero volume
func (p *CuePlayer) Play(c CueType) bool {
	if !p.running.Load() || p.muted.Load() || p.play == nil {
		return false
	}
	s := p.Stream(c)
	if s == nil {
		return false
	}
	p.play(s)
	p.played.Add(1)
	return true
}

// Stream renders a cue as a finite streamer, nil when the cue is empty or silent
func (p *CuePlayer) Stream(c CueType) beep.Streamer {
	p.mu.RLock()
	tones := p.cfg.Cues[c]
	volume := p.cfg.MasterVolume * p.cfg.Volumes[c]
	p.mu.RUnlock()

	if len(tones) == 0 || volume <= 0 {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(p.sampleRate, t.Frequency)
		if err != nil {
			// Validated at construction
			continue
		}
		parts = append(parts, beep.Take(p.sampleRate.N(t.Duration), sine))
	}

	// Gain scales by 1+Gain
	return &effects.Gain{Streamer: beep.Seq(parts...), Gain: volume - 1}
}

// SetVolume updates master volume (0.0-1.0)
func (p *CuePlayer) SetVolume(vol float64) {
	p.mu.Lock()
	p.cfg.MasterVolume = clampVolume(vol)
	p.mu.Unlock()
}

// ToggleMute toggles mute state, returns true if now audible
func (p *CuePlayer) ToggleMute() bool {
	newMute := !p.muted.Load()
	p.muted.Store(newMute)
	return !newMute
}

func (p *CuePlayer) IsRunning() bool {
	return p.running.Load()
}

// Played returns the number of cues handed to the output
func (p *CuePlayer) Played() uint64 {
	return p.played.Load()
}
