package audio

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// CueType identifies a sound cue
type CueType int

const (
	CueHit     CueType = iota // Player took a bolt
	CueDeflect                // Blade reflected a bolt
	CueSpawn                  // Drone fired
	cueTypeCount
)

func (c CueType) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueDeflect:
		return "deflect"
	case CueSpawn:
		return "spawn"
	}
	return "unknown"
}

// Tone is one sine segment of a cue
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// CueConfig holds cue player settings
type CueConfig struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64 // 0.0-1.0

	Cues    map[CueType][]Tone
	Volumes map[CueType]float64 // per cue, multiplied by MasterVolume
}

// DefaultCueConfig returns the built-in cue set, spawn cue silent
func DefaultCueConfig() CueConfig {
	return CueConfig{
		Enabled:      true,
		SampleRate:   44100,
		MasterVolume: 0.5,
		Cues: map[CueType][]Tone{
			CueHit: {
				{Frequency: 220, Duration: 90 * time.Millisecond},
				{Frequency: 147, Duration: 120 * time.Millisecond},
			},
			CueDeflect: {
				{Frequency: 880, Duration: 50 * time.Millisecond},
				{Frequency: 1320, Duration: 40 * time.Millisecond},
			},
			CueSpawn: {
				{Frequency: 440, Duration: 20 * time.Millisecond},
			},
		},
		Volumes: map[CueType]float64{
			CueHit:     1.0,
			CueDeflect: 0.8,
			CueSpawn:   0,
		},
	}
}

// LoadCueConfig applies environment overrides to the defaults
func LoadCueConfig() CueConfig {
	cfg := DefaultCueConfig()

	if enabled := os.Getenv("SABER_DRILL_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 mapped to 0.0-1.0
	if volume := os.Getenv("SABER_DRILL_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("SABER_DRILL_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

// Validate rejects settings the tone generator cannot render
func (c CueConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	nyquist := float64(c.SampleRate) / 2
	for cue, tones := range c.Cues {
		for _, t := range tones {
			if t.Frequency <= 0 || t.Frequency >= nyquist {
				return fmt.Errorf("cue %s: frequency %.0f outside (0, %.0f)", cue, t.Frequency, nyquist)
			}
			if t.Duration <= 0 {
				return fmt.Errorf("cue %s: non-positive duration", cue)
			}
		}
	}
	return nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
