package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/saber-drill/parameter"
)

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds every tunable of a simulation
// Zero values are not meaningful; start from Default()
type Config struct {
	Blade  BladeConfig  `toml:"blade" yaml:"blade" json:"blade" msgpack:"blade"`
	Player PlayerConfig `toml:"player" yaml:"player" json:"player" msgpack:"player"`
	Bolt   BoltConfig   `toml:"bolt" yaml:"bolt" json:"bolt" msgpack:"bolt"`
	Fire   FireConfig   `toml:"fire" yaml:"fire" json:"fire" msgpack:"fire"`
	Drone  DroneConfig  `toml:"drone" yaml:"drone" json:"drone" msgpack:"drone"`
	Sim    SimConfig    `toml:"sim" yaml:"sim" json:"sim" msgpack:"sim"`
}

type BladeConfig struct {
	Length float64 `toml:"length" yaml:"length" json:"length" msgpack:"length"`
	Radius float64 `toml:"radius" yaml:"radius" json:"radius" msgpack:"radius"`
}

// HalfLength is the distance from the blade center to either endpoint
func (b BladeConfig) HalfLength() float64 {
	return b.Length / 2
}

type PlayerConfig struct {
	HitRadius float64 `toml:"hit_radius" yaml:"hit_radius" json:"hitRadius" msgpack:"hitRadius"`
}

type BoltConfig struct {
	SpeedMin          float64 `toml:"speed_min" yaml:"speed_min" json:"speedMin" msgpack:"speedMin"`
	SpeedMax          float64 `toml:"speed_max" yaml:"speed_max" json:"speedMax" msgpack:"speedMax"`
	HalfLength        float64 `toml:"half_length" yaml:"half_length" json:"halfLength" msgpack:"halfLength"`
	FarClip           float64 `toml:"far_clip" yaml:"far_clip" json:"farClip" msgpack:"farClip"`
	ReflectMultiplier float64 `toml:"reflect_multiplier" yaml:"reflect_multiplier" json:"reflectMultiplier" msgpack:"reflectMultiplier"`
	AimJitter         float64 `toml:"aim_jitter" yaml:"aim_jitter" json:"aimJitter" msgpack:"aimJitter"`
}

type FireConfig struct {
	IntervalMin     float64 `toml:"interval_min" yaml:"interval_min" json:"intervalMin" msgpack:"intervalMin"`
	IntervalMax     float64 `toml:"interval_max" yaml:"interval_max" json:"intervalMax" msgpack:"intervalMax"`
	InitialInterval float64 `toml:"initial_interval" yaml:"initial_interval" json:"initialInterval" msgpack:"initialInterval"`
	NearDistance    float64 `toml:"near_distance" yaml:"near_distance" json:"nearDistance" msgpack:"nearDistance"`
	FarDistance     float64 `toml:"far_distance" yaml:"far_distance" json:"farDistance" msgpack:"farDistance"`
	JitterMin       float64 `toml:"jitter_min" yaml:"jitter_min" json:"jitterMin" msgpack:"jitterMin"`
	JitterMax       float64 `toml:"jitter_max" yaml:"jitter_max" json:"jitterMax" msgpack:"jitterMax"`
}

type DroneConfig struct {
	BaseDistance        float64 `toml:"base_distance" yaml:"base_distance" json:"baseDistance" msgpack:"baseDistance"`
	IdleRadius          float64 `toml:"idle_radius" yaml:"idle_radius" json:"idleRadius" msgpack:"idleRadius"`
	DashRadius          float64 `toml:"dash_radius" yaml:"dash_radius" json:"dashRadius" msgpack:"dashRadius"`
	IdleLerpSpeed       float64 `toml:"idle_lerp_speed" yaml:"idle_lerp_speed" json:"idleLerpSpeed" msgpack:"idleLerpSpeed"`
	DashLerpSpeed       float64 `toml:"dash_lerp_speed" yaml:"dash_lerp_speed" json:"dashLerpSpeed" msgpack:"dashLerpSpeed"`
	CenterDriftRate     float64 `toml:"center_drift_rate" yaml:"center_drift_rate" json:"centerDriftRate" msgpack:"centerDriftRate"`
	RecenterAngleDeg    float64 `toml:"recenter_angle_deg" yaml:"recenter_angle_deg" json:"recenterAngleDeg" msgpack:"recenterAngleDeg"`
	DashChance          float64 `toml:"dash_chance" yaml:"dash_chance" json:"dashChance" msgpack:"dashChance"`
	InitialDuration     float64 `toml:"initial_duration" yaml:"initial_duration" json:"initialDuration" msgpack:"initialDuration"`
	IdleDurationMin     float64 `toml:"idle_duration_min" yaml:"idle_duration_min" json:"idleDurationMin" msgpack:"idleDurationMin"`
	IdleDurationMax     float64 `toml:"idle_duration_max" yaml:"idle_duration_max" json:"idleDurationMax" msgpack:"idleDurationMax"`
	DashDurationMin     float64 `toml:"dash_duration_min" yaml:"dash_duration_min" json:"dashDurationMin" msgpack:"dashDurationMin"`
	DashDurationMax     float64 `toml:"dash_duration_max" yaml:"dash_duration_max" json:"dashDurationMax" msgpack:"dashDurationMax"`
	RecenterDurationMin float64 `toml:"recenter_duration_min" yaml:"recenter_duration_min" json:"recenterDurationMin" msgpack:"recenterDurationMin"`
	RecenterDurationMax float64 `toml:"recenter_duration_max" yaml:"recenter_duration_max" json:"recenterDurationMax" msgpack:"recenterDurationMax"`
}

type SimConfig struct {
	// Seed of 0 means time-seeded
	Seed         uint64  `toml:"seed" yaml:"seed" json:"seed" msgpack:"seed"`
	MaxDeltaTime float64 `toml:"max_delta_time" yaml:"max_delta_time" json:"maxDeltaTime" msgpack:"maxDeltaTime"`
}

// Default returns a config populated from parameter constants
func Default() *Config {
	return &Config{
		Blade: BladeConfig{
			Length: parameter.BladeLength,
			Radius: parameter.BladeRadius,
		},
		Player: PlayerConfig{
			HitRadius: parameter.PlayerHitRadius,
		},
		Bolt: BoltConfig{
			SpeedMin:          parameter.BoltSpeedMin,
			SpeedMax:          parameter.BoltSpeedMax,
			HalfLength:        parameter.BoltHalfLength,
			FarClip:           parameter.BoltFarClip,
			ReflectMultiplier: parameter.BoltReflectMultiplier,
			AimJitter:         parameter.BoltAimJitter,
		},
		Fire: FireConfig{
			IntervalMin:     parameter.FireIntervalMin,
			IntervalMax:     parameter.FireIntervalMax,
			InitialInterval: parameter.FireIntervalInitial,
			NearDistance:    parameter.FireNearDistance,
			FarDistance:     parameter.FireFarDistance,
			JitterMin:       parameter.FireJitterMin,
			JitterMax:       parameter.FireJitterMax,
		},
		Drone: DroneConfig{
			BaseDistance:        parameter.DroneBaseDistance,
			IdleRadius:          parameter.DroneIdleRadius,
			DashRadius:          parameter.DroneDashRadius,
			IdleLerpSpeed:       parameter.DroneIdleLerpSpeed,
			DashLerpSpeed:       parameter.DroneDashLerpSpeed,
			CenterDriftRate:     parameter.DroneCenterDriftRate,
			RecenterAngleDeg:    parameter.DroneRecenterAngleDeg,
			DashChance:          parameter.DroneDashChance,
			InitialDuration:     parameter.DroneInitialStateDuration,
			IdleDurationMin:     parameter.DroneIdleDurationMin,
			IdleDurationMax:     parameter.DroneIdleDurationMax,
			DashDurationMin:     parameter.DroneDashDurationMin,
			DashDurationMax:     parameter.DroneDashDurationMax,
			RecenterDurationMin: parameter.DroneRecenterDurationMin,
			RecenterDurationMax: parameter.DroneRecenterDurationMax,
		},
		Sim: SimConfig{
			Seed:         parameter.SimulationSeed,
			MaxDeltaTime: parameter.MaxDeltaTime,
		},
	}
}

// Load reads a TOML or YAML file over Default(); keys absent from the file keep their defaults
// Format is chosen by extension (.toml, .yaml, .yml)
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode toml %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode yaml %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when non-empty, otherwise returns Default()
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Clone returns an independent copy
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports every out-of-range field at once
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", name, v))
		}
	}
	band := func(name string, lo, hi float64) {
		if lo > hi {
			errs = append(errs, fmt.Errorf("%s min %v exceeds max %v", name, lo, hi))
		}
	}

	positive("blade.length", c.Blade.Length)
	positive("blade.radius", c.Blade.Radius)
	positive("player.hit_radius", c.Player.HitRadius)

	positive("bolt.speed_min", c.Bolt.SpeedMin)
	band("bolt.speed", c.Bolt.SpeedMin, c.Bolt.SpeedMax)
	nonNegative("bolt.half_length", c.Bolt.HalfLength)
	positive("bolt.far_clip", c.Bolt.FarClip)
	if c.Bolt.ReflectMultiplier <= 1 {
		errs = append(errs, fmt.Errorf("bolt.reflect_multiplier must be > 1, got %v", c.Bolt.ReflectMultiplier))
	}
	nonNegative("bolt.aim_jitter", c.Bolt.AimJitter)

	positive("fire.interval_min", c.Fire.IntervalMin)
	band("fire.interval", c.Fire.IntervalMin, c.Fire.IntervalMax)
	positive("fire.initial_interval", c.Fire.InitialInterval)
	if c.Fire.NearDistance >= c.Fire.FarDistance {
		errs = append(errs, fmt.Errorf("fire.near_distance %v must be < fire.far_distance %v", c.Fire.NearDistance, c.Fire.FarDistance))
	}
	positive("fire.jitter_min", c.Fire.JitterMin)
	band("fire.jitter", c.Fire.JitterMin, c.Fire.JitterMax)

	positive("drone.base_distance", c.Drone.BaseDistance)
	nonNegative("drone.idle_radius", c.Drone.IdleRadius)
	nonNegative("drone.dash_radius", c.Drone.DashRadius)
	positive("drone.idle_lerp_speed", c.Drone.IdleLerpSpeed)
	positive("drone.dash_lerp_speed", c.Drone.DashLerpSpeed)
	nonNegative("drone.center_drift_rate", c.Drone.CenterDriftRate)
	positive("drone.recenter_angle_deg", c.Drone.RecenterAngleDeg)
	if c.Drone.DashChance < 0 || c.Drone.DashChance > 1 {
		errs = append(errs, fmt.Errorf("drone.dash_chance must be within [0, 1], got %v", c.Drone.DashChance))
	}
	positive("drone.initial_duration", c.Drone.InitialDuration)
	positive("drone.idle_duration_min", c.Drone.IdleDurationMin)
	band("drone.idle_duration", c.Drone.IdleDurationMin, c.Drone.IdleDurationMax)
	positive("drone.dash_duration_min", c.Drone.DashDurationMin)
	band("drone.dash_duration", c.Drone.DashDurationMin, c.Drone.DashDurationMax)
	positive("drone.recenter_duration_min", c.Drone.RecenterDurationMin)
	band("drone.recenter_duration", c.Drone.RecenterDurationMin, c.Drone.RecenterDurationMax)

	positive("sim.max_delta_time", c.Sim.MaxDeltaTime)

	return errors.Join(errs...)
}
