package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/galaxias/orbit"
)

const (
	defaultScenario = "~~unset~~"
	envPrefix       = "KEPLERPROP"
)

// scenario is a propagation described in a TOML file.
type scenario struct {
	name      string
	mu        float64 // of the body itself
	center    string
	centralMu float64
	epoch     time.Time
	state     orbit.Cartesian
	start     time.Duration
	end       time.Duration
	step      time.Duration
	tolerance float64
	format    string
	output    string
	catalog   string
}

// newViper returns a viper instance reading the given scenario file, with
// KEPLERPROP_* environment overrides (e.g. KEPLERPROP_PROPAGATION_STEP).
func newViper(path string) (*viper.Viper, error) {
	if path == defaultScenario || path == "" {
		return nil, errors.New("no scenario provided")
	}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(file, ".toml"))
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("body.name", "body")
	v.SetDefault("central.name", "Earth")
	v.SetDefault("propagation.start", "0s")
	v.SetDefault("propagation.step", "60s")
	v.SetDefault("propagation.tolerance", orbit.DefaultTolerance)
	v.SetDefault("output.format", "xyzv")
}

// readScenario reads the scenario from a configured viper instance.
func readScenario(v *viper.Viper) (*scenario, error) {
	s := &scenario{
		name:      v.GetString("body.name"),
		mu:        v.GetFloat64("body.mu"),
		center:    v.GetString("central.name"),
		centralMu: v.GetFloat64("central.mu"),
		start:     v.GetDuration("propagation.start"),
		end:       v.GetDuration("propagation.end"),
		step:      v.GetDuration("propagation.step"),
		tolerance: v.GetFloat64("propagation.tolerance"),
		format:    strings.ToLower(v.GetString("output.format")),
		output:    v.GetString("output.file"),
		catalog:   v.GetString("output.catalog"),
	}
	if !v.IsSet("central.mu") {
		// Known bodies need not set their gravitational parameter.
		object, err := orbit.CelestialObjectFromString(s.center)
		if err != nil {
			return nil, fmt.Errorf("central.mu is not set: %w", err)
		}
		s.centralMu = object.GM()
	}
	if s.centralMu <= 0 {
		return nil, fmt.Errorf("central.mu must be positive, got %f", s.centralMu)
	}
	epoch, err := readJDEorTime(v, "state.epoch")
	if err != nil {
		return nil, err
	}
	s.epoch = epoch
	switch {
	case v.IsSet("state.position") || v.IsSet("state.velocity"):
		if s.state.Position, err = readVec(v, "state.position"); err != nil {
			return nil, err
		}
		if s.state.Velocity, err = readVec(v, "state.velocity"); err != nil {
			return nil, err
		}
	case v.IsSet("elements.sma"):
		if s.state, err = readElements(v, s.centralMu); err != nil {
			return nil, err
		}
	default:
		// Heliocentric ephemeris of a known body.
		object, err := orbit.CelestialObjectFromString(s.name)
		if err != nil {
			return nil, fmt.Errorf("no initial state: %w", err)
		}
		if s.state, err = object.HeliocentricState(s.epoch); err != nil {
			return nil, err
		}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *scenario) validate() error {
	if s.step <= 0 {
		return fmt.Errorf("propagation.step must be positive, got %s", s.step)
	}
	if s.end < s.start {
		return fmt.Errorf("propagation ends (%s) before it starts (%s)", s.end, s.start)
	}
	switch s.format {
	case "xyzv", "csv", "yaml":
	default:
		return fmt.Errorf("unknown output format `%s`", s.format)
	}
	if s.catalog != "" && s.format != "xyzv" {
		return errors.New("a Cosmographia catalog requires the xyzv output format")
	}
	return nil
}

// readElements reads the initial state as orbital elements, in meters and degrees.
func readElements(v *viper.Viper, μ float64) (orbit.Cartesian, error) {
	a := v.GetFloat64("elements.sma")
	if a == 0 {
		return orbit.Cartesian{}, errors.New("elements.sma may not be zero")
	}
	el, err := orbit.NewOrbitalElements(
		v.GetFloat64("elements.ecc"),
		1/a,
		orbit.Deg2rad(v.GetFloat64("elements.inc")),
		orbit.Deg2rad(v.GetFloat64("elements.RAAN")),
		orbit.Deg2rad(v.GetFloat64("elements.argPeri")),
	)
	if err != nil {
		return orbit.Cartesian{}, err
	}
	return el.StateAt(μ, orbit.Deg2rad(v.GetFloat64("elements.tAnomaly")))
}

// readJDEorTime reads a date either as a Julian date or as a TOML date.
func readJDEorTime(v *viper.Viper, key string) (time.Time, error) {
	if !v.IsSet(key) {
		return time.Time{}, fmt.Errorf("%s is not set", key)
	}
	if jde := v.GetFloat64(key); jde != 0 {
		return julian.JDToTime(jde), nil
	}
	dt := v.GetTime(key)
	if dt.IsZero() {
		return dt, fmt.Errorf("could not understand date in %s", key)
	}
	return dt, nil
}

// readVec reads a three dimensional vector in SI units.
func readVec(v *viper.Viper, key string) (r3.Vec, error) {
	raw, err := cast.ToSliceE(v.Get(key))
	if err != nil {
		return r3.Vec{}, fmt.Errorf("%s: %w", key, err)
	}
	if len(raw) != 3 {
		return r3.Vec{}, fmt.Errorf("%s must have three components, got %d", key, len(raw))
	}
	var vals [3]float64
	for i, c := range raw {
		if vals[i], err = cast.ToFloat64E(c); err != nil {
			return r3.Vec{}, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
	}
	return r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// body returns the propagated body around its central body.
func (s *scenario) body(env *environment) (*orbit.CenterOfMass, error) {
	opts := []orbit.Option{
		orbit.WithLogger(env.logger),
		orbit.WithMetrics(env.metrics),
		orbit.WithTolerance(s.tolerance),
	}
	central, err := orbit.NewCentralBody(s.centralMu, append(opts, orbit.WithName(s.center))...)
	if err != nil {
		return nil, err
	}
	return orbit.NewCenterOfMass(s.mu, 0, s.state, central, append(opts, orbit.WithName(s.name))...)
}
