package main

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/galaxias/orbit"
)

type yamlElements struct {
	Type          string   `yaml:"type"`
	Eccentricity  float64  `yaml:"eccentricity"`
	Alpha         float64  `yaml:"alpha"`
	SemiMajorAxis *float64 `yaml:"semiMajorAxis,omitempty"`
	Period        *float64 `yaml:"period,omitempty"`
	Inclination   float64  `yaml:"inclination"`
	Longitude     float64  `yaml:"longitude"`
	Periapsis     float64  `yaml:"periapsis"`
}

type yamlState struct {
	JD       float64    `yaml:"jd"`
	Epoch    time.Time  `yaml:"epoch"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
}

type yamlTrajectory struct {
	Body     string       `yaml:"body"`
	Center   string       `yaml:"center"`
	Elements yamlElements `yaml:"elements"`
	States   []yamlState  `yaml:"states,omitempty"`
}

// newYAMLElements returns the elements of the body, with angles in degrees.
func newYAMLElements(c *orbit.CenterOfMass) yamlElements {
	el := c.OrbitalElements()
	out := yamlElements{
		Type:         c.OrbitType().String(),
		Eccentricity: el.Eccentricity,
		Alpha:        el.Alpha,
		Inclination:  orbit.Rad2deg(el.Inclination),
		Longitude:    orbit.Rad2deg(el.Longitude),
		Periapsis:    orbit.Rad2deg(el.Periapsis),
	}
	if a, err := el.SemiMajorAxis(); err == nil {
		out.SemiMajorAxis = &a
	}
	if period, err := c.OrbitalPeriod(); err == nil {
		p := period.High()
		out.Period = &p
	}
	return out
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeStates writes the states in the output format of the scenario.
func writeStates(w io.Writer, s *scenario, c *orbit.CenterOfMass, states []orbit.Ephemeris) error {
	switch s.format {
	case "xyzv":
		return orbit.WriteInterpolatedStates(w, states, s.epoch.Add(s.start))
	case "csv":
		return orbit.WriteCSV(w, states, c.CentralMu())
	case "yaml":
		traj := yamlTrajectory{Body: s.name, Center: s.center, Elements: newYAMLElements(c)}
		for _, eph := range states {
			r, v := eph.State.Position, eph.State.Velocity
			traj.States = append(traj.States, yamlState{
				JD:       eph.JD,
				Epoch:    eph.DT().UTC(),
				Position: [3]float64{r.X, r.Y, r.Z},
				Velocity: [3]float64{v.X, v.Y, v.Z},
			})
		}
		return writeYAML(w, traj)
	default:
		return fmt.Errorf("unknown output format `%s`", s.format)
	}
}
