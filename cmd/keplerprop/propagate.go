package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/galaxias/orbit"
	"github.com/galaxias/orbit/tools"
)

// verifyStep is the RK4 step used to check the analytical propagation, in seconds.
const verifyStep = 10.

func propagateCmd(env *environment) *cobra.Command {
	var (
		scenarioPath string
		verify       bool
	)
	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Propagate a scenario and write its trajectory",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := env.cliLogger()
			v, err := newViper(scenarioPath)
			if err != nil {
				return err
			}
			s, err := readScenario(v)
			if err != nil {
				return err
			}
			body, err := s.body(env)
			if err != nil {
				return err
			}
			level.Info(logger).Log("body", s.name, "type", body.OrbitType(), "elements", body.OrbitalElements())
			level.Debug(logger).Log("epoch", s.epoch, "start", s.start, "end", s.end, "step", s.step)
			states, err := orbit.Ephemerides(body, s.epoch, s.start.Seconds(), s.end.Seconds(), s.step.Seconds())
			if err != nil {
				return err
			}
			if verify && len(states) > 0 {
				t := s.start.Seconds() + float64(len(states)-1)*s.step.Seconds()
				if err := verifyNumerically(logger, s, t, states[len(states)-1].State); err != nil {
					return err
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if s.output != "" {
				f, err := os.Create(s.output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := writeStates(w, s, body, states); err != nil {
				return err
			}
			level.Info(logger).Log("status", "propagated", "states", len(states), "output", s.output)
			if s.catalog != "" {
				return writeCatalogFile(s, states)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scenarioPath, "scenario", defaultScenario, "propagation scenario TOML file")
	cmd.Flags().BoolVar(&verify, "verify", false, "compare the last state with a numerical RK4 integration")
	return cmd
}

// verifyNumerically compares the state at t with an RK4 integration from the initial state.
func verifyNumerically(logger kitlog.Logger, s *scenario, t float64, analytical orbit.Cartesian) error {
	steps := uint64(math.Ceil(math.Abs(t) / verifyStep))
	numerical, err := tools.IntegrateTwoBody(s.centralMu, s.state, t, steps)
	if err != nil {
		return fmt.Errorf("numerical integration: %w", err)
	}
	Δr := r3.Norm(r3.Sub(numerical.Position, analytical.Position))
	Δv := r3.Norm(r3.Sub(numerical.Velocity, analytical.Velocity))
	l := level.Info(logger)
	if Δr > 1e-6*analytical.RNorm() {
		l = level.Warn(logger)
	}
	l.Log("check", "rk4", "t", t, "steps", steps, "Δr", Δr, "Δv", Δv)
	return nil
}

func writeCatalogFile(s *scenario, states []orbit.Ephemeris) error {
	if s.output == "" {
		return fmt.Errorf("catalog %s needs an output file for its trajectory", s.catalog)
	}
	catalog, err := orbit.NewCatalog(s.name, s.center, filepath.Base(s.output), states)
	if err != nil {
		return err
	}
	f, err := os.Create(s.catalog)
	if err != nil {
		return err
	}
	defer f.Close()
	return orbit.WriteCatalog(f, catalog)
}

func elementsCmd(env *environment) *cobra.Command {
	var scenarioPath string
	cmd := &cobra.Command{
		Use:   "elements",
		Short: "Print the orbital elements of the body of a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(scenarioPath)
			if err != nil {
				return err
			}
			s, err := readScenario(v)
			if err != nil {
				return err
			}
			body, err := s.body(env)
			if err != nil {
				return err
			}
			level.Debug(env.cliLogger()).Log("body", body)
			return writeYAML(cmd.OutOrStdout(), yamlTrajectory{Body: s.name, Center: s.center, Elements: newYAMLElements(body)})
		},
	}
	cmd.Flags().StringVar(&scenarioPath, "scenario", defaultScenario, "propagation scenario TOML file")
	return cmd
}
