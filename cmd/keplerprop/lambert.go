package main

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/galaxias/orbit"
	"github.com/galaxias/orbit/tools"
)

type yamlTransfer struct {
	Method   string       `yaml:"method"`
	P        float64      `yaml:"p,omitempty"`
	Ψ        float64      `yaml:"psi,omitempty"`
	V1       [3]float64   `yaml:"v1"`
	V2       [3]float64   `yaml:"v2"`
	Miss     float64      `yaml:"miss"`
	Transfer yamlElements `yaml:"transfer"`
}

func lambertCmd(env *environment) *cobra.Command {
	var (
		μ, tof        float64
		r1, r2        []float64
		longWay       bool
		method        string
		guess, relTol float64
	)
	cmd := &cobra.Command{
		Use:   "lambert",
		Short: "Find the transfer between two positions in a given time of flight",
		Long: `lambert solves the boundary value problem between two positions, either
by iterating on the semi-parameter (gauss) or on the universal variable
(universal), and checks the transfer by propagating it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := env.cliLogger()
			if len(r1) != 3 || len(r2) != 3 {
				return errors.New("positions must have three components")
			}
			p1 := r3.Vec{X: r1[0], Y: r1[1], Z: r1[2]}
			p2 := r3.Vec{X: r2[0], Y: r2[1], Z: r2[2]}
			out := yamlTransfer{Method: method}
			var v1, v2 r3.Vec
			switch method {
			case "gauss":
				g, err := tools.NewGaussProblem(μ, p1, p2, longWay)
				if err != nil {
					return err
				}
				start := guess
				if start == 0 {
					start = g.InitialGuess()
				}
				level.Debug(logger).Log("minP", g.MinP(), "limitP", g.LimitP(), "guess", start)
				if out.P, err = g.Solve(tof, start, relTol); err != nil {
					return err
				}
				v1, v2 = g.VelocitiesAt(out.P)
			case "universal":
				dm := 1.
				if longWay {
					dm = -1
				}
				Vi, Vf, ψ, err := tools.Lambert(mat.NewVecDense(3, r1), mat.NewVecDense(3, r2), tof, dm, μ)
				if err != nil {
					return err
				}
				out.Ψ = ψ
				v1 = r3.Vec{X: Vi.AtVec(0), Y: Vi.AtVec(1), Z: Vi.AtVec(2)}
				v2 = r3.Vec{X: Vf.AtVec(0), Y: Vf.AtVec(1), Z: Vf.AtVec(2)}
			default:
				return fmt.Errorf("unknown method `%s`", method)
			}
			out.V1 = [3]float64{v1.X, v1.Y, v1.Z}
			out.V2 = [3]float64{v2.X, v2.Y, v2.Z}

			central, err := orbit.NewCentralBody(μ, orbit.WithLogger(env.logger), orbit.WithMetrics(env.metrics))
			if err != nil {
				return err
			}
			transfer, err := orbit.NewCenterOfMass(0, 0, orbit.Cartesian{Position: p1, Velocity: v1}, central,
				orbit.WithName("transfer"), orbit.WithLogger(env.logger), orbit.WithMetrics(env.metrics))
			if err != nil {
				return err
			}
			arrival, err := transfer.CoordinatesAt(tof)
			if err != nil {
				return err
			}
			out.Miss = r3.Norm(r3.Sub(arrival.Position, p2))
			out.Transfer = newYAMLElements(transfer)
			level.Info(logger).Log("method", method, "type", transfer.OrbitType(), "miss", out.Miss)
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Float64Var(&μ, "mu", 3.986004418e14, "gravitational parameter of the central body")
	cmd.Flags().Float64Var(&tof, "tof", 0, "time of flight")
	cmd.Flags().Float64SliceVar(&r1, "r1", nil, "initial position x,y,z")
	cmd.Flags().Float64SliceVar(&r2, "r2", nil, "final position x,y,z")
	cmd.Flags().BoolVar(&longWay, "long-way", false, "go the long way round")
	cmd.Flags().StringVar(&method, "method", "gauss", "gauss or universal")
	cmd.Flags().Float64Var(&guess, "guess", 0, "initial semi-parameter (gauss only, defaults to the elliptic midpoint)")
	cmd.Flags().Float64Var(&relTol, "tolerance", 1e-12, "relative tolerance on the semi-parameter")
	return cmd
}

type yamlHohmann struct {
	Departure float64       `yaml:"departure"`
	Arrival   float64       `yaml:"arrival"`
	Δv1       float64       `yaml:"dv1"`
	Δv2       float64       `yaml:"dv2"`
	TOF       time.Duration `yaml:"tof"`
}

func hohmannCmd(env *environment) *cobra.Command {
	var μ, rI, rF float64
	cmd := &cobra.Command{
		Use:   "hohmann",
		Short: "Compute the Hohmann transfer between two circular orbits",
		RunE: func(cmd *cobra.Command, args []string) error {
			vDep, vArr, tof, err := tools.Hohmann(rI, rF, μ)
			if err != nil {
				return err
			}
			out := yamlHohmann{
				Departure: vDep,
				Arrival:   vArr,
				Δv1:       vDep - math.Sqrt(μ/rI),
				Δv2:       math.Sqrt(μ/rF) - vArr,
				TOF:       tof,
			}
			level.Info(env.cliLogger()).Log("transfer", "hohmann", "Δv", math.Abs(out.Δv1)+math.Abs(out.Δv2), "tof", tof)
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Float64Var(&μ, "mu", 3.986004418e14, "gravitational parameter of the central body")
	cmd.Flags().Float64Var(&rI, "r1", 0, "initial radius")
	cmd.Flags().Float64Var(&rF, "r2", 0, "final radius")
	return cmd
}
