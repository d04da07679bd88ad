package main

import (
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/galaxias/orbit"
)

var (
	verbose     bool
	showMetrics bool
)

func main() {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	rootCmd := &cobra.Command{
		Use:   "keplerprop",
		Short: "Analytical two body propagation with universal variables",
		Long: `keplerprop propagates a body around its central body by solving the
universal Kepler equation, prints osculating elements and solves the Gauss
problem between two positions.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "really verbose (esp. for configuration)")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "log the propagation metrics on exit")

	env := &environment{}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		allow := level.AllowInfo()
		if verbose {
			allow = level.AllowDebug()
		}
		env.logger = level.NewFilter(logger, allow)
		env.registry = prometheus.NewRegistry()
		env.metrics = orbit.NewMetrics(env.registry)
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if showMetrics {
			env.logMetrics()
		}
	}
	rootCmd.AddCommand(propagateCmd(env), elementsCmd(env), lambertCmd(env), hohmannCmd(env))

	if err := rootCmd.Execute(); err != nil {
		level.Error(kitlog.With(logger, "subsys", "cli")).Log("err", err)
		os.Exit(1)
	}
}

// environment is shared by all commands.
type environment struct {
	logger   kitlog.Logger
	registry *prometheus.Registry
	metrics  *orbit.Metrics
}

func (e *environment) cliLogger() kitlog.Logger {
	return kitlog.With(e.logger, "subsys", "cli")
}

// logMetrics logs every sample of the registry.
func (e *environment) logMetrics() {
	logger := kitlog.With(e.logger, "subsys", "metrics")
	families, err := e.registry.Gather()
	if err != nil {
		level.Warn(logger).Log("err", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			kv := []interface{}{"metric", mf.GetName()}
			for _, lbl := range m.GetLabel() {
				kv = append(kv, lbl.GetName(), lbl.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				kv = append(kv, "value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				kv = append(kv, "count", m.GetHistogram().GetSampleCount(), "sum", m.GetHistogram().GetSampleSum())
			}
			level.Info(logger).Log(kv...)
		}
	}
}
