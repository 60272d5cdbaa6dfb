package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/config"
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/rgehrsitz/hecmproj/internal/transform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logrusLogger implements calculation.Logger on a logrus entry
type logrusLogger struct {
	entry *logrus.Entry
}

func (l logrusLogger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l logrusLogger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l logrusLogger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l logrusLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// newLogger writes warnings to w, or everything down to debug when debug is set
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// run bundles what every projection command needs
type run struct {
	path    string
	config  *domain.Configuration
	input   domain.ReverseMortgageInput
	engine  *calculation.ProjectionEngine
	horizon int
	log     *logrus.Entry
}

// prepare loads the input file and lending limits and builds the engine.
// Commands without a horizon flag use the file's horizon.
func prepare(cmd *cobra.Command, path string) (*run, error) {
	debugMode, _ := cmd.Flags().GetBool("debug")
	limitsPath, _ := cmd.Flags().GetString("limits")
	horizon, _ := cmd.Flags().GetInt("horizon")
	horizonSet := cmd.Flags().Changed("horizon")

	entry := newLogger(cmd.ErrOrStderr(), debugMode).WithField("input", path)

	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	limits, err := config.LoadLendingLimits(limitsPath)
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewProjectionEngine(limits)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logrusLogger{entry: entry})
	engine.Debug = debugMode

	if !horizonSet {
		horizon = cfg.Projection.Horizon()
	}
	entry.Debugf("loaded %q, lending limits %d, horizon %d years", cfg.Name, limits.Metadata.DataYear, horizon)

	return &run{
		path:    path,
		config:  cfg,
		input:   cfg.Input(),
		engine:  engine,
		horizon: horizon,
		log:     entry,
	}, nil
}

// applyWhatIf applies --with templates and then --transform specs in order
func (r *run) applyWhatIf(templates string, specs []string) error {
	var transforms []transform.ScenarioTransform

	registry := transform.CreateBuiltInTemplates()
	for _, name := range transform.ParseTemplateList(templates) {
		t, ok := registry.Get(name)
		if !ok {
			return fmt.Errorf("template %s not found", name)
		}
		transforms = append(transforms, t.Transforms...)
	}

	parser := transform.NewTransformRegistry()
	for _, spec := range specs {
		t, err := parser.ParseTransformSpec(spec)
		if err != nil {
			return err
		}
		transforms = append(transforms, t)
	}

	if len(transforms) == 0 {
		return nil
	}
	in, err := transform.ApplyTransforms(r.input, transforms)
	if err != nil {
		return err
	}
	for _, t := range transforms {
		r.log.Debugf("applied %s", t.Description())
	}
	r.input = in
	return nil
}

func (r *run) project(ctx context.Context) (*domain.ProjectionResult, error) {
	return r.engine.ProjectNamed(ctx, r.config.Name, r.input, r.horizon)
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Int("horizon", 0, "Projection horizon in years (default: the input file's horizon_years)")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hecm %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hecm",
		Short: "Reverse mortgage projection CLI",
		Long: `Project home value, forward mortgage balance, equity and reverse mortgage
net proceeds year by year, and compare what-if scenarios.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("limits", "", "Lending limits YAML file (default: built-in table)")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging of per-year calculations")

	root.AddCommand(
		projectCmd(),
		scheduleCmd(),
		validateCmd(),
		exampleCmd(),
		compareCmd(),
		sensitivityCmd(),
		versionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
