package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/seminar-events/internal/aggregate"
	"github.com/pfrederiksen/seminar-events/internal/calendar"
	"github.com/pfrederiksen/seminar-events/internal/config"
	"github.com/pfrederiksen/seminar-events/internal/extract"
	"github.com/pfrederiksen/seminar-events/internal/fetcher"
	"github.com/pfrederiksen/seminar-events/internal/logger"
	"github.com/pfrederiksen/seminar-events/internal/metrics"
	"github.com/pfrederiksen/seminar-events/internal/normalize"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

const calendarName = "Frankfurt Seminars"

type options struct {
	configPath  string
	output      string
	icsPath     string
	metricsPath string
	logFormat   string
	verbose     bool

	// now is used for the run's current date; nil means time.Now
	now func() time.Time
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seminar-events",
		Short: "Scrape upcoming seminar events into a JSON feed",
		Long: `Scrapes the configured university seminar pages, keeps upcoming events,
removes duplicates and writes them as a single sorted JSON array.

A source that cannot be fetched or parsed is logged and skipped. The command
fails only when every source failed or the feed could not be written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML file overriding the built-in configuration")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Feed path (overrides configuration)")
	cmd.Flags().StringVar(&opts.icsPath, "ics", "", "Also write the events as an iCalendar file")
	cmd.Flags().StringVar(&opts.metricsPath, "metrics-file", "", "Write run statistics in Prometheus text format")

	cmd.AddCommand(newSourcesCmd(opts), newVersionCmd())
	return cmd
}

// setupLogging installs the default logger; logs always go to stderr
func (o *options) setupLogging(stderr io.Writer) error {
	format, err := logger.ParseFormat(o.logFormat)
	if err != nil {
		return err
	}
	level := logger.LevelFromEnv()
	if o.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, stderr, format))
	return nil
}

func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if o.output != "" {
		cfg.Output = o.output
	}
	return cfg, nil
}

// run is the main command logic
func (o *options) run(ctx context.Context, stdout, stderr io.Writer) error {
	if err := o.setupLogging(stderr); err != nil {
		return err
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	sources, err := aggregate.SourcesFromConfig(cfg.Sources, extract.DefaultRegistry())
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded", logger.Fields{
		"config":   o.configPath,
		"output":   cfg.Output,
		"timezone": cfg.Timezone,
		"timeout":  cfg.TimeoutDuration().String(),
		"sources":  len(sources),
	})

	f := fetcher.New(fetcher.NewClient(cfg.TimeoutDuration()))
	n := normalize.New(loc, o.now)
	agg := aggregate.New(f, n, sources,
		aggregate.WithOutput(cfg.Output),
		aggregate.WithLogger(logger.Default()),
	)

	result, runErr := agg.Run(ctx)

	// Metrics are written for failed runs too so the failure is visible
	if o.metricsPath != "" && result != nil {
		rec := metrics.New()
		rec.Observe(result, time.Now().Unix())
		if err := rec.WriteFile(o.metricsPath); err != nil {
			logger.Error("writing metrics failed", logger.Fields{"path": o.metricsPath}, err)
		}
	}

	if runErr != nil {
		return runErr
	}

	if o.icsPath != "" {
		if err := calendar.WriteFile(o.icsPath, result.Events, calendarName, loc); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Wrote %d events to %s", len(result.Events), cfg.Output)
	if failed := result.Failed(); failed > 0 {
		fmt.Fprintf(stdout, " (%d of %d sources failed)", failed, len(result.Sources))
	}
	fmt.Fprintln(stdout)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seminar-events %s\n", Version)
		},
	}
}

// Execute runs the CLI and exits non-zero on failure
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
