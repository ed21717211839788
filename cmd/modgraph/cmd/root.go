package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GoCodeAlone/modgraph"
	"github.com/GoCodeAlone/modgraph/feeders"
	"github.com/spf13/cobra"
)

// Version information
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// PrintVersion prints version information
func PrintVersion() string {
	return fmt.Sprintf("modgraph v%s (commit: %s, built on: %s)", Version, Commit, Date)
}

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose    bool
	logFile    string
	configFile string

	logger  modgraph.Logger
	closers []io.Closer
}

// NewRootCommand creates the root command for the modgraph CLI
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "modgraph",
		Short: "modgraph - Inspect and validate module graphs",
		Long: `modgraph builds module graphs described by manifest files.
It reports cycles, missing dependencies and ambiguous exports before the
graph is wired into an application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogger(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.close()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Also write JSON logs to this file")
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Resolution config file (yaml, toml or json)")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), PrintVersion())
		},
	}
}

func (o *globalOptions) setupLogger(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	var logger modgraph.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		o.closers = append(o.closers, f)
		fileLogger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		logger = modgraph.NewDualWriterLoggerDecorator(logger, fileLogger)
	}

	o.logger = logger
	return nil
}

func (o *globalOptions) close() {
	for _, c := range o.closers {
		_ = c.Close()
	}
	o.closers = nil
}

// loadConfig reads the resolution config from the config file, if any, then
// from MODGRAPH_* environment variables.
func (o *globalOptions) loadConfig() (modgraph.Config, error) {
	sources := make([]feeders.Feeder, 0, 2)
	if o.configFile != "" {
		f, err := feeders.ForFile(o.configFile)
		if err != nil {
			return modgraph.Config{}, err
		}
		sources = append(sources, f)
	}
	sources = append(sources, feeders.NewAffixedEnvFeeder("MODGRAPH", ""))
	return modgraph.LoadConfig(sources...)
}

// buildApplication loads and compiles a manifest with placeholder
// constructors and returns an application for its root module.
func (o *globalOptions) buildApplication(path string) (*modgraph.Application, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	manifest, err := modgraph.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	root, err := manifest.Compile(modgraph.PlaceholderConstructors())
	if err != nil {
		return nil, err
	}
	return modgraph.NewApplication(root,
		modgraph.WithLogger(o.logger),
		modgraph.WithConfig(cfg),
	)
}
