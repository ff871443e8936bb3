// Package cli implements the liftlog command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/config"
	"github.com/akyro/liftlog/internal/storage"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configFile string
	output     string
	verbose    bool
}

// app carries runtime state for one invocation of the root command.
type app struct {
	flags globalFlags
	cfg   *config.Config
	log   *slog.Logger
	store storage.Store
}

// NewRootCmd creates the root command for the liftlog CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "liftlog",
		Short: "liftlog - strength-training workout log",
		Long: `liftlog records strength-training workouts and analyzes how training
volume (sets x reps x weight) is distributed across exercises and the
push/pull/legs movement categories.

Workouts are stored by name in a directory of YAML records, a SQLite
database or PostgreSQL, and can be served over HTTP (optionally on a
tailnet) or MCP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.flags.configFile, "config", "c", "", "config file path (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVarP(&a.flags.output, "output", "o", outputText, "output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newAnalyzeCmd(a))
	rootCmd.AddCommand(newCompareCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newImportCmd(a))
	rootCmd.AddCommand(newPushCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newMCPCmd(a))

	return rootCmd
}

// setup loads config and builds the logger. The store is opened lazily by
// the commands that need one.
func (a *app) setup(cmd *cobra.Command) error {
	if a.flags.output != outputText && a.flags.output != outputJSON {
		return fmt.Errorf("invalid output format %q (valid options: text, json)", a.flags.output)
	}

	cfg, err := config.Load(a.flags.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	level := cfg.Log.SlogLevel()
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.log.Debug("config loaded", "driver", cfg.Storage.Driver, "path", a.flags.configFile)
	return nil
}

// openStore opens the configured backend once per invocation.
func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := storage.Open(ctx, a.cfg.Storage, a.log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	a.store = store
	return store, nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) jsonOutput() bool {
	return a.flags.output == outputJSON
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// percent formats a fraction in [0, 1] as a percentage.
func percent(frac float64) string {
	return fmt.Sprintf("%.2f%%", frac*100)
}

// Execute runs the root command, canceling its context on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	// PersistentPostRunE is skipped when a command fails.
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}
