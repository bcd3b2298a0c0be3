// Package cli implements the duckbook command-line interface: one cobra
// subcommand per address-book or notes-book operation, each loading the
// data directory, applying the operation, and saving on success.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/duckbook/internal/book"
	"github.com/mesh-intelligence/duckbook/internal/paths"
	"github.com/mesh-intelligence/duckbook/internal/store"
	"github.com/mesh-intelligence/duckbook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app carries the state shared by one command invocation.
type app struct {
	flags     rootFlags
	log       *zap.Logger
	ownLogger bool
	now       func() time.Time
	cfg       *viper.Viper
	configDir string
	dataDir   string
}

// Option configures NewRootCmd.
type Option func(*app)

// WithLogger makes every command log to l instead of building a logger
// from the configuration.
func WithLogger(l *zap.Logger) Option {
	return func(a *app) { a.log = l }
}

// WithClock sets the clock used for birthday queries.
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

// NewRootCmd creates the top-level "duckbook" command with global flags
// and all subcommands registered.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "duckbook",
		Short: "A local address book and notes book",
		Long:  "Duckbook keeps contacts and tagged notes in JSON documents inside a data directory.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		Version:           Version,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.ownLogger && a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&a.flags.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newContactCmd())
	root.AddCommand(a.newNoteCmd())
	root.AddCommand(a.newExportCmd())

	return root
}

// setup resolves directories, loads config.yaml, and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	a.cfg, a.configDir, a.dataDir = cfg, configDir, dataDir

	if a.log == nil {
		logger, err := buildLogger(cfg.GetString(cfgKeyLogLevel), a.flags.verbose)
		if err != nil {
			return sysError(err)
		}
		a.log, a.ownLogger = logger, true
	}
	a.log.Debug("resolved directories",
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir),
		zap.String("command", cmd.CommandPath()),
	)
	return nil
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// openStore opens the resolved data directory.
func (a *app) openStore() (*store.Store, error) {
	cfg := types.Config{
		DataDir:  a.dataDir,
		PageSize: a.cfg.GetInt(cfgKeyPageSize),
	}
	s, err := store.Open(cfg, a.log, store.WithBookOptions(book.WithClock(a.now)))
	if err != nil {
		return nil, sysError(fmt.Errorf("open data dir: %w", err))
	}
	return s, nil
}

// view runs fn against the store without saving.
func (a *app) view(fn func(*store.Store) error) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	return fn(s)
}

// update runs fn against the store and saves when fn succeeds.
func (a *app) update(fn func(*store.Store) error) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return sysError(fmt.Errorf("save data dir: %w", err))
	}
	return nil
}

// exitError carries a specific exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as a system failure (exit code 2).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps a command error to the process exit code. Errors not
// marked as system failures are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return exitCode(root.ExecuteContext(ctx))
}
