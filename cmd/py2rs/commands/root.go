// Package commands implements the py2rs command line.
package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/py2rs/config"
	"github.com/teranos/py2rs/display"
	"github.com/teranos/py2rs/driver"
	"github.com/teranos/py2rs/errors"
	"github.com/teranos/py2rs/logger"
	"github.com/teranos/py2rs/transpile"
)

// effective is the configuration resolved by setup for the running command.
var (
	effective *config.Config
	verbosity int
)

// NewRootCmd builds the py2rs command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "py2rs <path>...",
		Short: "Translate Python source into Rust-syntax source",
		Long: `py2rs - Translate Python modules into Rust-syntax source for hand finishing.

Each input is parsed, walked once, and written to stdout as Rust. Constructs
that only translate approximately are flagged with /* ... */ comments.
Constructs with no translation (comprehensions, del, default or variadic
parameters, ...) stop the run with a diagnostic naming the construct, its
line, and its parse tree.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (PY2RS_* prefix)
3. --config file
4. Project config (nearest py2rs.toml)
5. User config (~/.py2rs/config.toml)
6. System config (/etc/py2rs/config.toml)
7. Default values

Examples:
  py2rs app.py                      # Translate one file
  py2rs --signatures generic a.py   # Type parameters for unannotated arguments
  py2rs a.py b.py > out.rs          # Translate several files concurrently
  py2rs dump app.py                 # Show the parse tree of each statement
  py2rs watch app.py                # Re-translate on every save`,
		Args:              cobra.MinimumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runTranslate,
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().String("config", "", "Configuration file merged above discovered files")
	root.PersistentFlags().String("signatures", "", "Parameter typing: untyped or generic (default from config)")
	root.PersistentFlags().Bool("json", false, "Emit logs and diagnostics as JSON on stderr")

	root.AddCommand(newDumpCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	defer logger.Cleanup()

	cmd, err := NewRootCmd().ExecuteC()
	if err != nil {
		report(cmd, err)
		return 1
	}
	return 0
}

func report(cmd *cobra.Command, err error) {
	reportTo(os.Stderr, display.ContextFor(os.Stderr), cmd, err)
}

func reportTo(w io.Writer, ctx display.ErrorContext, cmd *cobra.Command, err error) {
	if te, ok := transpile.AsTranslateError(err); ok {
		logger.Debugw("Translation failed",
			logger.FieldErrorKind, te.Kind,
			logger.FieldNodeKind, te.NodeKind,
			logger.FieldLine, te.Line)
	}

	asJSON := display.ShouldOutputJSON(cmd) || (effective != nil && effective.Log.JSON)
	if rErr := display.Report(w, err, asJSON, ctx); rErr != nil {
		logger.Errorw("Failed to report error", logger.FieldError, rErr)
	}
}

// setup resolves configuration and initializes the global logger before any
// command runs.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if cmd.Flags().Changed("signatures") {
		cfg.Translate.Signatures, _ = cmd.Flags().GetString("signatures")
		if err := cfg.Validate(); err != nil {
			return errors.WithHint(err, "use --signatures untyped or --signatures generic")
		}
	}

	verbosity, _ = cmd.Flags().GetCount("verbose")
	if err := logger.Initialize(cfg.Log.JSON || display.ShouldOutputJSON(cmd), verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	logger.Debugw("Configuration resolved",
		logger.FieldSignatures, cfg.Translate.Signatures,
		logger.FieldWorkers, cfg.Driver.Workers,
		"verbosity", logger.LevelName(verbosity))

	effective = cfg
	return nil
}

// driverOptions maps the effective configuration onto driver options.
func driverOptions(cfg *config.Config) (driver.Options, error) {
	topts, err := cfg.TranslateOptions()
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		Translate: topts,
		Workers:   cfg.Driver.Workers,
		Debounce:  time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		Logger:    logger.ComponentLogger("driver"),
		Verbosity: verbosity,
	}, nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	opts, err := driverOptions(effective)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return driver.Run(ctx, args, opts, cmd.OutOrStdout())
}
