package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/eqcore/internal/config"
	"github.com/roach88/eqcore/internal/session"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is resolved in PersistentPreRunE from ConfigPath, or the
	// defaults when no file is given.
	Config config.Config

	// SessionOptions are passed to session.Open. Tests use them to pin the
	// session ID.
	SessionOptions []session.Option
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the eqcore CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eqcore",
		Short: "eqcore - dimensional analysis and function evaluation",
		Long: `Dimensional analysis and elementary-function evaluation for
equation-oriented models.

Dimensions are written as exponent tokens over the base codes
M Q L T TMP C E LUM P S, for example "1/1M -1/1L -2/1T" for pressure.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg := config.Default()
			if opts.ConfigPath != "" {
				var err error
				if cfg, err = config.Load(opts.ConfigPath); err != nil {
					return WrapExitError(ExitCommandError, "load config", err)
				}
			}
			opts.Config = cfg
			return setupLogging(cmd.ErrOrStderr(), cfg.Log.Level, opts.Verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(NewDimCommand(opts))
	cmd.AddCommand(NewFuncCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewFluidCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

// setupLogging installs a text handler on w as the default slog logger.
// --verbose forces debug level.
func setupLogging(w io.Writer, level string, verbose bool) error {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return err
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newFormatter builds the formatter for cmd. Verbose logs go to stderr to
// avoid corrupting JSON.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openSession opens a session for cmd with the resolved configuration.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session.Session, error) {
	s, err := session.Open(cmd.Context(), opts.Config, opts.SessionOptions...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open session", err)
	}
	return s, nil
}

// withSession opens a session, runs fn and closes the session before the
// result is written, so a failed catalog save is reported in its place.
// fn reports its own failures through f and returns a nil result with them;
// a result returned together with an error is written before the error is
// returned.
func withSession(opts *RootOptions, cmd *cobra.Command, f *OutputFormatter, fn func(*session.Session) (any, error)) error {
	sess, err := openSession(opts, cmd)
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeCatalog, err)
	}
	f.SessionID = sess.ID()

	res, runErr := fn(sess)
	if cerr := sess.Close(cmd.Context()); cerr != nil {
		if runErr == nil {
			return f.fail(ExitFailure, ErrCodeCatalog, cerr)
		}
		slog.Warn("close session", "session", sess.ID(), "error", cerr)
	}
	if res != nil {
		if err := f.Success(res); err != nil {
			return err
		}
	}
	return runErr
}
