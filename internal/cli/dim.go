package cli

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/eqcore/internal/dimen"
	"github.com/roach88/eqcore/internal/frac"
	"github.com/roach88/eqcore/internal/session"
)

// DimOptions holds flags for the dim commands.
type DimOptions struct {
	*RootOptions
	Check bool
}

// check returns the --check flag if it was given, else the config value.
func (o *DimOptions) check(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("check"); f != nil && f.Changed {
		return o.Check
	}
	return o.Config.Dimensions.Check
}

// DimResult is the output of a dimension operation.
type DimResult struct {
	Dimension     string `json:"dimension"`
	Wild          bool   `json:"wild"`
	Dimensionless bool   `json:"dimensionless"`
}

func (r DimResult) String() string { return r.Dimension }

func newDimResult(h dimen.Handle) DimResult {
	return DimResult{
		Dimension:     h.String(),
		Wild:          h.IsWild(),
		Dimensionless: !h.IsWild() && h.Vector().IsDimensionless(),
	}
}

// DumpResult lists the interned dimensions in store order.
type DumpResult struct {
	Dimensions []string `json:"dimensions"`
	text       string
}

func (r DumpResult) String() string { return strings.TrimSuffix(r.text, "\n") }

// NewDimCommand creates the dim command group.
func NewDimCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DimOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dim",
		Short: "Dimension algebra",
		Long: `Parse, combine and inspect dimensions.

A dimension is written as space- or comma-separated exponent tokens, e.g.
"1/1M -1/1L -2/1T" or 1/1M,-1/1L,-2/1T, or as "dimensionless" or "wild".
Quote dimensions that contain spaces; put "--" before a dimension that
starts with a minus sign.`,
	}
	cmd.PersistentFlags().BoolVar(&opts.Check, "check", false, "reject operands with unsuitable fractional exponents (default from config)")

	unary := func(use, short string, op func(s *dimen.Store, h dimen.Handle, check bool) (dimen.Handle, error)) *cobra.Command {
		return &cobra.Command{
			Use:           use + " <dim>",
			Short:         short,
			Args:          cobra.ExactArgs(1),
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDim(opts, cmd, args, func(s *dimen.Store, hs []dimen.Handle) (dimen.Handle, error) {
					return op(s, hs[0], opts.check(cmd))
				})
			},
		}
	}
	binary := func(use, short string, op func(s *dimen.Store, a, b dimen.Handle, check bool) (dimen.Handle, error)) *cobra.Command {
		return &cobra.Command{
			Use:           use + " <dim> <dim>",
			Short:         short,
			Args:          cobra.ExactArgs(2),
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDim(opts, cmd, args, func(s *dimen.Store, hs []dimen.Handle) (dimen.Handle, error) {
					return op(s, hs[0], hs[1], opts.check(cmd))
				})
			},
		}
	}

	cmd.AddCommand(
		unary("parse", "Print the canonical form of a dimension",
			func(_ *dimen.Store, h dimen.Handle, _ bool) (dimen.Handle, error) { return h, nil }),
		unary("sqr", "Dimension of x^2", (*dimen.Store).Square),
		unary("sqrt", "Dimension of sqrt(x)", (*dimen.Store).Half),
		unary("cube", "Dimension of x^3", (*dimen.Store).Cube),
		unary("cbrt", "Dimension of cbrt(x)", (*dimen.Store).Third),
		binary("sum", "Add exponents (dimension of a product)", (*dimen.Store).SumDimensions),
		binary("diff", "Subtract exponents (dimension of a quotient)", (*dimen.Store).DiffDimensions),
		binary("match", "Unify two dimensions",
			func(s *dimen.Store, a, b dimen.Handle, _ bool) (dimen.Handle, error) { return s.CheckMatch(a, b) }),
		newDimScaleCommand(opts),
		newDimPowCommand(opts),
		newDimDumpCommand(opts),
	)
	return cmd
}

func newDimScaleCommand(opts *DimOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "scale <dim> <n/d>",
		Short:         "Multiply every exponent by a fraction",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := frac.Parse(args[1])
			if err != nil {
				return newFormatter(opts.RootOptions, cmd).fail(ExitCommandError, ErrCodeInvalidArgs, err)
			}
			return runDim(opts, cmd, args[:1], func(s *dimen.Store, hs []dimen.Handle) (dimen.Handle, error) {
				return s.ScaleHandle(hs[0], f)
			})
		},
	}
}

func newDimPowCommand(opts *DimOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "pow <dim> <n>",
		Short:         "Dimension of x^n for integer n",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return newFormatter(opts.RootOptions, cmd).fail(ExitCommandError, ErrCodeInvalidArgs, err)
			}
			return runDim(opts, cmd, args[:1], func(s *dimen.Store, hs []dimen.Handle) (dimen.Handle, error) {
				return s.Pow(n, hs[0], opts.check(cmd))
			})
		},
	}
}

func newDimDumpCommand(opts *DimOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [dim...]",
		Short: "Intern the given dimensions and list the store",
		Long: `Intern the given dimensions and list every dimension in the session
store in canonical order. With a catalog configured, catalogued dimensions
are listed as well.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)
			return withSession(opts.RootOptions, cmd, f, func(sess *session.Session) (any, error) {
				if _, err := parseDims(sess, args); err != nil {
					return nil, f.fail(ExitCommandError, ErrCodeDimension, err)
				}
				var buf bytes.Buffer
				if err := sess.Store().Dump(&buf); err != nil {
					return nil, f.fail(ExitFailure, ErrCodeGeneric, err)
				}
				res := DumpResult{text: buf.String()}
				for _, h := range sess.Store().All() {
					res.Dimensions = append(res.Dimensions, h.String())
				}
				return res, nil
			})
		},
	}
}

func runDim(opts *DimOptions, cmd *cobra.Command, args []string, op func(*dimen.Store, []dimen.Handle) (dimen.Handle, error)) error {
	f := newFormatter(opts.RootOptions, cmd)
	return withSession(opts.RootOptions, cmd, f, func(sess *session.Session) (any, error) {
		hs, err := parseDims(sess, args)
		if err != nil {
			return nil, f.fail(ExitCommandError, ErrCodeDimension, err)
		}
		h, err := op(sess.Store(), hs)
		if err != nil {
			return nil, f.fail(ExitFailure, dimErrCode(err), err)
		}
		f.VerboseLog("store holds %d dimension(s)", sess.Store().Len())
		return newDimResult(h), nil
	})
}

func parseDims(sess *session.Session, args []string) ([]dimen.Handle, error) {
	hs := make([]dimen.Handle, 0, len(args))
	for _, a := range args {
		h, err := sess.Store().Parse(dimArg(a))
		if err != nil {
			return nil, err
		}
		hs = append(hs, h)
	}
	return hs, nil
}

// dimArg accepts commas in place of spaces.
func dimArg(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

func dimErrCode(err error) string {
	switch dimen.CodeOf(err) {
	case dimen.ErrCodeMismatch:
		return ErrCodeMismatch
	case dimen.ErrCodeOverflow:
		return ErrCodeOverflow
	default:
		return ErrCodeDimension
	}
}
