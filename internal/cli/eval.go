package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/eqcore/internal/relation"
	"github.com/roach88/eqcore/internal/session"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Vars []string
	Safe bool
}

// EvalResult is the output of eval.
type EvalResult struct {
	Program   string             `json:"program"`
	Residual  float64            `json:"residual"`
	Gradient  map[string]float64 `json:"gradient"`
	Dimension string             `json:"dimension"`
	Status    string             `json:"status,omitempty"`

	names []string
}

func (r EvalResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "program:   %s\n", r.Program)
	fmt.Fprintf(&b, "residual:  %.17g\n", r.Residual)
	for _, n := range r.names {
		fmt.Fprintf(&b, "d/d%s:%s%.17g\n", n, strings.Repeat(" ", max(1, 7-len(n))), r.Gradient[n])
	}
	fmt.Fprintf(&b, "dimension: %s", r.Dimension)
	if r.Status != "" {
		fmt.Fprintf(&b, "\nstatus:    %s", r.Status)
	}
	return b.String()
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <program>",
		Short: "Evaluate a postfix relation",
		Long: `Evaluate a postfix relation: its residual, its gradient and its dimension.

Variables are declared with --var name=value[:dim], where dim uses commas
in place of spaces. A variable without a dimension is wild.

Example:
  eqcore eval --var m=2:1/1M --var a=9.81:1/1L,-2/1T --var F=19.62:1/1M,1/1L,-2/1T "m a * F -"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, cmd, args[0])
		},
	}
	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "variable as name=value[:dim] (repeatable)")
	cmd.Flags().BoolVar(&opts.Safe, "safe", false, "use the safe evaluators")
	return cmd
}

func runEval(opts *EvalOptions, cmd *cobra.Command, program string) error {
	f := newFormatter(opts.RootOptions, cmd)
	return withSession(opts.RootOptions, cmd, f, func(sess *session.Session) (any, error) {
		vars, x, err := parseVars(sess, opts.Vars)
		if err != nil {
			return nil, f.fail(ExitCommandError, ErrCodeInvalidArgs, err)
		}
		rel, err := sess.Relation(vars, program)
		if err != nil {
			return nil, f.fail(ExitCommandError, ErrCodeProgram, err)
		}

		dim, err := rel.Dimension(sess.Store(), sess.Check())
		if err != nil {
			return nil, f.fail(ExitFailure, dimErrCode(err), err)
		}

		res := EvalResult{
			Program:   rel.String(),
			Dimension: dim.String(),
			Gradient:  make(map[string]float64, len(vars)),
		}
		var grad []float64
		if opts.Safe {
			v, g, status, err := rel.GradientSafe(x)
			if err != nil {
				return nil, f.fail(ExitCommandError, ErrCodeProgram, err)
			}
			res.Residual, grad, res.Status = v, g, status.String()
		} else {
			res.Residual, grad, err = rel.Gradient(x)
			if err != nil {
				return nil, f.fail(ExitCommandError, ErrCodeProgram, err)
			}
			if hasNonFinite(append([]float64{res.Residual}, grad...)...) && opts.Format == "json" {
				return nil, f.fail(ExitFailure, ErrCodeDomain, fmt.Errorf("result is not finite; use --safe"))
			}
		}
		for i, v := range vars {
			res.names = append(res.names, v.Name)
			res.Gradient[v.Name] = grad[i]
		}
		f.VerboseLog("session %s, %d dimension(s) interned", sess.ID(), sess.Store().Len())
		return res, nil
	})
}

// parseVars decodes name=value[:dim] declarations.
func parseVars(sess *session.Session, decls []string) ([]relation.Variable, []float64, error) {
	vars := make([]relation.Variable, 0, len(decls))
	x := make([]float64, 0, len(decls))
	seen := make(map[string]bool, len(decls))
	for _, decl := range decls {
		name, rest, ok := strings.Cut(decl, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("bad --var %q: want name=value[:dim]", decl)
		}
		if seen[name] {
			return nil, nil, fmt.Errorf("variable %q declared twice", name)
		}
		seen[name] = true

		valText, dimText, hasDim := strings.Cut(rest, ":")
		v, err := strconv.ParseFloat(valText, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad value for %s: %w", name, err)
		}
		h := sess.Store().Wild()
		if hasDim {
			if h, err = sess.Store().Parse(dimArg(dimText)); err != nil {
				return nil, nil, fmt.Errorf("bad dimension for %s: %w", name, err)
			}
		}
		vars = append(vars, relation.Variable{Name: name, Dim: h})
		x = append(x, v)
	}
	return vars, x, nil
}

func hasNonFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
