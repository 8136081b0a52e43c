package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/eqcore/internal/funcs"
	"github.com/roach88/eqcore/internal/session"
)

// FuncInfo describes one registered function.
type FuncInfo struct {
	Name      string `json:"name"`
	CName     string `json:"cname"`
	YName     string `json:"yname"`
	Deriv1    string `json:"deriv1_cname"`
	Deriv2    string `json:"deriv2_cname"`
	Contract  string `json:"contract"`
	Dimension string `json:"dimension"`
}

// FuncList is the output of func list.
type FuncList []FuncInfo

func (l FuncList) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tC\tY\tD1\tD2\tCONTRACT")
	for _, fi := range l {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", fi.Name, fi.CName, fi.YName, fi.Deriv1, fi.Deriv2, fi.Contract)
	}
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// FuncEval is the output of func eval.
type FuncEval struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Value  float64 `json:"value"`
	Deriv1 float64 `json:"deriv1"`
	Deriv2 float64 `json:"deriv2"`
	Safe   bool    `json:"safe"`
	Status string  `json:"status,omitempty"`
}

func (e FuncEval) String() string {
	s := fmt.Sprintf("%s(%g) = %.17g\n%s'(%g) = %.17g\n%s''(%g) = %.17g",
		e.Name, e.X, e.Value, e.Name, e.X, e.Deriv1, e.Name, e.X, e.Deriv2)
	if e.Safe {
		s += "\nstatus: " + e.Status
	}
	return s
}

// FuncOptions holds flags for func eval.
type FuncOptions struct {
	*RootOptions
	Safe bool
}

// NewFuncCommand creates the func command group.
func NewFuncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FuncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "func",
		Short: "Elementary function registry",
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List the registered functions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)
			return withSession(opts.RootOptions, cmd, f, func(sess *session.Session) (any, error) {
				var out FuncList
				for _, fn := range sess.Registry().Funcs() {
					out = append(out, FuncInfo{
						Name:      fn.Name(),
						CName:     fn.CName(),
						YName:     fn.YName(),
						Deriv1:    fn.Deriv1CName(),
						Deriv2:    fn.Deriv2CName(),
						Contract:  fn.Contract().String(),
						Dimension: fn.Dimension(sess.Store()).String(),
					})
				}
				return out, nil
			})
		},
	}

	eval := &cobra.Command{
		Use:   "eval <name> <x>",
		Short: "Evaluate a function and its derivatives",
		Long: `Evaluate a function and its first and second derivatives at x.

With --safe the safe evaluators are used: the results are always finite and
the worst status (ok, range error, pole, domain error) is reported. A non-ok
status exits with code 1.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFuncEval(opts, cmd, args[0], args[1])
		},
	}
	eval.Flags().BoolVar(&opts.Safe, "safe", false, "use the safe evaluators")

	cmd.AddCommand(list, eval)
	return cmd
}

func runFuncEval(opts *FuncOptions, cmd *cobra.Command, name, xs string) error {
	f := newFormatter(opts.RootOptions, cmd)
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeInvalidArgs, err)
	}
	return withSession(opts.RootOptions, cmd, f, func(sess *session.Session) (any, error) {
		fn, ok := sess.Registry().Lookup(name)
		if !ok {
			return nil, f.fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("unknown function %q", name))
		}
		if opts.Safe {
			return evalSafe(fn, x)
		}

		res := FuncEval{Name: fn.Name(), X: x}
		res.Value, res.Deriv1, res.Deriv2 = fn.Eval(x), fn.Deriv(x), fn.Deriv2(x)
		// encoding/json rejects NaN and Inf.
		if opts.Format == "json" && hasNonFinite(res.Value, res.Deriv1, res.Deriv2) {
			return nil, f.fail(ExitFailure, ErrCodeDomain, fmt.Errorf("%s(%g) is not finite; use --safe", fn.Name(), x))
		}
		return res, nil
	})
}

// evalSafe evaluates fn and its derivatives with the safe evaluators. A
// non-OK status is returned as an *funcs.EvalError alongside the result.
func evalSafe(fn *funcs.Func, x float64) (FuncEval, error) {
	res := FuncEval{Name: fn.Name(), X: x, Safe: true}

	status := funcs.SafeOK
	v, err := fn.EvalChecked(x)
	var ee *funcs.EvalError
	if errors.As(err, &ee) {
		status = ee.Err
	}
	var s1, s2 funcs.SafeErr
	res.Value = v
	res.Deriv1, s1 = fn.DerivSafe(x)
	res.Deriv2, s2 = fn.Deriv2Safe(x)
	status = status.Worst(s1).Worst(s2)
	res.Status = status.String()

	if !status.OK() {
		return res, WrapExitError(ExitFailure, ErrCodeDomain, &funcs.EvalError{Func: fn.Name(), Arg: x, Err: status})
	}
	return res, nil
}
