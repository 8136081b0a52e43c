package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/eqcore/internal/catalog"
	"github.com/roach88/eqcore/internal/dimen"
)

// CatalogOptions holds flags for the catalog commands.
type CatalogOptions struct {
	*RootOptions
	DBPath string
}

// path returns --db if given, else the configured catalog path.
func (o *CatalogOptions) path() string {
	if o.DBPath != "" {
		return o.DBPath
	}
	return o.Config.Catalog.Path
}

// CatalogEntries is the output of catalog dump.
type CatalogEntries []catalog.Entry

func (e CatalogEntries) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIGNATURE\tSESSION")
	for _, en := range e {
		fmt.Fprintf(w, "%s\t%s\n", strings.TrimSpace(en.Signature), en.SessionID)
	}
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// Signatures is the output of catalog base.
type Signatures []string

func (s Signatures) String() string {
	trimmed := make([]string, len(s))
	for i, sig := range s {
		trimmed[i] = strings.TrimSpace(sig)
	}
	return strings.Join(trimmed, "\n")
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the persistent dimension catalog",
	}
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "catalog database path (default from config)")

	dump := &cobra.Command{
		Use:           "dump",
		Short:         "List every catalogued dimension",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)
			c, err := openCatalog(opts)
			if err != nil {
				return f.fail(ExitCommandError, ErrCodeCatalog, err)
			}
			defer c.Close()

			entries, err := c.Entries(cmd.Context())
			if err != nil {
				return f.fail(ExitFailure, ErrCodeCatalog, err)
			}
			return f.Success(CatalogEntries(entries))
		},
	}

	base := &cobra.Command{
		Use:           "base <code>",
		Short:         "List catalogued dimensions that involve a base dimension",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)
			b, ok := dimen.BaseByCode(args[0])
			if !ok {
				return f.fail(ExitCommandError, ErrCodeInvalidArgs, fmt.Errorf("unknown base dimension %q", args[0]))
			}
			c, err := openCatalog(opts)
			if err != nil {
				return f.fail(ExitCommandError, ErrCodeCatalog, err)
			}
			defer c.Close()

			sigs, err := c.WithBase(cmd.Context(), b)
			if err != nil {
				return f.fail(ExitFailure, ErrCodeCatalog, err)
			}
			return f.Success(Signatures(sigs))
		},
	}

	cmd.AddCommand(dump, base)
	return cmd
}

func openCatalog(opts *CatalogOptions) (*catalog.Catalog, error) {
	p := opts.path()
	if p == "" {
		return nil, fmt.Errorf("no catalog: pass --db or set catalog.path in the config")
	}
	return catalog.Open(p)
}
