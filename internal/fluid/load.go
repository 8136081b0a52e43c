package fluid

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed data/*.cue
var builtin embed.FS

const schemaFile = "schema.cue"

// Data is the decoded coefficient table of one fluid.
type Data struct {
	Name      string  `json:"name"`
	Source    string  `json:"source"`
	URL       string  `json:"url,omitempty"`
	Quality   int     `json:"quality"`
	MolarMass float64 `json:"molar_mass"`
	R         float64 `json:"r"`
	Tc        float64 `json:"t_c"`
	RhoC      float64 `json:"rho_c"`
	TStar     float64 `json:"t_star"`
	RhoStar   float64 `json:"rho_star"`
	Tt        float64 `json:"t_t"`
	Omega     float64 `json:"omega"`

	Ideal    IdealData   `json:"ideal"`
	Residual []PowerTerm `json:"residual"`
}

// IdealData describes the ideal-gas heat capacity.
type IdealData struct {
	Cp0Star     float64       `json:"cp0_star"`
	TStar       float64       `json:"t_star"`
	Power       []Cp0Power    `json:"power"`
	Exponential []Cp0Einstein `json:"exponential"`
}

// Cp0Power is a term c*(T/T*)^t.
type Cp0Power struct {
	C float64 `json:"c"`
	T float64 `json:"t"`
}

// Cp0Einstein is a term b*x^2*e^x/(e^x-1)^2 with x = beta/T.
type Cp0Einstein struct {
	B    float64 `json:"b"`
	Beta float64 `json:"beta"`
}

// PowerTerm is a residual term a*tau^t*delta^d*exp(-delta^l).
type PowerTerm struct {
	A float64 `json:"a"`
	T float64 `json:"t"`
	D float64 `json:"d"`
	L float64 `json:"l"`
}

// CompileError reports a fluid file that does not compile or does not
// satisfy the schema.
type CompileError struct {
	File    string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(file string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &CompileError{File: file, Message: err.Error()}
	}
	first := errs[0]
	ce := &CompileError{File: file, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}

// compiler holds a CUE context and the compiled #Fluid definition.
type compiler struct {
	ctx    *cue.Context
	schema cue.Value
}

func newCompiler() (*compiler, error) {
	src, err := builtin.ReadFile(path.Join("data", schemaFile))
	if err != nil {
		return nil, err
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(schemaFile))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(schemaFile, err)
	}
	def := v.LookupPath(cue.ParsePath("#Fluid"))
	if err := def.Err(); err != nil {
		return nil, formatCUEError(schemaFile, err)
	}
	return &compiler{ctx: ctx, schema: def}, nil
}

// compile builds src, checks its "fluid" value against the schema and
// decodes it.
func (c *compiler) compile(file string, src []byte) (*Data, error) {
	v := c.ctx.CompileBytes(src, cue.Filename(file))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(file, err)
	}
	fv := v.LookupPath(cue.ParsePath("fluid"))
	if !fv.Exists() {
		return nil, &CompileError{File: file, Message: "fluid is required", Pos: v.Pos()}
	}
	unified := c.schema.Unify(fv)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(file, err)
	}
	var d Data
	if err := unified.Decode(&d); err != nil {
		return nil, formatCUEError(file, err)
	}
	return &d, nil
}

// Compile builds a single fluid definition from CUE source.
func Compile(file string, src []byte) (*Fluid, error) {
	c, err := newCompiler()
	if err != nil {
		return nil, err
	}
	d, err := c.compile(file, src)
	if err != nil {
		return nil, err
	}
	return newFluid(d), nil
}

// Library is a set of fluids indexed by name.
type Library struct {
	fluids map[string]*Fluid
}

// Builtin loads the fluids shipped with the package.
func Builtin() (*Library, error) {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load compiles every .cue file in the root of fsys except the schema.
// Two files defining the same fluid name are an error.
func Load(fsys fs.FS) (*Library, error) {
	c, err := newCompiler()
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	lib := &Library{fluids: make(map[string]*Fluid)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".cue") || name == schemaFile {
			continue
		}
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		d, err := c.compile(name, src)
		if err != nil {
			return nil, err
		}
		if _, dup := lib.fluids[d.Name]; dup {
			return nil, &CompileError{File: name, Message: fmt.Sprintf("fluid %q defined twice", d.Name)}
		}
		lib.fluids[d.Name] = newFluid(d)
	}
	return lib, nil
}

// Lookup returns the fluid with the given name.
func (l *Library) Lookup(name string) (*Fluid, bool) {
	f, ok := l.fluids[name]
	return f, ok
}

// Names returns the fluid names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.fluids))
	for n := range l.fluids {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
