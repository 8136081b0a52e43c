package relation

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/eqcore/internal/dimen"
	"github.com/roach88/eqcore/internal/funcs"
)

// Parse reads a whitespace-separated postfix program.
//
// Tokens are
//
//	neg + - * /      arithmetic
//	^N               integer power, e.g. ^2 or ^-1
//	name             a variable from vars, else a function from reg
//	3.5              a dimensionless constant
//	9.81[1/1L,-2/1T] a constant with a dimension; commas stand for spaces
//
// Constant dimensions are interned in s.
func Parse(s *dimen.Store, reg *funcs.Registry, vars []Variable, text string) (*Relation, error) {
	text = norm.NFC.String(text)
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v.Name] = i
	}

	var ops []Op
	for pos, tok := range strings.Fields(text) {
		op, err := parseToken(s, reg, index, tok, pos)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return New(vars, ops)
}

func parseToken(s *dimen.Store, reg *funcs.Registry, index map[string]int, tok string, pos int) (Op, error) {
	switch tok {
	case "+":
		return Op{Kind: OpAdd}, nil
	case "-":
		return Op{Kind: OpSub}, nil
	case "*":
		return Op{Kind: OpMul}, nil
	case "/":
		return Op{Kind: OpDiv}, nil
	case "neg":
		return Op{Kind: OpNeg}, nil
	}

	if rest, ok := strings.CutPrefix(tok, "^"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return Op{}, errAt(ErrCodeBadToken, pos, "bad exponent %q", tok)
		}
		if err := checkExponent(n, pos); err != nil {
			return Op{}, err
		}
		return Op{Kind: OpIPow, Exp: n}, nil
	}
	if i, ok := index[tok]; ok {
		return Op{Kind: OpVar, Var: i}, nil
	}
	if f, ok := reg.Lookup(tok); ok {
		return Op{Kind: OpFunc, Func: f}, nil
	}
	return parseConst(s, tok, pos)
}

func parseConst(s *dimen.Store, tok string, pos int) (Op, error) {
	num, dims, hasDims := strings.Cut(tok, "[")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		if isIdent(tok) {
			return Op{}, errAt(ErrCodeUnknownVar, pos, "unknown variable or function %q", tok)
		}
		return Op{}, errAt(ErrCodeBadToken, pos, "bad token %q", tok)
	}
	op := Op{Kind: OpConst, Value: v, Dim: s.Dimensionless()}
	if !hasDims {
		return op, nil
	}
	dims, ok := strings.CutSuffix(dims, "]")
	if !ok {
		return Op{}, errAt(ErrCodeBadToken, pos, "unterminated dimension in %q", tok)
	}
	h, err := s.Parse(strings.ReplaceAll(dims, ",", " "))
	if err != nil {
		return Op{}, &ProgramError{Code: ErrCodeBadToken, Pos: pos, Message: err.Error()}
	}
	op.Dim = h
	return op, nil
}

func isIdent(tok string) bool {
	for i, r := range tok {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return tok != ""
}
