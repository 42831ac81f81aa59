package crisp

import (
	"bytes"
	"fmt"
	"strconv"
)

// CValType is the type of a CVal
type CValType uint

// Possible CValType values
const (
	CInvalid CValType = iota
	CNumber
	CSymbol
	CSExpr
	CQuote
	CUnquote
	CNil
	CFun
	CSuspend
	CError
)

var cvalTypeStrings = []string{
	CInvalid: "INVALID",
	CNumber:  "number",
	CSymbol:  "symbol",
	CSExpr:   "list",
	CQuote:   "quote",
	CUnquote: "unquote",
	CNil:     "nil",
	CFun:     "function",
	CSuspend: "suspended-form",
	CError:   "error",
}

func (t CValType) String() string {
	if int(t) >= len(cvalTypeStrings) {
		return cvalTypeStrings[CInvalid]
	}
	return cvalTypeStrings[t]
}

// CBuiltin is a native handler backing a builtin form.  Builtin forms
// receive their operands unevaluated, along with the environment of the
// call site, and decide their own evaluation order.
type CBuiltin func(env *CEnv, args *CVal) *CVal

// CBuiltinDef is a builtin form definition.
type CBuiltinDef interface {
	Name() string
	Eval(env *CEnv, args *CVal) *CVal
}

// CVal is a crisp value.  Expressions and evaluation results share this
// representation; the evaluator never mutates the Cells of an expression
// so a single expression may be evaluated any number of times.
type CVal struct {
	Type  CValType
	Num   int
	Str   string
	Errno Errno
	Cells []*CVal

	// Fields needed for combiners and suspended forms
	FID     string
	Builtin CBuiltin
	Formals *CVal
	Body    *CVal
	Env     *CEnv

	// Stack at the point an error value was created
	Stack *CallStack
}

// Number returns a CVal representing the number x.
func Number(x int) *CVal {
	return &CVal{
		Type: CNumber,
		Num:  x,
	}
}

// Symbol returns a CVal representing the symbol s.
func Symbol(s string) *CVal {
	return &CVal{
		Type: CSymbol,
		Str:  s,
	}
}

// Nil returns a CVal representing nil, the unique falsy value.
func Nil() *CVal {
	return &CVal{
		Type: CNil,
	}
}

// SExpr returns a CVal representing a list with the given elements.
// Evaluating a non-empty SExpr applies its head as a combiner.
func SExpr(cells ...*CVal) *CVal {
	return &CVal{
		Type:  CSExpr,
		Cells: cells,
	}
}

// Quote returns a CVal wrapping v unevaluated.
func Quote(v *CVal) *CVal {
	return &CVal{
		Type:  CQuote,
		Cells: []*CVal{v},
	}
}

// Unquote returns a CVal that forces v when evaluated.
func Unquote(v *CVal) *CVal {
	return &CVal{
		Type:  CUnquote,
		Cells: []*CVal{v},
	}
}

// Fun returns a CVal representing a builtin form.
func Fun(fid string, fn CBuiltin) *CVal {
	return &CVal{
		Type:    CFun,
		FID:     fid,
		Builtin: fn,
	}
}

// Fexpr returns a CVal representing a user defined combiner.  The formals
// list flags each parameter as suspended (quote-wrapped) or eager (bare).
// The defining environment is recorded but body expressions always run in
// the caller's environment.
func Fexpr(fid string, formals *CVal, body *CVal, env *CEnv) *CVal {
	return &CVal{
		Type:    CFun,
		FID:     fid,
		Formals: formals,
		Body:    body,
		Env:     env,
	}
}

// Suspend pairs the unevaluated expression expr with the environment
// active at its call site.  Forcing a suspended form re-evaluates expr
// against env every time; results are never memoized.
func Suspend(expr *CVal, env *CEnv) *CVal {
	return &CVal{
		Type:  CSuspend,
		Cells: []*CVal{expr},
		Env:   env,
	}
}

// Expr returns the expression captured by a suspended form.
func (v *CVal) Expr() *CVal {
	return v.Cells[0]
}

// IsNil returns true if v is the falsy value nil.
func (v *CVal) IsNil() bool {
	return v.Type == CNil
}

// IsSpecialSymbol returns true for symbols with constant bindings.
func IsSpecialSymbol(s string) bool {
	return s == TrueSymbol || s == NilSymbol
}

// Equal compares two values structurally.  Combiners and suspended forms
// are equal only to themselves.
func (v *CVal) Equal(u *CVal) bool {
	if v.Type != u.Type {
		return false
	}
	switch v.Type {
	case CNumber:
		return v.Num == u.Num
	case CSymbol:
		return v.Str == u.Str
	case CNil:
		return true
	case CSExpr, CQuote, CUnquote:
		if len(v.Cells) != len(u.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(u.Cells[i]) {
				return false
			}
		}
		return true
	default:
		return v == u
	}
}

func (v *CVal) String() string {
	switch v.Type {
	case CNumber:
		return strconv.Itoa(v.Num)
	case CSymbol:
		return v.Str
	case CNil:
		return NilSymbol
	case CSExpr:
		return exprString(v.Cells, "(", ")")
	case CQuote:
		return "'" + v.Cells[0].String()
	case CUnquote:
		return "," + v.Cells[0].String()
	case CFun:
		if v.Builtin != nil {
			return v.FID
		}
		cells := append([]*CVal{Symbol("fexpr"), v.Formals}, v.Body.Cells...)
		return exprString(cells, "(", ")")
	case CSuspend:
		return fmt.Sprintf("<suspended %v>", v.Cells[0])
	case CError:
		return v.Str
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func exprString(cells []*CVal, left string, right string) string {
	if len(cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
