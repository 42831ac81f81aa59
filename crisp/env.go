package crisp

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// CEnv is a crisp environment, a mutable chain of binding frames.  New
// frames are created only by host code; applying a user defined combiner
// never allocates one.
type CEnv struct {
	ID     uint
	Scope  map[string]*CVal
	Parent *CEnv
	Stack  *CallStack
	Output io.Writer
	Reader Reader
}

// NewEnv initializes and returns a new CEnv.  The child shares the
// parent's call stack, output writer, and reader.
func NewEnv(parent *CEnv) *CEnv {
	env := &CEnv{
		ID:     getEnvID(),
		Scope:  make(map[string]*CVal),
		Parent: parent,
		Output: os.Stdout,
	}
	if parent != nil {
		env.Stack = parent.Stack
		env.Output = parent.Output
		env.Reader = parent.Reader
	} else {
		env.Stack = &CallStack{}
	}
	return env
}

// InitializeUserEnv binds the builtin forms in env and applies any
// configuration.  The returned CVal is an error value if initialization
// failed.
func InitializeUserEnv(env *CEnv, config ...Config) *CVal {
	env.AddBuiltins()
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == CError {
			return lerr
		}
	}
	return Nil()
}

// AddBuiltins binds the given forms to their names in env.  When called
// with no arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *CEnv) AddBuiltins(funs ...CBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		if _, ok := env.Scope[f.Name()]; ok {
			panic("symbol already defined: " + f.Name())
		}
		id := fmt.Sprintf("<builtin ``%s''>", f.Name())
		env.Scope[f.Name()] = Fun(id, f.Eval)
	}
}

// Get takes a symbol k and returns the CVal it is bound to, walking the
// frame chain from env to the root.  An unbound symbol is an error.
func (env *CEnv) Get(k *CVal) *CVal {
	if k.Type != CSymbol {
		return env.Errorf(ErrnoType, "not a symbol: %v", k.Type)
	}
	if k.Str == TrueSymbol {
		return Symbol(TrueSymbol)
	}
	for scope := env; scope != nil; scope = scope.Parent {
		if v, ok := scope.Scope[k.Str]; ok {
			return v
		}
	}
	return env.Errorf(ErrnoUnbound, "unbound symbol: %s", k.Str)
}

// Put takes a symbol k and binds it to v in env's own frame, creating or
// overwriting the binding.
func (env *CEnv) Put(k, v *CVal) *CVal {
	if k.Type != CSymbol {
		return env.Errorf(ErrnoType, "not a symbol: %v", k.Type)
	}
	if IsSpecialSymbol(k.Str) {
		return env.Errorf(ErrnoMalformed, "cannot rebind constant: %s", k.Str)
	}
	env.Scope[k.Str] = v
	return v
}

// Update takes a symbol k and overwrites its binding in the nearest frame
// that already defines it.  If no frame binds k the environment chain is
// left untouched and an unbound-symbol error is returned.
func (env *CEnv) Update(k, v *CVal) *CVal {
	if k.Type != CSymbol {
		return env.Errorf(ErrnoType, "not a symbol: %v", k.Type)
	}
	if IsSpecialSymbol(k.Str) {
		return env.Errorf(ErrnoMalformed, "cannot rebind constant: %s", k.Str)
	}
	for scope := env; scope != nil; scope = scope.Parent {
		if _, ok := scope.Scope[k.Str]; ok {
			scope.Scope[k.Str] = v
			return v
		}
	}
	return env.Errorf(ErrnoUnbound, "unbound symbol: %s", k.Str)
}

// Errorf returns an error value annotated with the current call stack.
func (env *CEnv) Errorf(errno Errno, format string, v ...interface{}) *CVal {
	lerr := Errorf(errno, format, v...)
	lerr.Stack = env.Stack.Copy()
	return lerr
}

// Eval evaluates v in the context of env and returns the resulting CVal.
func (env *CEnv) Eval(v *CVal) *CVal {
	switch v.Type {
	case CSymbol:
		r := env.Get(v)
		if r.Type == CSuspend {
			// A bare reference to a suspended parameter yields the
			// captured expression as an inert datum.  Forcing requires an
			// unquote node.
			return r.Expr()
		}
		return r
	case CQuote:
		return v.Cells[0]
	case CUnquote:
		return env.force(v.Cells[0])
	case CSExpr:
		return env.EvalSExpr(v)
	default:
		return v
	}
}

// force evaluates an unquoted expression.  If expr names a parameter
// bound to a suspended form, the captured expression is evaluated in the
// captured call-site environment.  Every forcing is independent; results
// are never cached, so forcing the same suspended form twice repeats its
// side effects twice.
func (env *CEnv) force(expr *CVal) *CVal {
	if expr.Type == CSymbol {
		r := env.Get(expr)
		if r.Type == CError {
			return r
		}
		if r.Type == CSuspend {
			return r.Env.Eval(r.Expr())
		}
		return r
	}
	return env.Eval(expr)
}

// EvalSExpr evaluates the list s as a combiner application.  The empty
// list evaluates to nil.
func (env *CEnv) EvalSExpr(s *CVal) *CVal {
	if s.Type != CSExpr {
		return env.Errorf(ErrnoType, "not a list: %v", s.Type)
	}
	if len(s.Cells) == 0 {
		return Nil()
	}
	f := env.Eval(s.Cells[0])
	if f.Type == CError {
		return f
	}
	if f.Type != CFun {
		return env.Errorf(ErrnoNotCallable, "first element of expression is not callable: %v", f)
	}
	// The operand cells are shared with s, never mutated, so the same
	// expression can be applied again by a later forcing.
	args := SExpr(s.Cells[1:]...)
	env.Stack.PushFID(f.FID)
	defer env.Stack.Pop()
	return env.Call(f, args)
}

// Call applies the combiner fun to the unevaluated operand list args.
// Builtin forms receive the operands and the call-site environment
// directly.  User defined combiners bind each formal in the caller's own
// frame -- suspended formals as {expression, caller environment} pairs,
// eager formals as evaluated values -- and then run their body
// expressions in the caller's environment.  No new frame is created, so
// mutations performed by the body or by forced operands remain visible to
// the caller.
func (env *CEnv) Call(fun *CVal, args *CVal) *CVal {
	if fun.Builtin != nil {
		return fun.Builtin(env, args)
	}
	formals := fun.Formals.Cells
	hasRest := false
	for i, formal := range formals {
		sym, suspended := formal, false
		if formal.Type == CQuote {
			sym = formal.Cells[0]
			suspended = true
		}
		if name, ok := restName(sym); ok {
			if i != len(formals)-1 {
				return env.Errorf(ErrnoMalformed, "%s: rest parameter is not last: %s", fun.FID, sym.Str)
			}
			rest, lerr := env.bindRest(args.Cells[i:], suspended)
			if lerr != nil {
				return lerr
			}
			env.Put(Symbol(name), rest)
			hasRest = true
			break
		}
		if i >= len(args.Cells) {
			return env.Errorf(ErrnoMalformed, "%s: missing argument: %s", fun.FID, sym.Str)
		}
		if suspended {
			env.Put(sym, Suspend(args.Cells[i], env))
			continue
		}
		v := env.Eval(args.Cells[i])
		if v.Type == CError {
			return v
		}
		env.Put(sym, v)
	}
	if !hasRest && len(args.Cells) > len(formals) {
		return env.Errorf(ErrnoMalformed, "%s: too many arguments (got %d)", fun.FID, len(args.Cells))
	}
	r := Nil()
	for _, body := range fun.Body.Cells {
		r = env.Eval(body)
		if r.Type == CError {
			return r
		}
	}
	return r
}

// bindRest collects trailing operands into a list.  Eager rest formals
// bind the evaluated operand values; suspended rest formals bind the raw
// operand expressions.
func (env *CEnv) bindRest(operands []*CVal, suspended bool) (*CVal, *CVal) {
	cells := make([]*CVal, len(operands))
	for i, operand := range operands {
		if suspended {
			cells[i] = operand
			continue
		}
		v := env.Eval(operand)
		if v.Type == CError {
			return nil, v
		}
		cells[i] = v
	}
	return SExpr(cells...), nil
}

func restName(sym *CVal) (string, bool) {
	if sym.Type != CSymbol {
		return "", false
	}
	name := strings.TrimSuffix(sym.Str, RestSuffix)
	if name == sym.Str || name == "" {
		return "", false
	}
	return name, true
}

// Load reads top-level expressions from r and evaluates them in order
// against env.  The first form that evaluates to an error aborts the
// rest of the program; side effects of earlier forms remain.  The value
// of the last form is returned.
func (env *CEnv) Load(name string, r io.Reader) *CVal {
	if env.Reader == nil {
		return env.Errorf(ErrnoPanic, "no reader configured")
	}
	exprs, err := env.Reader.Read(name, r)
	if err != nil {
		return env.Errorf(ErrnoMalformed, "%v", err)
	}
	ret := Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == CError {
			return ret
		}
	}
	return ret
}

// LoadString evaluates the source text like Load.
func (env *CEnv) LoadString(name, text string) *CVal {
	return env.Load(name, strings.NewReader(text))
}
