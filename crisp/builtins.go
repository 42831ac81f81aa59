package crisp

import (
	"fmt"
)

type langBuiltin struct {
	name string
	fun  CBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(env *CEnv, args *CVal) *CVal {
	return fun.fun(env, args)
}

var langBuiltins = []*langBuiltin{
	{"if", builtinIf},
	{"let", builtinLet},
	{"set", builtinSet},
	{"defun", builtinDefun},
	{"progn", builtinProgn},
	{"when", builtinWhen},
	{"while", builtinWhile},
	{"debug", builtinDebug},
	{"=", builtinEq},
	{"/=", builtinNEq},
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"/", builtinDiv},
	{"car", builtinCAR},
	{"cdr", builtinCDR},
}

// DefaultBuiltins returns the default set of CBuiltinDefs added to CEnv
// objects when CEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []CBuiltinDef {
	funs := make([]CBuiltinDef, len(langBuiltins))
	for i := range funs {
		funs[i] = langBuiltins[i]
	}
	return funs
}

// Bool renders a native truth value as the symbol t or nil.
func Bool(ok bool) *CVal {
	if ok {
		return Symbol(TrueSymbol)
	}
	return Nil()
}

// formSymbol extracts the symbol named by an unevaluated operand.  The
// operand may be written bare or with a leading quote.
func formSymbol(name string, operand *CVal) *CVal {
	if operand.Type == CQuote {
		operand = operand.Cells[0]
	}
	if operand.Type != CSymbol {
		return berrf(name, ErrnoMalformed, "argument is not a symbol: %v", operand)
	}
	return operand
}

// (if test then else...)
func builtinIf(env *CEnv, args *CVal) *CVal {
	if len(args.Cells) < 2 {
		return berrf("if", ErrnoMalformed, "at least two arguments expected (got %d)", len(args.Cells))
	}
	r := env.Eval(args.Cells[0])
	if r.Type == CError {
		return r
	}
	if r.IsNil() {
		// test evaluated to nil; the else forms run as an implicit progn
		return builtinProgn(env, SExpr(args.Cells[2:]...))
	}
	return env.Eval(args.Cells[1])
}

// (let sym expr)
func builtinLet(env *CEnv, args *CVal) *CVal {
	if len(args.Cells) != 2 {
		return berrf("let", ErrnoMalformed, "two arguments expected (got %d)", len(args.Cells))
	}
	sym := formSymbol("let", args.Cells[0])
	if sym.Type == CError {
		return sym
	}
	v := env.Eval(args.Cells[1])
	if v.Type == CError {
		return v
	}
	return env.Put(sym, v)
}

// (set sym expr)
func builtinSet(env *CEnv, args *CVal) *CVal {
	if len(args.Cells) != 2 {
		return berrf("set", ErrnoMalformed, "two arguments expected (got %d)", len(args.Cells))
	}
	sym := formSymbol("set", args.Cells[0])
	if sym.Type == CError {
		return sym
	}
	v := env.Eval(args.Cells[1])
	if v.Type == CError {
		return v
	}
	return env.Update(sym, v)
}

// (defun name (formals...) body...)
func builtinDefun(env *CEnv, args *CVal) *CVal {
	if len(args.Cells) < 3 {
		return berrf("defun", ErrnoMalformed, "three arguments expected (got %d)", len(args.Cells))
	}
	sym := formSymbol("defun", args.Cells[0])
	if sym.Type == CError {
		return sym
	}
	formals := args.Cells[1]
	if formals.Type != CSExpr {
		return berrf("defun", ErrnoMalformed, "second argument is not a list: %v", formals.Type)
	}
	for i, formal := range formals.Cells {
		p := formal
		if p.Type == CQuote {
			p = p.Cells[0]
		}
		if p.Type != CSymbol {
			return berrf("defun", ErrnoMalformed, "formal parameter is not a symbol: %v", formal)
		}
		if IsSpecialSymbol(p.Str) {
			return berrf("defun", ErrnoMalformed, "formal parameter shadows constant: %s", p.Str)
		}
		if _, ok := restName(p); ok && i != len(formals.Cells)-1 {
			return berrf("defun", ErrnoMalformed, "rest parameter is not last: %s", p.Str)
		}
	}
	body := SExpr(args.Cells[2:]...)
	fun := Fexpr(sym.Str, formals, body, env)
	lerr := env.Put(sym, fun)
	if lerr.Type == CError {
		return lerr
	}
	return fun
}

// (progn body...)
func builtinProgn(env *CEnv, args *CVal) *CVal {
	r := Nil()
	for _, c := range args.Cells {
		r = env.Eval(c)
		if r.Type == CError {
			return r
		}
	}
	return r
}

// (when test body...)
func builtinWhen(env *CEnv, args *CVal) *CVal {
	if len(args.Cells) < 2 {
		return berrf("when", ErrnoMalformed, "at least two arguments expected (got %d)", len(args.Cells))
	}
	r := env.Eval(args.Cells[0])
	if r.Type == CError {
		return r
	}
	if r.IsNil() {
		return Nil()
	}
	return builtinProgn(env, SExpr(args.Cells[1:]...))
}

// (while test body...)
func builtinWhile(env *CEnv, args *CVal) *CVal {
	if len(args.Cells) < 2 {
		return berrf("while", ErrnoMalformed, "at least two arguments expected (got %d)", len(args.Cells))
	}
	for {
		r := env.Eval(args.Cells[0])
		if r.Type == CError {
			return r
		}
		if r.IsNil() {
			return Nil()
		}
		r = builtinProgn(env, SExpr(args.Cells[1:]...))
		if r.Type == CError {
			return r
		}
	}
}

// (debug expr)
func builtinDebug(env *CEnv, args *CVal) *CVal {
	if len(args.Cells) != 1 {
		return berrf("debug", ErrnoMalformed, "one argument expected (got %d)", len(args.Cells))
	}
	v := env.Eval(args.Cells[0])
	if v.Type == CError {
		return v
	}
	fmt.Fprintln(env.Output, v)
	return v
}

// (= a b...)
func builtinEq(env *CEnv, args *CVal) *CVal {
	if len(args.Cells) < 2 {
		return berrf("=", ErrnoMalformed, "at least two arguments expected (got %d)", len(args.Cells))
	}
	first := env.Eval(args.Cells[0])
	if first.Type == CError {
		return first
	}
	for _, c := range args.Cells[1:] {
		v := env.Eval(c)
		if v.Type == CError {
			return v
		}
		if !first.Equal(v) {
			return Nil()
		}
	}
	return Bool(true)
}

// (/= a b...)
func builtinNEq(env *CEnv, args *CVal) *CVal {
	r := builtinEq(env, args)
	if r.Type == CError {
		return r
	}
	return Bool(r.IsNil())
}

// evalNumbers evaluates operand expressions left to right, requiring
// every result to be a number.  The first non-numeric operand aborts the
// form before any partial result escapes.
func evalNumbers(env *CEnv, name string, cells []*CVal) ([]int, *CVal) {
	if len(cells) == 0 {
		return nil, berrf(name, ErrnoMalformed, "at least one argument expected")
	}
	nums := make([]int, len(cells))
	for i, c := range cells {
		v := env.Eval(c)
		if v.Type == CError {
			return nil, v
		}
		if v.Type != CNumber {
			return nil, berrf(name, ErrnoType, "argument is not a number: %v", v)
		}
		nums[i] = v.Num
	}
	return nums, nil
}

func builtinAdd(env *CEnv, args *CVal) *CVal {
	nums, lerr := evalNumbers(env, "+", args.Cells)
	if lerr != nil {
		return lerr
	}
	sum := 0
	for _, n := range nums {
		sum += n
	}
	return Number(sum)
}

func builtinSub(env *CEnv, args *CVal) *CVal {
	nums, lerr := evalNumbers(env, "-", args.Cells)
	if lerr != nil {
		return lerr
	}
	if len(nums) == 1 {
		return Number(-nums[0])
	}
	diff := nums[0]
	for _, n := range nums[1:] {
		diff -= n
	}
	return Number(diff)
}

func builtinMul(env *CEnv, args *CVal) *CVal {
	nums, lerr := evalNumbers(env, "*", args.Cells)
	if lerr != nil {
		return lerr
	}
	prod := 1
	for _, n := range nums {
		prod *= n
	}
	return Number(prod)
}

func builtinDiv(env *CEnv, args *CVal) *CVal {
	if len(args.Cells) < 2 {
		return berrf("/", ErrnoMalformed, "at least two arguments expected (got %d)", len(args.Cells))
	}
	nums, lerr := evalNumbers(env, "/", args.Cells)
	if lerr != nil {
		return lerr
	}
	quot := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return berrf("/", ErrnoDivZero, "division by zero")
		}
		quot /= n
	}
	return Number(quot)
}

// listArg evaluates the single operand of car/cdr and requires a list.
// Nil is treated as the empty list.
func listArg(env *CEnv, name string, args *CVal) *CVal {
	if len(args.Cells) != 1 {
		return berrf(name, ErrnoMalformed, "one argument expected (got %d)", len(args.Cells))
	}
	v := env.Eval(args.Cells[0])
	if v.Type == CError {
		return v
	}
	if v.IsNil() {
		return SExpr()
	}
	if v.Type != CSExpr {
		return berrf(name, ErrnoType, "argument is not a list: %v", v)
	}
	return v
}

func builtinCAR(env *CEnv, args *CVal) *CVal {
	v := listArg(env, "car", args)
	if v.Type == CError {
		return v
	}
	if len(v.Cells) == 0 {
		return Nil()
	}
	return v.Cells[0]
}

func builtinCDR(env *CEnv, args *CVal) *CVal {
	v := listArg(env, "cdr", args)
	if v.Type == CError {
		return v
	}
	if len(v.Cells) <= 1 {
		return Nil()
	}
	return SExpr(v.Cells[1:]...)
}
