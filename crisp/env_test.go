package crisp_test

import (
	"testing"

	"github.com/nonk123/crisp/crisp"
	"github.com/nonk123/crisp/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse1(t *testing.T, src string) *crisp.CVal {
	t.Helper()
	v, _, err := parser.ParseCVal([]byte(src))
	require.NoError(t, err)
	require.Len(t, v, 1)
	return v[0]
}

func newEnv(t *testing.T) *crisp.CEnv {
	t.Helper()
	env := crisp.NewEnv(nil)
	lerr := crisp.InitializeUserEnv(env, crisp.WithReader(parser.NewReader()))
	require.NotEqual(t, crisp.CError, lerr.Type)
	return env
}

func TestEnvChain(t *testing.T) {
	parent := newEnv(t)
	child := crisp.NewEnv(parent)

	parent.Put(crisp.Symbol("x"), crisp.Number(1))
	assert.Equal(t, 1, child.Get(crisp.Symbol("x")).Num)

	// Put creates a binding in the child frame that shadows the parent
	child.Put(crisp.Symbol("x"), crisp.Number(2))
	assert.Equal(t, 2, child.Get(crisp.Symbol("x")).Num)
	assert.Equal(t, 1, parent.Get(crisp.Symbol("x")).Num)

	// Update overwrites the nearest frame that defines the symbol
	parent.Put(crisp.Symbol("y"), crisp.Number(10))
	child.Update(crisp.Symbol("y"), crisp.Number(20))
	assert.Equal(t, 20, parent.Get(crisp.Symbol("y")).Num)
}

func TestUpdateUnbound(t *testing.T) {
	env := newEnv(t)
	lerr := env.Update(crisp.Symbol("missing"), crisp.Number(1))
	require.Equal(t, crisp.CError, lerr.Type)
	assert.Equal(t, crisp.ErrnoUnbound, lerr.Errno)

	// the failed update must not create a binding
	v := env.Get(crisp.Symbol("missing"))
	require.Equal(t, crisp.CError, v.Type)
	assert.Equal(t, crisp.ErrnoUnbound, v.Errno)
}

func TestTrueSymbolConstant(t *testing.T) {
	env := newEnv(t)
	v := env.Get(crisp.Symbol("t"))
	require.Equal(t, crisp.CSymbol, v.Type)
	assert.Equal(t, "t", v.Str)

	lerr := env.Put(crisp.Symbol("t"), crisp.Number(1))
	assert.Equal(t, crisp.CError, lerr.Type)
	lerr = env.Update(crisp.Symbol("t"), crisp.Number(1))
	assert.Equal(t, crisp.CError, lerr.Type)
}

// A combiner defined in one environment runs its body in whatever
// environment it is called from.  The defining environment is recorded on
// the combiner but never consulted for body evaluation.
func TestFexprRunsInCallerEnvironment(t *testing.T) {
	parent := newEnv(t)
	v := parent.Eval(parse1(t, "(defun bump ('action) ,action ,action)"))
	require.NotEqual(t, crisp.CError, v.Type, "%v", v)

	caller := crisp.NewEnv(parent)
	caller.Put(crisp.Symbol("x"), crisp.Number(1))

	r := caller.Eval(parse1(t, "(bump (set 'x (+ x 10)))"))
	require.NotEqual(t, crisp.CError, r.Type, "%v", r)
	assert.Equal(t, 21, r.Num)

	// the mutation landed in the caller's frame, not the defining one
	assert.Equal(t, 21, caller.Get(crisp.Symbol("x")).Num)
	lerr := parent.Get(crisp.Symbol("x"))
	assert.Equal(t, crisp.CError, lerr.Type)
}

// Applying a combiner allocates no frame: parameters are installed in the
// caller's own frame and remain visible after the call returns.
func TestFexprAllocatesNoFrame(t *testing.T) {
	env := newEnv(t)
	v := env.Eval(parse1(t, "(defun keep ('action) nil)"))
	require.NotEqual(t, crisp.CError, v.Type, "%v", v)

	r := env.Eval(parse1(t, "(keep (+ 1 2))"))
	require.NotEqual(t, crisp.CError, r.Type, "%v", r)

	bound := env.Get(crisp.Symbol("action"))
	require.Equal(t, crisp.CSuspend, bound.Type)
	assert.Equal(t, "(+ 1 2)", bound.Expr().String())
}

func TestForcingNeverMemoizes(t *testing.T) {
	env := newEnv(t)
	env.Put(crisp.Symbol("output"), crisp.Number(100))

	suspend := crisp.Suspend(parse1(t, "(set 'output (+ output 10))"), env)
	env.Put(crisp.Symbol("action"), suspend)

	force := parse1(t, ",action")
	for i := 1; i <= 3; i++ {
		r := env.Eval(force)
		require.NotEqual(t, crisp.CError, r.Type, "%v", r)
		assert.Equal(t, 100+10*i, r.Num)
	}
	assert.Equal(t, 130, env.Get(crisp.Symbol("output")).Num)
}
