// Package crisptest provides a suite runner for evaluator tests.  Each
// test row evaluates one source expression against a persistent
// environment and checks the rendered result along with any output
// emitted by debug.
package crisptest

import (
	"bytes"
	"testing"

	"github.com/nonk123/crisp/crisp"
	"github.com/nonk123/crisp/parser"
)

// TestSequence is a sequence of crisp expressions which are evaluated
// sequentially by a shared crisp.CEnv.
type TestSequence []struct {
	Expr   string // a crisp expression
	Result string // the evaluated result, rendered
	Output string // debug output emitted during evaluation
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewTestEnv returns a fresh environment whose debug output is captured
// in the returned buffer.
func NewTestEnv() (*crisp.CEnv, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	env := crisp.NewEnv(nil)
	crisp.InitializeUserEnv(env,
		crisp.WithReader(parser.NewReader()),
		crisp.WithOutput(buf))
	return env, buf
}

// RunTestSuite runs each TestSequence in tests on isolated crisp.CEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		env, buf := NewTestEnv()
		for j, expr := range test.TestSequence {
			v, _, err := parser.ParseCVal([]byte(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: expected one expression parsed (got %d)", i, test.Name, j, len(v))
				continue
			}
			buf.Reset()
			result := env.Eval(v[0]).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if buf.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, buf.String())
			}
		}
	}
}
