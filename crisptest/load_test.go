package crisptest

import (
	"testing"

	"github.com/nonk123/crisp/crisp"
)

func TestLoadString(t *testing.T) {
	env, buf := NewTestEnv()
	program := `
; compute a factorial with a while loop
(let 'n 5)
(let 'acc 1)
(while (/= n 0)
  (set 'acc (* acc n))
  (set 'n (- n 1)))
(debug acc)
`
	v := env.LoadString("factorial", program)
	if v.Type == crisp.CError {
		t.Fatalf("load failed: %v", v)
	}
	if v.String() != "120" {
		t.Errorf("expected last value 120 (got %s)", v)
	}
	if buf.String() != "120\n" {
		t.Errorf("expected output %q (got %q)", "120\n", buf.String())
	}
}

func TestLoadHaltsOnFirstError(t *testing.T) {
	env, _ := NewTestEnv()
	program := `
(let 'x 1)
(set 'missing 2)
(set 'x 10)
`
	v := env.LoadString("halt", program)
	if v.Type != crisp.CError {
		t.Fatalf("expected an error value (got %v)", v)
	}
	if v.Errno != crisp.ErrnoUnbound {
		t.Errorf("expected errno %v (got %v)", crisp.ErrnoUnbound, v.Errno)
	}
	// forms after the failing one never run; earlier effects remain
	x := env.LoadString("check", "x")
	if x.String() != "1" {
		t.Errorf("expected x = 1 (got %s)", x)
	}
}

func TestLoadParseError(t *testing.T) {
	env, _ := NewTestEnv()
	v := env.LoadString("broken", "(let 'x")
	if v.Type != crisp.CError {
		t.Fatalf("expected an error value (got %v)", v)
	}
	if v.Errno != crisp.ErrnoMalformed {
		t.Errorf("expected errno %v (got %v)", crisp.ErrnoMalformed, v.Errno)
	}
}

func TestLoadFexprProgram(t *testing.T) {
	env, buf := NewTestEnv()
	program := `
(let 'output 99)

(defun unless ('condition 'action)
  (if ,condition nil ,action))

(defun do-twice ('action)
  ,action
  ,action)

(unless nil (set 'output 100))
(do-twice (set 'output (+ output 10)))
(debug output)
`
	v := env.LoadString("program", program)
	if v.Type == crisp.CError {
		t.Fatalf("load failed: %v", v)
	}
	if v.String() != "120" {
		t.Errorf("expected last value 120 (got %s)", v)
	}
	if buf.String() != "120\n" {
		t.Errorf("expected output %q (got %q)", "120\n", buf.String())
	}
}
