package crisptest

import (
	"testing"
)

func TestEval(t *testing.T) {
	tests := TestSuite{
		{"literals", TestSequence{
			{"3", "3", ""},
			{"-5", "-5", ""},
			{"nil", "nil", ""},
			{"t", "t", ""},
			{"()", "nil", ""},
		}},
		{"quotes", TestSequence{
			// a single quote on a self-evaluating expression does not show up.
			{"'3", "3", ""},
			{"''3", "'3", ""},
			{"'a", "a", ""},
			{"'(1 2 3)", "(1 2 3)", ""},
		}},
		{"symbols", TestSequence{
			{"(let 'x 1)", "1", ""},
			{"x", "1", ""},
			{"a", "unbound symbol: a", ""},
		}},
		{"arithmetic", TestSequence{
			{"(+ 1 2 3)", "6", ""},
			{"(+ 10 -5)", "5", ""},
			{"(- 10)", "-10", ""},
			{"(- 1 2 3)", "-4", ""},
			{"(* 2 -2)", "-4", ""},
			{"(/ 10 2)", "5", ""},
			{"(/ 100 5 2)", "10", ""},
		}},
		{"equality", TestSequence{
			{"(= 1 1)", "t", ""},
			{"(= 1 2)", "nil", ""},
			{"(= 'a 'a)", "t", ""},
			{"(= '(1 2) '(1 2))", "t", ""},
			{"(= nil nil)", "t", ""},
			{"(/= 1 2)", "t", ""},
			{"(/= 1 1)", "nil", ""},
		}},
		{"lists", TestSequence{
			{"(car '(10 20))", "10", ""},
			{"(car '((10 20) (30 40)))", "(10 20)", ""},
			{"(cdr '(10 20 30))", "(20 30)", ""},
			{"(cdr '(1))", "nil", ""},
			{"(car '())", "nil", ""},
			{"(cdr '())", "nil", ""},
		}},
		{"progn", TestSequence{
			{"(progn)", "nil", ""},
			{"(progn 1 2 3 4 5)", "5", ""},
			{"(progn (+ 1 2 3) (- 1 2 3))", "-4", ""},
		}},
		{"if", TestSequence{
			{"(if nil 100)", "nil", ""},
			{"(if nil 1 0)", "0", ""},
			{"(if t 1 0)", "1", ""},
			{"(if nil 1 2 3)", "3", ""},
		}},
		{"truthiness", TestSequence{
			// nil is the unique falsy value; zero is truthy.
			{"(if 0 'a 'b)", "a", ""},
			{"(if '(nil) 'a 'b)", "a", ""},
			{"(if nil 'a 'b)", "b", ""},
		}},
		{"short circuit branching", TestSequence{
			{"(let 'x 0)", "0", ""},
			{"(if nil (set 'x 1) (set 'x 2))", "2", ""},
			{"x", "2", ""},
			{"(if t (set 'x 1) (set 'x 2))", "1", ""},
			{"x", "1", ""},
			// the untaken branch never runs, even when it would error
			{"(if t 7 (never-defined))", "7", ""},
		}},
		{"let and set", TestSequence{
			{"(let 'x 1)", "1", ""},
			{"(set 'x 2)", "2", ""},
			{"x", "2", ""},
			{"(let y 3)", "3", ""},
			{"y", "3", ""},
			{"(set y 4)", "4", ""},
		}},
		{"when and while", TestSequence{
			{"(when t 1 2)", "2", ""},
			{"(when nil 1 2)", "nil", ""},
			{"(let 'n 5)", "5", ""},
			{"(let 'acc 1)", "1", ""},
			{"(while (/= n 0) (set 'acc (* acc n)) (set 'n (- n 1)))", "nil", ""},
			{"acc", "120", ""},
		}},
		{"debug", TestSequence{
			{"(debug 1)", "1", "1\n"},
			{"(debug 'a)", "a", "a\n"},
			{"(debug '(1 2 3))", "(1 2 3)", "(1 2 3)\n"},
			{"(debug nil)", "nil", "nil\n"},
			// the evaluated value passes through unchanged
			{"(+ (debug 1) 2)", "3", "1\n"},
		}},
	}
	RunTestSuite(t, tests)
}
