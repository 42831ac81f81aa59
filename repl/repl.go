package repl

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/nonk123/crisp/crisp"
	"github.com/nonk123/crisp/parser"
)

// RunRepl runs a simple repl.  Each line is read, evaluated, and printed;
// an error aborts only the offending line.  The session ends on EOF or
// when exit or quit is entered.
func RunRepl(prompt string) {
	env := crisp.NewEnv(nil)
	lerr := crisp.InitializeUserEnv(env, crisp.WithReader(parser.NewReader()))
	if lerr.Type == crisp.CError {
		errln(lerr)
		return
	}

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			if err != io.EOF {
				errln(err)
			}
			return
		}
		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			return
		}
		v, _, err := parser.ParseCVal([]byte(line))
		if err != nil {
			errln(err)
			continue
		}
		for i := range v {
			fmt.Println(env.Eval(v[i]))
		}
	}
}

func errln(v interface{}) {
	fmt.Fprintln(os.Stderr, v)
}
