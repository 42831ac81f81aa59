package cmd

import (
	"fmt"
	"os"

	"github.com/nonk123/crisp/crisp"
	"github.com/nonk123/crisp/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run crisp code",
	Long: `Run crisp code supplied via the command line or files.  All sources
are evaluated in order against one shared environment.  The argument "-"
reads from standard input.  The first top-level form that fails aborts
the run.`,
	Run: func(cmd *cobra.Command, args []string) {
		env := crisp.NewEnv(nil)
		lerr := crisp.InitializeUserEnv(env, crisp.WithReader(parser.NewReader()))
		if lerr.Type == crisp.CError {
			fmt.Fprintln(os.Stderr, lerr)
			os.Exit(1)
		}
		for _, arg := range args {
			if err := runSource(env, arg); err != nil {
				fmt.Fprintln(os.Stderr, err)
				if lerr, ok := err.(*crisp.ErrorVal); ok && lerr.Stack != nil {
					lerr.Stack.DebugPrint(os.Stderr)
				}
				os.Exit(1)
			}
		}
	},
}

func runSource(env *crisp.CEnv, arg string) error {
	if runExpression {
		return runText(env, "argument", []byte(arg))
	}
	if arg == "-" {
		v := env.Load("stdin", os.Stdin)
		return crisp.GoError(v)
	}
	text, err := os.ReadFile(arg)
	if err != nil {
		return err
	}
	return runText(env, arg, text)
}

func runText(env *crisp.CEnv, name string, text []byte) error {
	exprs, n, err := parser.ParseCVal(text)
	if err != nil {
		return fmt.Errorf("%s: offset %d: %w", name, n, err)
	}
	for _, expr := range exprs {
		v := env.Eval(expr)
		if v.Type == crisp.CError {
			return crisp.GoError(v)
		}
		if runPrint {
			fmt.Println(v)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as crisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print top-level values to stdout")
}
