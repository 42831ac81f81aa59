package cmd

import (
	"os"

	"github.com/nonk123/crisp/repl"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crisp",
	Short: "An interpreter for the crisp language",
	Long: `Crisp is a small lisp dialect built around fexprs -- combiners that
receive their operands unevaluated and force them on demand.  Without
arguments crisp starts an interactive session.`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl("> ")
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
