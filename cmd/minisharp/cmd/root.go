package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "minisharp",
	Short: "MiniSharp compiler front-end and interpreter",
	Long: `go-minisharp is a compiler front-end for MiniSharp, a small
class-based object-oriented language.

The same AST can be analyzed two ways:
  - On-demand queries answer targeted semantic questions (the type of an
    expression, the declaration a name refers to) by walking only the
    AST subtrees needed.
  - A traditional whole-program pass eagerly builds name-resolution
    tables and type-checks every expression.

The query engine feeds the lowering to a linear IR, executed by a
stack-machine interpreter; the whole-program pass backs "run --check"
and the bench comparison. Programs are supplied as built-in samples;
there is no surface-syntax parser.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// useColor reports whether error output should use ANSI colors.
func useColor() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func exitWithError(msg string, args ...any) {
	if useColor() {
		fmt.Fprintf(os.Stderr, "\033[1;31mError:\033[0m "+msg+"\n", args...)
	} else {
		fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	}
	os.Exit(1)
}
