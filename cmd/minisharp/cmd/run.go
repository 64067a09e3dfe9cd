package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/go-minisharp/internal/analysis"
	"github.com/cwbudde/go-minisharp/internal/interp"
	"github.com/cwbudde/go-minisharp/internal/lowering"
	"github.com/cwbudde/go-minisharp/internal/samples"
	"github.com/spf13/cobra"
)

var checkOnly bool

var runCmd = &cobra.Command{
	Use:   "run [program]",
	Short: "Compile and run a sample program",
	Long: fmt.Sprintf(`Compile a built-in sample program to IR and execute it.

Available programs: %s

Examples:
  # Run the hello world program
  minisharp run hello-world

  # Type-check the factorial program without running it
  minisharp run --check factorial`, strings.Join(samples.Names(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&checkOnly, "check", false, "type-check only, do not execute")
}

func runProgram(_ *cobra.Command, args []string) error {
	program, ok := samples.ByName(args[0])
	if !ok {
		return fmt.Errorf("unknown program %q (available: %s)", args[0], strings.Join(samples.Names(), ", "))
	}

	engine, err := analysis.NewQueryEngine(program)
	if err != nil {
		exitWithError("%s", err)
	}

	if checkOnly {
		if _, _, err := analysis.CheckTypes(program); err != nil {
			exitWithError("%s", err)
		}
		fmt.Println("ok")
		return nil
	}

	output, err := lowering.LowerProgram(program, engine)
	if err != nil {
		exitWithError("%s", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "lowered %d methods, entry point %d\n",
			len(output.Program.Methods), output.Program.EntryPoint)
	}

	in := interp.New(&output.Program, output.Classes, os.Stdout)
	if err := in.Run(); err != nil {
		exitWithError("%s", err)
	}
	return nil
}
