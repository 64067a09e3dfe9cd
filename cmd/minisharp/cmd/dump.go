package cmd

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-minisharp/internal/analysis"
	"github.com/cwbudde/go-minisharp/internal/ir"
	"github.com/cwbudde/go-minisharp/internal/lowering"
	"github.com/cwbudde/go-minisharp/internal/samples"
	"github.com/spf13/cobra"
)

var dumpIR bool

var dumpCmd = &cobra.Command{
	Use:   "dump [program]",
	Short: "Print a sample program's AST or IR",
	Long: `Print the pretty-printed AST of a sample program, or its lowered
IR listing with --ir.

Examples:
  minisharp dump factorial
  minisharp dump --ir factorial`,
	Args: cobra.ExactArgs(1),
	RunE: dumpProgram,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().BoolVar(&dumpIR, "ir", false, "dump the lowered IR instead of the AST")
}

func dumpProgram(_ *cobra.Command, args []string) error {
	program, ok := samples.ByName(args[0])
	if !ok {
		return fmt.Errorf("unknown program %q (available: %s)", args[0], strings.Join(samples.Names(), ", "))
	}

	if !dumpIR {
		fmt.Print(program.String())
		return nil
	}

	engine, err := analysis.NewQueryEngine(program)
	if err != nil {
		exitWithError("%s", err)
	}
	output, err := lowering.LowerProgram(program, engine)
	if err != nil {
		exitWithError("%s", err)
	}
	fmt.Print(ir.Dump(&output.Program))
	return nil
}
