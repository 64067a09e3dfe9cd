package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/go-minisharp/internal/analysis"
	"github.com/cwbudde/go-minisharp/internal/ast"
	"github.com/cwbudde/go-minisharp/internal/samples"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var benchConfigPath string

// benchConfig is the optional YAML configuration for the bench command.
type benchConfig struct {
	Iterations int      `yaml:"iterations"`
	Queries    []string `yaml:"queries"`
}

func defaultBenchConfig() benchConfig {
	return benchConfig{
		Iterations: 5,
		Queries:    []string{"get-type", "get-decl", "get-methods"},
	}
}

func loadBenchConfig(path string) (benchConfig, error) {
	cfg := defaultBenchConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Iterations < 1 {
		return cfg, fmt.Errorf("config %s: iterations must be positive", path)
	}
	return cfg, nil
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare on-demand queries against the traditional pass",
	Long: `Measure the three reference queries on large sample programs,
comparing the on-demand query engine against the traditional
whole-program analysis:

  get-type     type of the last expression in a 100k-statement method
  get-decl     declaration of a variable use in the same method
  get-methods  methods of one class among 1000

Timings include engine construction, since laziness is the point of
the comparison.

Example config (--config bench.yaml):

  iterations: 3
  queries: [get-type, get-methods]`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVar(&benchConfigPath, "config", "", "YAML config file for the benchmark run")
}

func runBench(_ *cobra.Command, _ []string) error {
	cfg, err := loadBenchConfig(benchConfigPath)
	if err != nil {
		return err
	}

	for _, query := range cfg.Queries {
		bench, ok := benchQueries[query]
		if !ok {
			return fmt.Errorf("unknown query %q (available: get-type, get-decl, get-methods)", query)
		}

		onDemand, traditional := bench(cfg.Iterations)
		fmt.Printf("%s\n", query)
		fmt.Printf("  on demand:   %v\n", onDemand)
		fmt.Printf("  traditional: %v\n", traditional)
	}
	return nil
}

var benchQueries = map[string]func(iterations int) (onDemand, traditional time.Duration){
	"get-type":    benchGetType,
	"get-decl":    benchGetDecl,
	"get-methods": benchGetMethods,
}

func best(iterations int, run func()) time.Duration {
	bestTime := time.Duration(0)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		run()
		elapsed := time.Since(start)
		if bestTime == 0 || elapsed < bestTime {
			bestTime = elapsed
		}
	}
	return bestTime
}

// lastDeclRHS returns the initializer expression of the last statement
// of the program's first method.
func lastDeclRHS(program *ast.Program) ast.Expression {
	main := program.Methods()[0]
	last := main.Body[len(main.Body)-1].(*ast.VarDecl)
	return last.Init
}

func benchGetType(iterations int) (time.Duration, time.Duration) {
	program := samples.LargeFn(samples.LargeFnSize)
	expr := lastDeclRHS(program)

	onDemand := best(iterations, func() {
		engine, err := analysis.NewQueryEngine(program)
		if err != nil {
			exitWithError("%s", err)
		}
		if _, _, err := engine.ExprType(ast.ExprLabelOf(expr)); err != nil {
			exitWithError("%s", err)
		}
	})
	traditional := best(iterations, func() {
		typeMap, _, err := analysis.CheckTypes(program)
		if err != nil {
			exitWithError("%s", err)
		}
		_ = typeMap[expr.NodeLabel()]
	})
	return onDemand, traditional
}

func benchGetDecl(iterations int) (time.Duration, time.Duration) {
	program := samples.LargeFn(samples.LargeFnSize)
	use := lastDeclRHS(program).(*ast.BinaryOp).Left

	onDemand := best(iterations, func() {
		engine, err := analysis.NewQueryEngine(program)
		if err != nil {
			exitWithError("%s", err)
		}
		if _, err := engine.VarDecl(use.NodeLabel()); err != nil {
			exitWithError("%s", err)
		}
	})
	traditional := best(iterations, func() {
		pre, err := analysis.Preprocess(program)
		if err != nil {
			exitWithError("%s", err)
		}
		_ = pre.VarMap[use.NodeLabel()]
	})
	return onDemand, traditional
}

func benchGetMethods(iterations int) (time.Duration, time.Duration) {
	program := samples.ManyClasses()

	onDemand := best(iterations, func() {
		engine, err := analysis.NewQueryEngine(program)
		if err != nil {
			exitWithError("%s", err)
		}
		label, err := engine.ClassDecl("C955")
		if err != nil {
			exitWithError("%s", err)
		}
		_ = engine.Node(label.Label()).(*ast.ClassDecl).Methods()
	})
	traditional := best(iterations, func() {
		pre, err := analysis.Preprocess(program)
		if err != nil {
			exitWithError("%s", err)
		}
		_ = pre.ClassesByName["C955"].Methods()
	})
	return onDemand, traditional
}
