package main

import (
	"os"

	"github.com/cwbudde/go-minisharp/cmd/minisharp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
