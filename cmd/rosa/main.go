package main

import (
	"os"

	"github.com/rosa-dev/rosa/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
