package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rosa-dev/rosa/internal/config"
)

func newInitCommand() *cobra.Command {
	var source string
	var addr string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a rosa.yaml with the default category rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, source, addr)
		},
	}

	cmd.Flags().StringVar(&source, "source", "transactions.csv", "path to the transaction CSV")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "dashboard API listen address")

	return cmd
}

func runInit(dir, source, addr string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	path := filepath.Join(dir, config.DefaultPath)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.Default()
	cfg.Source = source
	cfg.Server.Addr = addr
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized rosa project at %s\n", dir)
	return nil
}
