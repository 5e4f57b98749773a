package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "worker",
		Short:         "Offline tooling for the pool calculation service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(analyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
