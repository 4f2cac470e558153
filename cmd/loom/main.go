package main

import (
	"os"

	"github.com/loom-cli/loom/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
