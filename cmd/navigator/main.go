// Package main provides the navigator CLI for the career navigator matching API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "navigator",
	Short: "Career Navigator CLI",
	Long: `Career Navigator matches a resume against the live job market through the matching API:
upload a resume, confirm its skills, scan job portals and review the market dashboard.

Configuration can be loaded from a JSON file using --config. Command-line flags override config file values.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
