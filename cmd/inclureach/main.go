package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "inclureach",
	Short: "Disability-inclusive job board API",
	Long: `IncluReach serves a REST API for a disability-inclusive job board:
recruiter job postings with automated legitimacy verification, seeker
profiles and applications, and a seeker dashboard.`,
}

func main() {
	// Missing .env is fine, variables may come from the environment.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
