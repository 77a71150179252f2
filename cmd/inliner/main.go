package main

import (
	"os"

	"github.com/harrison/inliner/internal/cmd"
)

// Version is the current version of the inliner application
const Version = "1.0.0"

func main() {
	cmd.Version = Version
	rootCmd := cmd.NewRootCommand()

	// cobra has already printed the error to stderr
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
