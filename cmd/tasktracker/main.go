package main

import (
	"fmt"
	"os"

	"github.com/pablasso/tasktracker/internal/cli"
	"github.com/pablasso/tasktracker/internal/tui"
	"github.com/pablasso/tasktracker/internal/version"
)

func main() {
	res, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	switch {
	case res.ShowHelp:
		fmt.Print(res.HelpText)
	case res.ShowVersion:
		fmt.Printf("tasktracker %s (commit %s, built %s)\n", version.Version, version.CommitSHA, version.BuildDate)
	case res.RunCLI:
		// Subcommands go through cobra, which parses the flags again.
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
	default:
		if err := tui.Run(res.Options); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
