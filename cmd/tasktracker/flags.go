package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/pablasso/tasktracker/internal/config"
	"github.com/pablasso/tasktracker/internal/tui"
)

type parseResult struct {
	Options     tui.Options
	ShowHelp    bool
	ShowVersion bool
	HelpText    string
	// RunCLI is set when a subcommand follows the flags.
	RunCLI bool
}

func parseArgs(args []string) (parseResult, error) {
	fs := flag.NewFlagSet("tasktracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "", "Config file (default $XDG_CONFIG_HOME/tasktracker/config.yaml)")
	dataDir := fs.String("data-dir", "", "Directory for task data and logs")
	backend := fs.String("backend", "", "Storage backend: file|redis|sqlite|mysql|memory")
	logLevel := fs.String("log-level", "", "Log level: debug|info|warn|error")
	showVersion := fs.Bool("version", false, "Show version information")
	showVersionShort := fs.Bool("v", false, "Show version information")

	usage := func() string {
		var b strings.Builder
		fmt.Fprintln(&b, "Usage: tasktracker [flags] [command]")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "Tasktracker is a terminal task list with undo, filters and JSON import/export.")
		fmt.Fprintln(&b, "Run without a command to open the interactive UI, or see 'tasktracker help'.")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "Flags:")
		fs.SetOutput(&b)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
		return b.String()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return parseResult{ShowHelp: true, HelpText: usage()}, nil
		}
		return parseResult{}, fmt.Errorf("%v\n\n%s", err, usage())
	}

	if fs.NArg() > 0 {
		return parseResult{RunCLI: true}, nil
	}

	if *showVersion || *showVersionShort {
		return parseResult{ShowVersion: true}, nil
	}

	return parseResult{
		Options: tui.Options{
			ConfigPath: *configPath,
			Overrides: config.Overrides{
				DataDir:  *dataDir,
				Backend:  *backend,
				LogLevel: *logLevel,
			},
		},
	}, nil
}
