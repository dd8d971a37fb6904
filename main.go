package main

import (
	"fmt"
	"os"

	"github.com/dkarlovi/papr/commands"
	"github.com/symfony-cli/console"
)

var knownCommands = map[string]bool{
	"init":    true,
	"add":     true,
	"version": true,
	"stats":   true,
	"help":    true,
	"list":    true,
}

// normalizeArgs maps the short forms papr has always accepted onto
// commands. It returns false when the first argument is not recognised.
func normalizeArgs(args []string) ([]string, bool) {
	if len(args) < 2 {
		return []string{args[0], "--help"}, true
	}

	out := append([]string{}, args...)
	switch args[1] {
	case "-v", "--version":
		out[1] = "version"
	case "-i", "--init":
		out[1] = "init"
	case "-h", "--help":
	default:
		if !knownCommands[args[1]] {
			return nil, false
		}
	}
	return out, true
}

func main() {
	args, ok := normalizeArgs(os.Args)
	if !ok {
		fmt.Println(`Use "papr -h" for help.`)
		return
	}

	app := &console.Application{
		Name:     "Papr",
		Usage:    "File wallpapers into categories and credit their artists",
		Version:  commands.Version,
		Commands: commands.Commands(),
	}
	if err := app.Run(args); err != nil {
		os.Exit(commands.ExitCode(err))
	}
}
