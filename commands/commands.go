package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/dkarlovi/papr/config"
	"github.com/dkarlovi/papr/prompt"
	"github.com/rs/zerolog"
	"github.com/symfony-cli/console"
)

var Version = "v0.1"

const (
	ExitFailure    = 1
	ExitUsage      = 2
	ExitUnrecorded = 3
	ExitCancelled  = 130
)

func registryFlag() console.Flag {
	return &console.StringFlag{Name: "registry", Usage: "Registry file to use (default .papr or $PAPR_REGISTRY)"}
}

func newLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// ExitCode maps an error from a command to the process exit status.
func ExitCode(err error) int {
	var unrecorded *UnrecordedError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, prompt.ErrCancelled):
		return ExitCancelled
	case errors.As(err, &unrecorded):
		return ExitUnrecorded
	case errors.Is(err, ErrPathRequired):
		return ExitUsage
	default:
		return ExitFailure
	}
}

func exitMessage(err error) string {
	switch {
	case errors.Is(err, prompt.ErrCancelled):
		return "Cancelled, nothing was changed."
	case errors.Is(err, ErrPathRequired):
		return "Path required to file being added!"
	case errors.Is(err, config.ErrAlreadyExists):
		return fmt.Sprintf("%v. Aborting.", err)
	default:
		return err.Error()
	}
}

func exitError(err error) error {
	return console.Exit(exitMessage(err), ExitCode(err))
}

var initCmd = &console.Command{
	Name:        "init",
	Usage:       "Initialize the registry file",
	Description: "Creates the registry file and its wallpaper folder in the current directory",
	Flags:       []console.Flag{registryFlag()},
	Action: func(c *console.Context) error {
		settings, err := config.LoadSettings(c.String("registry"))
		if err != nil {
			return console.Exit(err.Error(), ExitUsage)
		}

		store := config.NewStore(settings.RegistryPath)
		reg, err := store.Initialize()
		if err != nil {
			return exitError(err)
		}

		fmt.Fprintf(c.App.Writer, "Created <info>%s</> with wallpaper folder <comment>%s</>\n", store.Path, store.Root(reg))
		return nil
	},
}

var versionCmd = &console.Command{
	Name:  "version",
	Usage: "Show version",
	Action: func(c *console.Context) error {
		fmt.Fprintf(c.App.Writer, "Papr %s\n", Version)
		return nil
	},
}

var statsCmd = &console.Command{
	Name:  "stats",
	Usage: "Print some stats",
	Action: func(c *console.Context) error {
		fmt.Fprintln(c.App.Writer, "Stats are not implemented yet.")
		return nil
	},
}

func Commands() []*console.Command {
	return []*console.Command{initCmd, addCmd, versionCmd, statsCmd}
}
