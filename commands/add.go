package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/dkarlovi/papr/config"
	"github.com/dkarlovi/papr/file"
	"github.com/dkarlovi/papr/prompt"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/symfony-cli/console"
)

// ErrPathRequired is returned when add is called without a file.
var ErrPathRequired = errors.New("path required to file being added")

// UnrecordedError means the wallpaper was moved but the registry could
// not be saved. The file is in place; only the registry entry is missing.
type UnrecordedError struct {
	Artist string
	Work   string
	Err    error
}

func (e *UnrecordedError) Error() string {
	return fmt.Sprintf("wallpaper moved to %s but not recorded for %q: %v", e.Work, e.Artist, e.Err)
}

func (e *UnrecordedError) Unwrap() error {
	return e.Err
}

// RegistryStore is the part of config.Store the add workflow needs.
type RegistryStore interface {
	Load() (*config.Registry, error)
	Save(reg *config.Registry) error
	Root(reg *config.Registry) string
}

// Asker is the part of the prompter the add workflow needs.
type Asker interface {
	Ask(q prompt.Question) (string, error)
}

type AddResult struct {
	Artist    string
	Work      string
	NewArtist bool
}

// Adder runs the add workflow: ask, move, record, save. Every question is
// asked before the file is touched, and the registry is only changed after
// the move succeeded.
type Adder struct {
	Store    RegistryStore
	Asker    Asker
	Out      io.Writer
	Logger   zerolog.Logger
	Settings config.Settings
}

func (a *Adder) Add(source string) (*AddResult, error) {
	if source == "" {
		return nil, ErrPathRequired
	}
	source, err := homedir.Expand(source)
	if err != nil {
		return nil, err
	}

	reg, err := a.Store.Load()
	if err != nil {
		return nil, err
	}
	if err := file.CheckSource(source); err != nil {
		return nil, &file.PlacementError{Op: "stat", Source: source, Err: err}
	}

	artist, err := a.Asker.Ask(prompt.Question{
		Label:      "Artist",
		Default:    config.UnknownArtist,
		Candidates: reg.ArtistNames(),
	})
	if err != nil {
		return nil, err
	}

	name, err := a.askFileName()
	if err != nil {
		return nil, err
	}

	root := a.Store.Root(reg)
	categories, err := file.Categories(root, a.Settings.IgnorePatterns)
	if err != nil {
		a.Logger.Warn().Err(err).Str("root", root).Msg("cannot list categories for completion")
	}
	category, err := a.askCategory(categories)
	if err != nil {
		return nil, err
	}

	var link string
	if reg.FindArtist(artist) == nil {
		if link, err = a.askLink(reg, artist); err != nil {
			return nil, err
		}
	}

	work, err := file.NewPlacer(root, a.Logger).Place(source, category, name)
	if err != nil {
		return nil, err
	}

	_, created := reg.RecordWork(artist, work, link)
	if err := a.Store.Save(reg); err != nil {
		a.Logger.Error().Err(err).
			Str("artist", artist).
			Str("work", work).
			Msg("wallpaper moved but registry not saved; add the work to the registry by hand")
		return nil, &UnrecordedError{Artist: artist, Work: work, Err: err}
	}

	a.Logger.Info().Str("artist", artist).Str("work", work).Bool("new_artist", created).Msg("wallpaper added")
	return &AddResult{Artist: artist, Work: work, NewArtist: created}, nil
}

func (a *Adder) retries() int {
	if a.Settings.PromptRetries > 0 {
		return a.Settings.PromptRetries
	}
	return prompt.DefaultRetries
}

func (a *Adder) askFileName() (string, error) {
	const label = "New File Name (description)"
	for i := 0; i < a.retries(); i++ {
		raw, err := a.Asker.Ask(prompt.Question{Label: label})
		if err != nil {
			return "", err
		}
		clean, changed := file.Sanitize(raw)
		if clean == "" {
			fmt.Fprintln(a.Out, "File name has no usable characters (letters, digits, '.', '_', '-' and space).")
			continue
		}
		if changed {
			fmt.Fprintf(a.Out, "File name changed: %s\n", clean)
		}
		return clean, nil
	}
	return "", &prompt.InputRequiredError{Label: label, Attempts: a.retries()}
}

func (a *Adder) askCategory(categories []string) (string, error) {
	const label = "Category"
	for i := 0; i < a.retries(); i++ {
		category, err := a.Asker.Ask(prompt.Question{
			Label:      label,
			Default:    a.Settings.DefaultCategory,
			Candidates: categories,
		})
		if err != nil {
			return "", err
		}
		if err := file.ValidateCategory(category); err != nil {
			fmt.Fprintf(a.Out, "Invalid category: %v\n", err)
			continue
		}
		return category, nil
	}
	return "", &prompt.InputRequiredError{Label: label, Attempts: a.retries()}
}

func (a *Adder) askLink(reg *config.Registry, artist string) (string, error) {
	if similar, ok := reg.SimilarArtist(artist); ok {
		fmt.Fprintf(a.Out, "Note: %q looks like the existing artist %q.\n", artist, similar)
	}
	fmt.Fprintf(a.Out, "%s seems to be a new artist. Please give a link to where the wallpaper came from.\n", artist)
	return a.Asker.Ask(prompt.Question{Label: "Link (leave blank for none)", Default: config.NoLink})
}

var addCmd = &console.Command{
	Name:        "add",
	Usage:       "Add a wallpaper",
	Description: "Moves the file into <folder>/<category>/<name><ext> and records it under an artist",
	Flags: []console.Flag{
		registryFlag(),
		&console.BoolFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Add an artist page (not implemented yet)"},
	},
	Args: []*console.Arg{
		{Name: "path", Optional: true, Description: "Wallpaper file to add, or \"artist\""},
	},
	Action: func(c *console.Context) error {
		args := c.Args().Slice()
		if c.Bool("artist") || (len(args) > 0 && args[0] == "artist") {
			fmt.Fprintln(c.App.Writer, "Adding artists is not implemented yet.")
			return nil
		}
		if len(args) == 0 {
			return exitError(ErrPathRequired)
		}

		settings, err := config.LoadSettings(c.String("registry"))
		if err != nil {
			return console.Exit(err.Error(), ExitUsage)
		}
		p := prompt.Stdio()
		p.Retries = settings.PromptRetries

		adder := &Adder{
			Store:    config.NewStore(settings.RegistryPath),
			Asker:    p,
			Out:      p.Out(),
			Logger:   newLogger(settings.LogLevel),
			Settings: settings,
		}
		result, err := adder.Add(args[0])
		if err != nil {
			return exitError(err)
		}

		fmt.Fprintf(c.App.Writer, "Added <info>%s</> for <comment>%s</>\n", result.Work, result.Artist)
		return nil
	},
}
