package config

import (
	"strings"

	"github.com/agext/levenshtein"
)

const (
	DefaultFileName = ".papr"
	DefaultFolder   = "wallpapers"
	UnknownArtist   = "Unknown"
	NoLink          = "N/A"
)

// similarDistance is the largest edit distance at which two artist names
// are reported as probably the same artist.
const similarDistance = 2

type Artist struct {
	Name  string   `yaml:"name"`
	Link  string   `yaml:"link"`
	Works []string `yaml:"works"`

	// Extra holds keys added by hand so a save writes them back.
	Extra map[string]any `yaml:",inline"`
}

// Registry is the .papr document. Artist order is insertion order. Keys
// papr does not know survive a load and save; comments do not.
type Registry struct {
	Folder  string    `yaml:"folder"`
	Artists []*Artist `yaml:"artists"`

	Extra map[string]any `yaml:",inline"`
}

// NewRegistry returns the document written by a fresh init.
func NewRegistry() *Registry {
	return &Registry{
		Folder: DefaultFolder,
		Artists: []*Artist{
			{Name: UnknownArtist, Link: NoLink, Works: []string{}},
		},
	}
}

// ArtistNames returns artist names in registry order.
func (r *Registry) ArtistNames() []string {
	names := make([]string, 0, len(r.Artists))
	for _, a := range r.Artists {
		if a != nil {
			names = append(names, a.Name)
		}
	}
	return names
}

// FindArtist returns the first artist whose name matches exactly.
func (r *Registry) FindArtist(name string) *Artist {
	for _, a := range r.Artists {
		if a != nil && a.Name == name {
			return a
		}
	}
	return nil
}

// RecordWork appends work to the named artist, creating the artist at the
// end of the list when no exact match exists. link is only used for a new
// artist; an existing artist keeps its link.
func (r *Registry) RecordWork(name, work, link string) (*Artist, bool) {
	if a := r.FindArtist(name); a != nil {
		a.Works = append(a.Works, work)
		return a, false
	}
	if link == "" {
		link = NoLink
	}
	a := &Artist{Name: name, Link: link, Works: []string{work}}
	r.Artists = append(r.Artists, a)
	return a, true
}

// SimilarArtist finds an existing artist whose name is a near miss of
// name, ignoring case. Exact matches are not reported.
func (r *Registry) SimilarArtist(name string) (string, bool) {
	want := strings.ToLower(name)
	best, bestDist := "", similarDistance+1
	for _, a := range r.Artists {
		if a == nil || a.Name == name {
			continue
		}
		d := levenshtein.Distance(want, strings.ToLower(a.Name), nil)
		if d < bestDist && d <= len(want)/2 {
			best, bestDist = a.Name, d
		}
	}
	return best, best != ""
}
