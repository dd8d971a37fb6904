package file

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		wantChanged bool
	}{
		{
			name:        "already clean",
			input:       "A Nice Sunset",
			expected:    "A Nice Sunset",
			wantChanged: false,
		},
		{
			name:        "keeps portable punctuation",
			input:       "city_night-2.final",
			expected:    "city_night-2.final",
			wantChanged: false,
		},
		{
			name:        "drops slashes and symbols",
			input:       "a/b\\c:d*e?",
			expected:    "abcde",
			wantChanged: true,
		},
		{
			name:        "drops leading hyphens",
			input:       "--rf",
			expected:    "rf",
			wantChanged: true,
		},
		{
			name:        "hyphen exposed by removed character",
			input:       "!-x",
			expected:    "x",
			wantChanged: true,
		},
		{
			name:        "space exposed by removed character",
			input:       "# foo",
			expected:    "foo",
			wantChanged: true,
		},
		{
			name:        "trailing space exposed by removed character",
			input:       "foo #",
			expected:    "foo",
			wantChanged: true,
		},
		{
			name:        "spaces and hyphens mixed at the start",
			input:       "# - foo",
			expected:    "foo",
			wantChanged: true,
		},
		{
			name:        "edge spaces dropped",
			input:       "  padded  ",
			expected:    "padded",
			wantChanged: true,
		},
		{
			name:        "inner hyphen kept",
			input:       "x-y",
			expected:    "x-y",
			wantChanged: false,
		},
		{
			name:        "non ascii letters removed",
			input:       "Städte über Nacht",
			expected:    "Stdte ber Nacht",
			wantChanged: true,
		},
		{
			name:        "tabs are not spaces",
			input:       "a\tb",
			expected:    "ab",
			wantChanged: true,
		},
		{
			name:        "empty string",
			input:       "",
			expected:    "",
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, changed := Sanitize(tt.input)
			if result != tt.expected {
				t.Errorf("Sanitize(%q) = %q; want %q", tt.input, result, tt.expected)
			}
			if changed != tt.wantChanged {
				t.Errorf("Sanitize(%q) changed = %v; want %v", tt.input, changed, tt.wantChanged)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  padded  ", "padded"},
		{"inner  space", "inner  space"},
		{"\ttab ", "\ttab"},
		{"     ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if result := Trim(tt.input); result != tt.expected {
			t.Errorf("Trim(%q) = %q; want %q", tt.input, result, tt.expected)
		}
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"a/b/file.png", ".png"},
		{"noext", ""},
		{".hidden", ".hidden"},
		{"archive.tar.gz", ".gz"},
		{"dir.d/file", ""},
		{"trailing.", "."},
	}

	for _, tt := range tests {
		if result := Extension(tt.path); result != tt.expected {
			t.Errorf("Extension(%q) = %q; want %q", tt.path, result, tt.expected)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	valid := []string{"Landscapes", "Misc", "Space art", ".cache"}
	for _, c := range valid {
		if err := ValidateCategory(c); err != nil {
			t.Errorf("ValidateCategory(%q) = %v; want nil", c, err)
		}
	}

	invalid := []string{"", ".", "..", "a/b", `a\b`, "../escape"}
	for _, c := range invalid {
		if err := ValidateCategory(c); err == nil {
			t.Errorf("ValidateCategory(%q) = nil; want error", c)
		}
	}
}

func onlyPortable(s string) bool {
	for _, c := range s {
		if !isPortable(c) {
			return false
		}
	}
	return true
}

func TestSanitizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("output uses the portable character set", prop.ForAll(
		func(s string) bool {
			out, _ := Sanitize(s)
			return onlyPortable(out)
		},
		gen.AnyString(),
	))

	properties.Property("output never starts with a hyphen", prop.ForAll(
		func(s string) bool {
			out, _ := Sanitize(s)
			return !strings.HasPrefix(out, "-")
		},
		gen.OneGenOf(gen.AnyString(), gen.AlphaString().Map(func(s string) string { return "--" + s })),
	))

	properties.Property("output has no edge spaces", prop.ForAll(
		func(s string) bool {
			out, _ := Sanitize(s)
			return Trim(out) == out
		},
		gen.OneGenOf(gen.AnyString(), gen.AlphaString().Map(func(s string) string { return "# " + s + " !" })),
	))

	properties.Property("sanitizing is idempotent", prop.ForAll(
		func(s string) bool {
			once, _ := Sanitize(s)
			twice, changed := Sanitize(once)
			return once == twice && !changed
		},
		gen.AnyString(),
	))

	properties.Property("changed is reported exactly when output differs", prop.ForAll(
		func(s string) bool {
			out, changed := Sanitize(s)
			return changed == (out != s)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestTrimProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("trim is idempotent", prop.ForAll(
		func(s string) bool {
			return Trim(Trim(s)) == Trim(s)
		},
		gen.AnyString(),
	))

	properties.Property("strings without edge spaces are unchanged", prop.ForAll(
		func(s string) bool {
			return Trim(s) == s
		},
		gen.AnyString().SuchThat(func(s string) bool {
			return !strings.HasPrefix(s, " ") && !strings.HasSuffix(s, " ")
		}),
	))

	properties.TestingRun(t)
}

func TestExtensionProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("extension is the suffix after the last dot", prop.ForAll(
		func(dir, base, ext string) bool {
			return Extension(dir+"/"+base+"."+ext) == "."+ext
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
