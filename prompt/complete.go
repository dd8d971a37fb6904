package prompt

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const keyTab = '\t'

// completer is installed as the terminal's AutoCompleteCallback for a
// single question.
type completer struct {
	candidates []string
	out        io.Writer
}

func (c *completer) complete(line string, pos int, key rune) (string, int, bool) {
	if key != keyTab {
		return "", 0, false
	}

	prefix, suffix := line[:pos], line[pos:]
	matches := Matches(c.candidates, prefix)
	switch len(matches) {
	case 0:
		return "", 0, false
	case 1:
		return matches[0] + suffix, len(matches[0]), true
	}

	if c.out != nil {
		fmt.Fprintf(c.out, "%s\n", strings.Join(matches, "  "))
	}
	common := commonPrefix(matches)
	return common + suffix, len(common), true
}

// Matches returns the candidates starting with prefix, case-sensitively,
// in candidate order.
func Matches(candidates []string, prefix string) []string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			matches = append(matches, c)
		}
	}
	return matches
}

func commonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}
	return prefix
}
