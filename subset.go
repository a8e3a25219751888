package speechcommands

import (
	"os"
	"strings"

	"github.com/unixpickle/essentials"
)

// A Subset restricts a corpus scan to an explicit set of
// file names.
// A nil Subset admits every file.
type Subset map[string]bool

// ParseSubset extracts a Subset from the text of a
// membership list, one "<label>/<file>" path per line.
//
// Only the file name after the first separator is kept,
// so membership is decided by file name alone, not by
// label.
// Blank lines are skipped.
func ParseSubset(text string) Subset {
	res := Subset{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.IndexByte(line, '/'); idx >= 0 {
			line = line[idx+1:]
		}
		res[line] = true
	}
	return res
}

// ReadSubset reads and parses a membership list file.
func ReadSubset(path string) (Subset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, essentials.AddCtx("read subset", err)
	}
	return ParseSubset(string(data)), nil
}
