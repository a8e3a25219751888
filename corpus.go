package speechcommands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/essentials"
)

// audioExt is the only file extension the scanner admits.
const audioExt = ".wav"

// An Entry locates one labeled clip inside a corpus: the
// raw label folder and the file name within it.
type Entry struct {
	Label string
	File  string
}

// Path returns the clip's path below the corpus root.
func (e Entry) Path(root string) string {
	return filepath.Join(root, e.Label, e.File)
}

// ScanCorpus lists the corpus under root, which contains
// one folder per raw label with WAV files inside.
//
// Entries are ordered by folder name and then file name,
// so an unchanged directory tree always yields the same
// listing.
// If subset is non-nil, only files it names are kept.
// Hidden files and files without the WAV extension are
// skipped.
func ScanCorpus(root string, subset Subset) ([]Entry, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, essentials.AddCtx("scan corpus", err)
	}
	var res []Entry
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, dir.Name()))
		if err != nil {
			return nil, essentials.AddCtx("scan corpus", err)
		}
		for _, file := range files {
			name := file.Name()
			if file.IsDir() || strings.HasPrefix(name, ".") ||
				!strings.HasSuffix(name, audioExt) {
				continue
			}
			if subset != nil && !subset[name] {
				continue
			}
			res = append(res, Entry{Label: dir.Name(), File: name})
		}
	}
	return res, nil
}
