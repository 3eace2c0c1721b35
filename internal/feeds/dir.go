package feeds

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eastgate/weeknotes/internal/store"
)

// Export filenames expected inside the import directory.
const (
	MastodonFile = "mastodon.json"
	LinkdingFile = "linkding.json"
)

// DirResult is everything LoadDir found in an import directory.
type DirResult struct {
	Items   []store.Item
	Missing []string
}

// LoadDir parses every known export file in dir. A missing file is noted
// rather than fatal, but a directory with no source data at all is an
// error, as is a file that fails to parse.
func LoadDir(dir string) (*DirResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("import directory %s: %w", dir, err)
	}

	result := &DirResult{}

	parsers := []struct {
		name  string
		parse func(*os.File) ([]store.Item, error)
	}{
		{MastodonFile, func(f *os.File) ([]store.Item, error) { return ParseMastodon(f) }},
		{LinkdingFile, func(f *os.File) ([]store.Item, error) { return ParseLinkding(f) }},
	}

	for _, p := range parsers {
		path := filepath.Join(dir, p.name)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			result.Missing = append(result.Missing, p.name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}

		items, err := p.parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		result.Items = append(result.Items, items...)
	}

	if len(result.Missing) == len(parsers) {
		return nil, fmt.Errorf("no source data found in %s (expected %s or %s)", dir, MastodonFile, LinkdingFile)
	}
	return result, nil
}
