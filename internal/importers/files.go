package importers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches plain text and markdown files at any depth.
const DefaultPattern = "**/*.{txt,md}"

// FileImporter turns text files below Root into drafts, one per file, titled
// after the file name.
type FileImporter struct {
	fsys    fs.FS
	Root    string
	Pattern string
}

func NewFileImporter(root, pattern string) *FileImporter {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &FileImporter{fsys: os.DirFS(root), Root: root, Pattern: pattern}
}

// Glob returns the matching paths relative to Root, sorted.
func (f *FileImporter) Glob() ([]string, error) {
	if !doublestar.ValidatePattern(f.Pattern) {
		return nil, fmt.Errorf("invalid pattern %q", f.Pattern)
	}
	matches, err := doublestar.Glob(f.fsys, f.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s in %s: %w", f.Pattern, f.Root, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Drafts reads every matching file. Empty and non-UTF-8 files are skipped.
func (f *FileImporter) Drafts(ctx context.Context) ([]Draft, error) {
	matches, err := f.Glob()
	if err != nil {
		return nil, err
	}

	drafts := make([]Draft, 0, len(matches))
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return drafts, err
		}
		data, err := fs.ReadFile(f.fsys, name)
		if err != nil {
			return drafts, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if !utf8.Valid(data) || strings.TrimSpace(string(data)) == "" {
			continue
		}
		drafts = append(drafts, Draft{Title: titleFromPath(name), Content: string(data)})
	}
	return drafts, nil
}

// titleFromPath turns "kapitel-01_der_bahnhof.txt" into "kapitel 01 der bahnhof".
func titleFromPath(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}
