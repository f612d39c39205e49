package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker finds corpus files under a root matching include/exclude globs.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// File is one corpus file found by the walker.
type File struct {
	Path string // Absolute path
	Rel  string // Path relative to the walk root, used as document source
	Size int64
}

// Walk returns every file under root matching the include patterns and none
// of the exclude patterns. Patterns use doublestar globs against the
// root-relative path.
func (w *Walker) Walk(root string) ([]File, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if w.matches(w.excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.matches(w.includes, rel) || w.matches(w.excludes, rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, File{
			Path: path,
			Rel:  rel,
			Size: info.Size(),
		})
		return nil
	})

	return files, err
}

func (w *Walker) matches(patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// ReadFile reads a corpus file as text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
