package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir reads every markdown file under a directory tree.
type Dir struct {
	Path     string
	SkipDirs map[string]bool
}

// NewDir returns a Dir source with the default skip list.
func NewDir(path string) *Dir {
	return &Dir{Path: path, SkipDirs: DefaultSkipDirs}
}

// Files walks the directory for .md files. Individual read failures are
// reported per file; only a missing root directory fails the whole pass.
func (d *Dir) Files() ([]File, error) {
	if _, err := os.Stat(d.Path); err != nil {
		return nil, fmt.Errorf("papers directory: %w", err)
	}

	var files []File
	filepath.WalkDir(d.Path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if d.SkipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}

		name := relativeName(p, d.Path)
		data, readErr := os.ReadFile(p)
		if readErr != nil {
			files = append(files, File{Name: name, Err: readErr})
			return nil
		}
		files = append(files, File{Name: name, Data: data})
		return nil
	})
	return files, nil
}

func relativeName(filePath, root string) string {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return filePath
	}
	return filepath.ToSlash(rel)
}
