// Package watcher monitors a papers directory and triggers corpus rebuilds.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 2 * time.Second

// Watch starts watching dir for markdown changes and calls rebuild after each
// debounced batch of events. Directories named in skip are not watched. It
// blocks until the watcher's event channel closes or an unrecoverable error
// occurs.
func Watch(dir string, skip map[string]bool, rebuild func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dirs := walkDirs(dir, skip)
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			fmt.Fprintf(os.Stderr, "  [WARN] Could not watch %s: %v\n", d, err)
		}
	}

	fmt.Fprintf(os.Stderr, "Watching %d directories in %s\n", len(dirs), dir)
	fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop.\n\n")

	// Debounce: collect changes over a window before rebuilding once.
	var (
		mu      sync.Mutex
		pending int
		timer   *time.Timer
	)

	flush := func() {
		mu.Lock()
		n := pending
		pending = 0
		mu.Unlock()

		if n == 0 {
			return
		}
		fmt.Fprintf(os.Stderr, "  Rebuilding after %d change(s)...\n", n)
		rebuild()
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !isMarkdown(event.Name) {
				// But watch new directories as they appear.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if !skip[filepath.Base(event.Name)] {
							if err := w.Add(event.Name); err != nil {
								fmt.Fprintf(os.Stderr, "  [WARN] Could not watch %s: %v\n", event.Name, err)
							}
						}
					}
				}
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				mu.Lock()
				pending++
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceDelay, flush)
				mu.Unlock()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "  [WARN] Watch error: %v\n", err)
		}
	}
}

func isMarkdown(path string) bool {
	return strings.HasSuffix(path, ".md")
}

func walkDirs(root string, skip map[string]bool) []string {
	var dirs []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skip[d.Name()] {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs
}
