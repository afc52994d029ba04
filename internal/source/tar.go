package source

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Archive reads markdown entries out of a tar archive file. The site build
// ships papers to the browser as one archive; this source lets the same
// bundle feed a local ingestion pass.
type Archive struct {
	Path string
}

// NewArchive returns an Archive source for the given tar file.
func NewArchive(path string) *Archive {
	return &Archive{Path: path}
}

// Files extracts every .md entry from the archive in order.
func (a *Archive) Files() ([]File, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	return ReadArchive(f)
}

// ReadArchive extracts .md entries from tar data. Non-markdown entries and
// directories are skipped; a corrupted entry is reported per file so the
// rest of the archive still ingests.
func ReadArchive(r io.Reader) ([]File, error) {
	tr := tar.NewReader(r)

	var files []File
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return files, fmt.Errorf("read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(hdr.Name, ".md") {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			files = append(files, File{Name: hdr.Name, Err: err})
			continue
		}
		files = append(files, File{Name: hdr.Name, Data: data})
	}
}
