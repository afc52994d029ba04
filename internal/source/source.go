// Package source delivers raw paper files to the corpus builder, either
// from a directory tree or from entries of a tar archive.
package source

// File is one raw document as delivered by a collaborator. A non-nil Err
// means the bytes could not be read; the builder skips that document and
// reports the error without aborting the batch.
type File struct {
	Name string
	Data []byte
	Err  error
}

// Source yields the raw paper files for one ingestion pass.
type Source interface {
	Files() ([]File, error)
}

// DefaultSkipDirs are directory names never descended into when walking a
// papers directory.
var DefaultSkipDirs = map[string]bool{
	".git":         true,
	".obsidian":    true,
	"node_modules": true,
	"_site":        true,
}
