// Package main is the entrypoint for the openpages CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-pages/openpages/internal/config"
	"github.com/open-pages/openpages/internal/corpus"
	"github.com/open-pages/openpages/internal/render"
	"github.com/open-pages/openpages/internal/source"
)

// Version is set at build time via ldflags.
var Version = "dev"

// configPath is the global --config flag.
var configPath string

func main() {
	root := &cobra.Command{
		Use:   "openpages",
		Short: "Research paper site generator",
		Long:  "openpages — ingest markdown papers, build a searchable corpus, and generate site data.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(versionCmd())
	root.AddCommand(buildCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(listCmd())
	root.AddCommand(showCmd())
	root.AddCommand(categoriesCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(watchCmd())
	root.AddCommand(mcpCmd())

	// Global --config flag
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to openpages.toml (overrides auto-detect)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the openpages version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("openpages %s\n", Version)
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// newSource resolves where papers come from: an explicit archive flag wins,
// then the configured archive, then the papers directory.
func newSource(cfg *config.Config, archive string) source.Source {
	if archive != "" {
		return source.NewArchive(archive)
	}
	if cfg.Papers.Archive != "" {
		return source.NewArchive(cfg.Papers.Archive)
	}
	dir := source.NewDir(cfg.Papers.Dir)
	dir.SkipDirs = cfg.SkipDirSet(source.DefaultSkipDirs)
	return dir
}

func newBuilder(quiet bool) *corpus.Builder {
	return &corpus.Builder{
		Renderer: render.NewGoldmark(),
		Quiet:    quiet,
	}
}

// buildCorpus runs one full ingest and returns the result. Per-document
// failures are reported in the result, not as an error.
func buildCorpus(cfg *config.Config, archive string, quiet bool) (*corpus.Result, error) {
	b := newBuilder(quiet)
	return b.Build(newSource(cfg, archive))
}

// ---------- error helpers ----------

type pagesError struct {
	message string
	hint    string
}

func (e *pagesError) Error() string {
	return fmt.Sprintf("%s\n  Hint: %s", e.message, e.hint)
}

func userError(message, hint string) error {
	return &pagesError{message: message, hint: hint}
}
