package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-pages/openpages/internal/site"
	"github.com/open-pages/openpages/internal/source"
	"github.com/open-pages/openpages/internal/watcher"
)

func watchCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the papers directory and rebuild site data on change",
		Long:  "Monitor the papers directory for markdown changes. Rebuilds the corpus and rewrites the JSON site data with a 2-second debounce.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(outDir)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (overrides config)")
	return cmd
}

func runWatch(outDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if cfg.Papers.Archive != "" {
		return fmt.Errorf("watch requires a papers directory, not an archive")
	}

	b := newBuilder(false)
	src := newSource(cfg, "")
	w := &site.Writer{OutDir: outDir}

	rebuild := func() {
		res, err := b.Build(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [ERROR] rebuild: %v\n", err)
			return
		}
		if err := w.Write(res); err != nil {
			fmt.Fprintf(os.Stderr, "  [ERROR] write site data: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "  Rebuilt: %d paper(s), %d error(s)\n",
			res.Stats.Ingested, res.Stats.Failed)
	}

	// Initial build before watching.
	rebuild()

	return watcher.Watch(cfg.Papers.Dir, cfg.SkipDirSet(source.DefaultSkipDirs), rebuild)
}
