package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-pages/openpages/internal/corpus"
	"github.com/open-pages/openpages/internal/source"
	"github.com/open-pages/openpages/internal/watcher"
	"github.com/open-pages/openpages/internal/web"
)

func serveCmd() *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the paper corpus over a local HTTP API",
		Long: `Build the corpus and serve it over a read-only HTTP API.

The server only accepts connections from localhost.

Examples:
  openpages serve                    # Serve on the configured address
  openpages serve --addr :9090       # Custom address
  openpages serve --watch            # Rebuild when papers change`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Watch the papers directory and rebuild on change")
	return cmd
}

func runServe(addr string, watch bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	mgr := corpus.NewManager()
	b := newBuilder(false)
	src := newSource(cfg, "")

	res, err := mgr.Rebuild(b, src)
	if err != nil {
		return userError("Cannot read papers",
			"Check [papers] dir in openpages.toml")
	}
	fmt.Fprintf(os.Stderr, "Ingested %d paper(s), %d error(s)\n",
		res.Stats.Ingested, res.Stats.Failed)

	if watch {
		if cfg.Papers.Archive != "" {
			return fmt.Errorf("--watch requires a papers directory, not an archive")
		}
		go func() {
			err := watcher.Watch(cfg.Papers.Dir, cfg.SkipDirSet(source.DefaultSkipDirs), func() {
				if _, err := mgr.Rebuild(b, src); err != nil {
					fmt.Fprintf(os.Stderr, "  [ERROR] rebuild: %v\n", err)
				}
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "  [ERROR] watch: %v\n", err)
			}
		}()
	}

	return web.Serve(addr, mgr, Version)
}
