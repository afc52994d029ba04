package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-pages/openpages/internal/corpus"
	mcpserver "github.com/open-pages/openpages/internal/mcp"
)

func mcpCmd() *cobra.Command {
	var archive string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP stdio server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			mgr := corpus.NewManager()
			b := newBuilder(true)
			src := newSource(cfg, archive)

			res, err := mgr.Rebuild(b, src)
			if err != nil {
				return userError("Cannot read papers",
					"Check [papers] dir in openpages.toml")
			}
			fmt.Fprintf(os.Stderr, "Ingested %d paper(s), %d error(s)\n",
				res.Stats.Ingested, res.Stats.Failed)

			mcpserver.Version = Version
			return mcpserver.Serve(mgr, func() (*corpus.Result, error) {
				return mgr.Rebuild(b, src)
			})
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "Read papers from a tar archive instead of the papers directory")
	return cmd
}
