package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-pages/openpages/internal/cli"
	"github.com/open-pages/openpages/internal/site"
)

func buildCmd() *cobra.Command {
	var (
		archive string
		outDir  string
		quiet   bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Ingest papers and write site data",
		Long: `Ingest every markdown paper, build the corpus, and write the JSON
site data to the output directory.

Examples:
  openpages build                       # Read papers from the configured directory
  openpages build --archive papers.tar  # Read papers from a tar archive
  openpages build --out public/data     # Custom output directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(archive, outDir, quiet)
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "Read papers from a tar archive instead of the papers directory")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (overrides config)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress per-document warnings")
	return cmd
}

func runBuild(archive, outDir string, quiet bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = cfg.Output.Dir
	}

	res, err := buildCorpus(cfg, archive, quiet)
	if err != nil {
		return userError("Cannot read papers",
			"Check [papers] dir in openpages.toml, or pass --archive")
	}

	w := &site.Writer{OutDir: outDir}
	if err := w.Write(res); err != nil {
		return err
	}

	stats := res.Stats
	fmt.Printf("\n%sBuild complete%s\n\n", cli.Bold, cli.Reset)
	fmt.Printf("  Papers:     %s of %s ingested\n",
		cli.FormatNumber(stats.Ingested), cli.FormatNumber(stats.TotalFiles))
	fmt.Printf("  Categories: %s\n", cli.FormatNumber(stats.Categories))
	fmt.Printf("  Warnings:   %s\n", cli.FormatNumber(stats.Warnings))
	fmt.Printf("  Output:     %s\n", cli.ShortenHome(outDir))

	if len(res.Errors) > 0 {
		fmt.Printf("\n  %s%d paper(s) failed:%s\n", cli.Red, len(res.Errors), cli.Reset)
		for _, e := range res.Errors {
			fmt.Printf("    %s✗%s %s\n", cli.Red, cli.Reset, e.Error())
		}
	}
	fmt.Println()
	return nil
}
