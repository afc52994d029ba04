package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-pages/openpages/internal/cli"
	"github.com/open-pages/openpages/internal/corpus"
)

func searchCmd() *cobra.Command {
	var (
		category string
		status   string
		sortKey  string
		jsonOut  bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search papers from the command line",
		Long: `Filter the corpus by free text, category, and status.

The query matches against titles, summaries, tags, and author names.

Examples:
  openpages search compression
  openpages search --category "Machine Learning" --status working
  openpages search --sort date-desc --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(query, category, status, sortKey, jsonOut)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Filter by exact category")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (working, idea, completed)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort order: title-asc, title-desc, date-asc, date-desc")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runSearch(query, category, status, sortKey string, jsonOut bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := buildCorpus(cfg, "", true)
	if err != nil {
		return userError("Cannot read papers",
			"Check [papers] dir in openpages.toml")
	}

	docs := res.Corpus.Query(corpus.FilterSpec{
		Search:   query,
		Category: category,
		Status:   strings.ToLower(strings.TrimSpace(status)),
		Sort:     corpus.ParseSortKey(sortKey),
	})

	if jsonOut {
		data, _ := json.MarshalIndent(docs, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		fmt.Println("No papers matched.")
		return nil
	}

	for i, d := range docs {
		color := cli.StatusColor(d.Status)
		fmt.Printf("\n%d. %s %s[%s]%s\n", i+1, d.Title, color, d.Status, cli.Reset)
		fmt.Printf("   %s\n", d.Slug)
		if len(d.Tags) > 0 {
			fmt.Printf("   %s%s%s\n", cli.Dim, strings.Join(d.Tags, ", "), cli.Reset)
		}

		// Show first 150 chars of the summary
		summary := d.Summary
		if len(summary) > 150 {
			summary = summary[:150] + "..."
		}
		summary = strings.ReplaceAll(summary, "\n", " ")
		fmt.Printf("   %s\n", summary)
	}
	fmt.Println()
	return nil
}
