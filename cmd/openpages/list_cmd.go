package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-pages/openpages/internal/cli"
)

func listCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every paper with its title and status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runList(jsonOut bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := buildCorpus(cfg, "", true)
	if err != nil {
		return userError("Cannot read papers",
			"Check [papers] dir in openpages.toml")
	}

	docs := res.Corpus.ListAll()

	if jsonOut {
		data, _ := json.MarshalIndent(docs, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		fmt.Println("No papers found.")
		return nil
	}

	fmt.Println()
	for i, d := range docs {
		color := cli.StatusColor(d.Status)
		fmt.Printf("%d. %s %s[%s]%s\n", i+1, d.Title, color, d.Status, cli.Reset)
	}
	fmt.Printf("\n  %s paper(s)\n\n", cli.FormatNumber(len(docs)))
	return nil
}

func showCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show [slug]",
		Short: "Show one paper by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0], jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runShow(slug string, jsonOut bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := buildCorpus(cfg, "", true)
	if err != nil {
		return userError("Cannot read papers",
			"Check [papers] dir in openpages.toml")
	}

	doc, ok := res.Corpus.BySlug(slug)
	if !ok {
		return fmt.Errorf("no paper found for slug %q", slug)
	}

	if jsonOut {
		data, _ := json.MarshalIndent(doc, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("\n%s%s%s\n", cli.Bold, doc.Title, cli.Reset)
	fmt.Printf("  Slug:    %s\n", doc.Slug)
	fmt.Printf("  Status:  %s%s%s\n", cli.StatusColor(doc.Status), doc.Status, cli.Reset)
	if len(doc.Tags) > 0 {
		fmt.Printf("  Tags:    %s\n", strings.Join(doc.Tags, ", "))
	}
	if len(doc.Authors) > 0 {
		names := make([]string, 0, len(doc.Authors))
		for _, a := range doc.Authors {
			names = append(names, a.Name)
		}
		fmt.Printf("  Authors: %s\n", strings.Join(names, ", "))
	}
	fmt.Printf("  Updated: %s\n", doc.LastUpdated)
	fmt.Printf("\n  %s\n", doc.Summary)
	if len(doc.TOC) > 0 {
		fmt.Println("\n  Contents:")
		for i, entry := range doc.TOC {
			fmt.Printf("    %d. %s\n", i+1, entry)
		}
	}
	fmt.Println()
	return nil
}

func categoriesCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories derived from paper tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runCategories(jsonOut bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := buildCorpus(cfg, "", true)
	if err != nil {
		return userError("Cannot read papers",
			"Check [papers] dir in openpages.toml")
	}

	cats := res.Corpus.Categories()

	if jsonOut {
		data, _ := json.MarshalIndent(cats, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(cats) == 0 {
		fmt.Println("No categories found.")
		return nil
	}
	for _, c := range cats {
		fmt.Println(c)
	}
	return nil
}
