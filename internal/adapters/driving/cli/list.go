package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

var (
	listLanguage  string
	listSearch    string
	listSort      string
	listPage      int
	listFile      string
	listJSON      bool
	listLanguages bool
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	nameStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	starStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse the collected snapshot",
	Long: `Lists repositories from the last snapshot. Results can be filtered by
primary language and by text contained in the name or description, sorted
by stars or last update, and are shown 12 per page.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listLanguage, "language", "l", "", "only show this primary language")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter by text in name or description")
	listCmd.Flags().StringVar(&listSort, "sort", domain.CatalogSortStars, "sort by stars or updated")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	listCmd.Flags().StringVarP(&listFile, "file", "f", "", "snapshot path (default: configured output path)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")
	listCmd.Flags().BoolVar(&listLanguages, "languages", false, "list the languages in the snapshot")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.Catalog == nil {
		return fmt.Errorf("catalog not configured")
	}

	path := listFile
	if path == "" {
		cfg, err := collectorConfig(svc, false)
		if err != nil {
			return err
		}
		path = cfg.OutputPath
	}
	catalog := svc.Catalog(path)
	ctx := context.Background()

	if listLanguages {
		languages, err := catalog.Languages(ctx)
		if err != nil {
			return fmt.Errorf("list languages: %w", err)
		}
		for _, lang := range languages {
			cmd.Println(lang)
		}
		return nil
	}

	page, err := catalog.List(ctx, domain.CatalogQuery{
		Language: listLanguage,
		Search:   listSearch,
		Sort:     listSort,
		Page:     listPage,
	})
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no snapshot at %s, run 'markerhub collect' first: %w", path, err)
	}
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if listJSON {
		return outputListJSON(cmd, page)
	}
	outputListTable(cmd, page)
	return nil
}

type listItemJSON struct {
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	Description    *string `json:"description"`
	Stars          int     `json:"stars"`
	Language       *string `json:"language"`
	UpdatedAt      string  `json:"updated_at"`
	CursorrulesURL string  `json:"cursorrules_url"`
}

type listPageJSON struct {
	LastUpdated  string         `json:"last_updated"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalMatches int            `json:"total_matches"`
	Repositories []listItemJSON `json:"repositories"`
}

func outputListJSON(cmd *cobra.Command, page *domain.CatalogPage) error {
	out := listPageJSON{
		LastUpdated:  page.GeneratedAt.UTC().Format(time.RFC3339),
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalMatches: page.TotalMatches,
		Repositories: make([]listItemJSON, len(page.Repositories)),
	}
	for i, rec := range page.Repositories {
		out.Repositories[i] = listItemJSON{
			Name:           rec.Identity,
			URL:            rec.URL,
			Description:    rec.Description,
			Stars:          rec.Stars,
			Language:       rec.Language,
			UpdatedAt:      rec.UpdatedAt.UTC().Format(time.RFC3339),
			CursorrulesURL: rec.MarkerFileURL,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputListTable(cmd *cobra.Command, page *domain.CatalogPage) {
	if page.TotalMatches == 0 {
		cmd.Println("No repositories found.")
		return
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("%d repositories", page.TotalMatches)) + " " +
		mutedStyle.Render(fmt.Sprintf("(snapshot %s)", page.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))))
	cmd.Println()

	if len(page.Repositories) == 0 {
		cmd.Printf("Page %d is past the end (%d pages).\n", page.Page, page.TotalPages)
		return
	}

	for _, rec := range page.Repositories {
		lang := "-"
		if rec.Language != nil {
			lang = *rec.Language
		}
		cmd.Printf("  %s %s %s\n",
			nameStyle.Render(rec.Identity),
			starStyle.Render(fmt.Sprintf("★ %d", rec.Stars)),
			mutedStyle.Render(lang))
		if rec.Description != nil {
			cmd.Printf("      %s\n", truncate(*rec.Description, 100))
		}
		cmd.Printf("      %s\n", mutedStyle.Render(rec.MarkerFileURL))
	}

	cmd.Println()
	cmd.Println(mutedStyle.Render(fmt.Sprintf("Page %d of %d", page.Page, page.TotalPages)))
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
