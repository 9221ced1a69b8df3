package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mmcdole/rijks/internal/domain"
	"github.com/mmcdole/rijks/internal/gallery"
	"github.com/mmcdole/rijks/internal/search"
	"github.com/mmcdole/rijks/internal/tui/styles"
)

func newSearchCmd(a *app) *cobra.Command {
	var pages int
	var format string
	var title string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the collection and print the results",
		Long: `Search the collection and print the results.

Without a query the whole collection is listed. Each page holds ten
artworks; --pages fetches further pages the way scrolling does in the
browser.`,
		Example: `  # First ten artworks matching "vermeer"
  rijks search vermeer

  # Three pages as YAML
  rijks search "night watch" --pages 3 --format yaml

  # Keep only fetched artworks whose title fuzzy-matches "milk"
  rijks search vermeer --pages 5 --title milk`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}
			return a.runSearch(cmd.Context(), cmd.OutOrStdout(), searchOptions{
				query:  strings.Join(args, " "),
				pages:  pages,
				format: format,
				title:  title,
			})
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text, json or yaml)")
	cmd.Flags().StringVar(&title, "title", "", "narrow fetched results by fuzzy title match")

	return cmd
}

type searchOptions struct {
	query  string
	pages  int
	format string
	title  string // local fuzzy refinement, applied after fetching
}

func (a *app) runSearch(ctx context.Context, w io.Writer, opts searchOptions) error {
	query := opts.query
	favs, closeStore, err := a.openFavorites()
	if err != nil {
		return err
	}
	defer closeStore()

	session := gallery.NewSession(a.newClient(), a.logger)
	if err := session.Search(ctx, query); err != nil {
		return userError{err}
	}
	for i := 1; i < opts.pages && session.Snapshot().HasMore; i++ {
		if err := session.LoadMore(ctx, query); err != nil {
			return userError{err}
		}
	}

	snap := session.Snapshot()
	items := snap.Items
	if opts.title != "" {
		results := search.NewTitleIndex(items).Filter(opts.title)
		items = make([]domain.Artwork, len(results))
		for i, r := range results {
			items[i] = r.Artwork
		}
	}

	if opts.format != formatText {
		records := make([]artworkRecord, len(items))
		for i, item := range items {
			records[i] = toRecord(item, favs.IsFavorite(item.ID))
		}
		return writeStructured(w, opts.format, records)
	}

	styled := isTerminal(w)
	for _, item := range items {
		fmt.Fprintln(w, formatArtworkLine(item, favs.IsFavorite(item.ID), styled))
	}
	summary := fmt.Sprintf("%d of %d artworks", len(items), snap.TotalCount)
	if styled {
		summary = styles.DimStyle.Render(summary)
	}
	fmt.Fprintln(w, summary)
	return nil
}

// formatArtworkLine renders one artwork; plain output is tab separated
func formatArtworkLine(a domain.Artwork, favorite, styled bool) string {
	if !styled {
		mark := ""
		if favorite {
			mark = styles.FavoriteChar
		}
		return strings.Join([]string{a.ID, a.Title, a.DisplayMaker(), mark}, "\t")
	}

	mark := " "
	if favorite {
		mark = styles.FavoriteMark
	}
	id := styles.AccentStyle.Width(16).Render(a.ID)
	title := lipgloss.NewStyle().Foreground(styles.White).Render(a.Title)
	return mark + " " + id + title + styles.DimStyle.Render(" · "+a.DisplayMaker())
}

// userError shows the fixed user message for a fetch failure while keeping
// the cause for errors.Is
type userError struct{ err error }

func (e userError) Error() string { return domain.UserMessage(e.err) }

func (e userError) Unwrap() error { return e.err }
