package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/rijks/internal/search"
	"github.com/mmcdole/rijks/internal/tui/styles"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite artworks",
	}

	cmd.AddCommand(newFavoritesListCmd(a))
	cmd.AddCommand(newFavoritesToggleCmd(a))
	cmd.AddCommand(newFavoritesClearCmd(a))

	return cmd
}

func newFavoritesListCmd(a *app) *cobra.Command {
	var match string
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorite object numbers",
		Example: `  rijks favorites list
  rijks favorites list --match sk-a --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}

			favs, closeStore, err := a.openFavorites()
			if err != nil {
				return err
			}
			defer closeStore()

			ids := search.MatchIDs(match, favs.List())
			w := cmd.OutOrStdout()

			if format != formatText {
				return writeStructured(w, format, struct {
					Favorites []string `json:"favorites" yaml:"favorites"`
				}{Favorites: ids})
			}

			styled := isTerminal(w)
			for _, id := range ids {
				if styled {
					fmt.Fprintln(w, styles.FavoriteMark+" "+id)
				} else {
					fmt.Fprintln(w, id)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "fuzzy filter on object numbers")
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text, json or yaml)")

	return cmd
}

func newFavoritesToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <object-number>...",
		Short: "Add or remove artworks from favorites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			favs, closeStore, err := a.openFavorites()
			if err != nil {
				return err
			}
			defer closeStore()

			w := cmd.OutOrStdout()
			for _, id := range args {
				isFav, err := favs.Toggle(id)
				if err != nil {
					return fmt.Errorf("failed to toggle %s: %w", id, err)
				}
				if isFav {
					fmt.Fprintf(w, "%s added to favorites\n", id)
				} else {
					fmt.Fprintf(w, "%s removed from favorites\n", id)
				}
			}
			return nil
		},
	}
}

func newFavoritesClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			favs, closeStore, err := a.openFavorites()
			if err != nil {
				return err
			}
			defer closeStore()

			n := favs.Count()
			if err := favs.Clear(); err != nil {
				return fmt.Errorf("failed to clear favorites: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d favorites\n", n)
			return nil
		},
	}
}
