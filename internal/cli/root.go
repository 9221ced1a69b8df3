// Package cli wires configuration, logging and the core services into the
// rijks command tree. Running the root command starts the terminal UI.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/rijks/internal/collection"
	"github.com/mmcdole/rijks/internal/config"
	"github.com/mmcdole/rijks/internal/favorites"
	"github.com/mmcdole/rijks/internal/gallery"
	"github.com/mmcdole/rijks/internal/log"
	"github.com/mmcdole/rijks/internal/store"
	"github.com/mmcdole/rijks/internal/tui"
	"github.com/mmcdole/rijks/internal/viewer"
)

// app holds the state shared by all commands
type app struct {
	configFile string
	memory     bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the command tree
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "rijks",
		Short: "Browse the Rijksmuseum collection from the terminal",
		Long: `Rijks is a terminal browser for the Rijksmuseum collection.

Run without arguments to open the interactive browser: type to search,
scroll to load more, and mark artworks as favorites. The search and
favorites subcommands expose the same features for scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return a.setup(version)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ~/.config/rijks/config.yaml)")
	cmd.PersistentFlags().BoolVar(&a.memory, "memory", false, "keep favorites in memory only")

	cmd.AddCommand(newSearchCmd(a))
	cmd.AddCommand(newFavoritesCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// setup loads configuration and installs the default logger
func (a *app) setup(version string) error {
	cfg, err := config.LoadConfig(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.memory {
		cfg.Storage.Path = ""
	}
	a.cfg = cfg

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	a.logger = logger

	logger.Info("starting rijks", "version", version, "base_url", cfg.API.BaseURL)
	return nil
}

func (a *app) newClient() *collection.Client {
	return collection.NewClient(a.cfg.API.BaseURL, a.cfg.API.Key, a.logger)
}

// openFavorites opens the configured store. The returned close func must be
// called when done.
func (a *app) openFavorites() (*favorites.Store, func() error, error) {
	kv, err := store.Open(a.cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open favorites store: %w", err)
	}
	return favorites.NewStore(kv, a.logger), kv.Close, nil
}

func (a *app) runTUI() error {
	favs, closeStore, err := a.openFavorites()
	if err != nil {
		return err
	}
	defer closeStore()

	session := gallery.NewSession(a.newClient(), a.logger, gallery.WithAutoSelect(a.cfg.UI.ShowInspector))
	model := tui.NewModel(session, favs, tui.Options{
		Debounce:      a.cfg.Search.Debounce,
		ShowInspector: a.cfg.UI.ShowInspector,
		Viewer:        viewer.NewLauncher(a.cfg.Viewer.Command, a.cfg.Viewer.Args, a.logger),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

// isTerminal returns true if w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
