package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmcdole/rijks/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(map[string]any{
				"api": map[string]any{
					"base_url": a.cfg.API.BaseURL,
					"key":      a.cfg.API.Key,
				},
				"search":  map[string]any{"debounce": a.cfg.Search.Debounce.String()},
				"storage": map[string]any{"path": a.cfg.Storage.Path},
				"ui":      map[string]any{"show_inspector": a.cfg.UI.ShowInspector},
				"viewer": map[string]any{
					"command": a.cfg.Viewer.Command,
					"args":    a.cfg.Viewer.Args,
				},
				"logging": map[string]any{
					"file":  a.cfg.Logging.File,
					"level": a.cfg.Logging.Level,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	var dir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.SaveConfig(a.cfg, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&dir, "dir", "", "directory to write config.yaml to (default ~/.config/rijks)")
	cmd.AddCommand(initCmd)

	return cmd
}
