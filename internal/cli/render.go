package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/mlb-hometowns/internal/config"
	"github.com/pfrederiksen/mlb-hometowns/internal/render"
	"github.com/pfrederiksen/mlb-hometowns/internal/storage"
	"github.com/pfrederiksen/mlb-hometowns/internal/team"
)

func newRenderCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "render <result.json>",
		Short: "Redraw the HTML map and KML file from a saved team result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := storage.LoadResult(args[0])
			if err != nil {
				return err
			}

			t, ok := team.ByURLCode(res.TeamID)
			if !ok {
				return fmt.Errorf("result %s names unknown team %q", args[0], res.TeamID)
			}

			cfg := config.Load()
			if cmd.Flags().Changed("output-dir") {
				cfg.OutputDir = outputDir
			}

			store, err := storage.New(cfg.OutputDir, time.Now())
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}

			artifacts, err := render.New(store, cfg.Map.GoogleMapsAPIKey).Render(cmd.Context(), t, res)
			if err != nil {
				return err
			}
			if artifacts.HTML == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s was skipped in that run; nothing to draw.\n", t.FullName)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), artifacts.HTML)
			fmt.Fprintln(cmd.OutOrStdout(), artifacts.KML)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the redrawn files (default $OUTPUT_DIR or ./output)")

	return cmd
}
