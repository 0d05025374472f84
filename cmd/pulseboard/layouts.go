package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/driftlab/pulseboard/internal/config"
	"github.com/driftlab/pulseboard/internal/layout"
	"github.com/driftlab/pulseboard/internal/sqlite"
	"github.com/spf13/cobra"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Manage saved layouts",
}

var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved layouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLayoutService(func(ctx context.Context, svc *layout.Service) error {
			summaries, err := svc.List(ctx)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("no layouts saved")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMODULES\tCREATED")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Name, s.ModuleCount, s.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		})
	},
}

var layoutsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLayoutService(func(ctx context.Context, svc *layout.Service) error {
			if err := svc.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted layout %s\n", args[0])
			return nil
		})
	},
}

func init() {
	layoutsCmd.AddCommand(layoutsListCmd)
	layoutsCmd.AddCommand(layoutsDeleteCmd)
	rootCmd.AddCommand(layoutsCmd)
}

func withLayoutService(fn func(context.Context, *layout.Service) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := layout.NewService(sqlite.NewLayoutRepository(db), newLogger(cfg.Log.Level))
	return fn(context.Background(), svc)
}
