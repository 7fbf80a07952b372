package cli

import (
	"bulletin/internal/model"
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo announcements, events and posters",
		Example: `  bulletin seed
  bulletin seed --reset  # clear existing content first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), reset)
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete all existing content in the same transaction before seeding")

	return cmd
}

func runSeed(ctx context.Context, reset bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, err := model.InitRepository(ctx, &cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	bundle := model.DemoContent()
	if err := repo.SeedContent(ctx, bundle, reset); err != nil {
		return fmt.Errorf("seed content: %w", err)
	}
	fmt.Printf("Seeded %d announcements, %d events, %d posters\n",
		len(bundle.Announcements), len(bundle.Events), len(bundle.Posters))
	return nil
}
