package cli

import (
	"bulletin/internal/model"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), status)
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "List applied migrations after migrating")

	return cmd
}

func runMigrate(ctx context.Context, status bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := model.OpenDatabase(&cfg)
	if err != nil {
		return err
	}
	repo := model.NewRepository(db)
	defer repo.Close()

	applied, err := model.Migrate(ctx, db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Println("Schema is up to date.")
	}
	for _, name := range applied {
		fmt.Printf("Applied %s\n", name)
	}

	if created, err := model.EnsureBootstrapAdmin(ctx, repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to create bootstrap super_admin")
	} else if created {
		fmt.Printf("Created bootstrap super_admin %s\n", cfg.BootstrapAdminEmail)
	}

	if status {
		rows, err := model.AppliedMigrations(ctx, db)
		if err != nil {
			return err
		}
		fmt.Printf("%-40s %s\n", "MIGRATION", "APPLIED AT")
		for _, row := range rows {
			fmt.Printf("%-40s %s\n", row.Name, row.AppliedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}
