package cli

import (
	"bulletin/internal/auth"
	"bulletin/internal/model"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage super_admin accounts",
	}
	cmd.AddCommand(newAdminCreateCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var (
		email    string
		password string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a super_admin user",
		Example: `  bulletin admin create --email admin@example.com --password secret123
  bulletin admin create --email admin@example.com  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminCreate(cmd.Context(), email, password, name)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Admin display name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runAdminCreate(ctx context.Context, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %q", email)
	}

	if password == "" {
		var err error
		if password, err = promptPassword(); err != nil {
			return err
		}
	}
	if err := auth.ValidateNewPassword(password); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := model.InitRepository(ctx, &cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	user, err := model.CreateSuperAdmin(ctx, repo, email, name, password, false)
	if err != nil {
		return fmt.Errorf("create super_admin: %w", err)
	}
	fmt.Printf("Created super_admin %q (id %d)\n", user.Email, user.ID)
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Print("Confirm password: ")
	confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	fmt.Println()

	if string(pwBytes) != string(confirmBytes) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pwBytes), nil
}
