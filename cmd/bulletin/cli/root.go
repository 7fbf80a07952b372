package cli

import (
	"bulletin/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bulletin",
		Short:         "Content backend for announcements, events and posters",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newAdminCmd())

	return cmd
}

// loadConfig parses the environment and installs the JSON log formatter.
func loadConfig() (config.Config, error) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	cfg, err := config.ParseConfig()
	if err != nil {
		return config.Config{}, err
	}
	logrus.SetLevel(cfg.LogrusLevel())
	return cfg, nil
}
