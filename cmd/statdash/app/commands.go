// Package app holds the statdash cobra commands.
package app

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/utils"
)

// Set through -ldflags "-X github.com/ougirez/statdash/cmd/statdash/app.version=...".
var (
	version = "dev"
	commit  = "none"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "statdash",
		Short:             "Regional statistics dashboard backed by the BPS WebAPI",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().String(flagConfig, "", "Path to configuration file (YAML)")

	root.AddCommand(
		newServeCmd(),
		newSyncCmd(),
		newMigrateCmd(),
		newTokenCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statdash %s (commit %s, %s %s/%s)\n",
				version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin token signed with http.admin_secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.HTTP.AdminSecret == "" {
				return fmt.Errorf("http.admin_secret: %w", constants.ErrConfigurationMissing)
			}

			name, _ := cmd.Flags().GetString("name")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{Admin: name}, cfg.HTTP.AdminSecret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("name", "admin", "Admin name stored in the token")
	cmd.Flags().Duration("ttl", 30*24*time.Hour, "Token lifetime, 0 for no expiry")
	return cmd
}
