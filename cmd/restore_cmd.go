package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kebairia/dabackup/internal/logger"
	"github.com/kebairia/dabackup/internal/operations"
)

var flagFolder string

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Move the contents of a backup folder back into place",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagFolder == "" {
			return fmt.Errorf("backup folder name is required (--folder)")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := logger.Global()
		operator := operations.Setup(cmd.Context(), cfg, newReporter(), log)
		return operator.Restore(cmd.Context(), flagFolder)
	},
}

func init() {
	restoreCmd.Flags().StringVarP(&flagOrg, "org", "o", "", "organization (required)")
	restoreCmd.Flags().StringVarP(&flagRepo, "repo", "r", "", "repository (required)")
	restoreCmd.Flags().StringVarP(&flagPath, "path", "p", "", "path inside the repository (optional)")
	restoreCmd.Flags().StringVarP(&flagToken, "token", "t", "", "access token (overrides other token sources)")
	restoreCmd.Flags().StringVarP(&flagFolder, "folder", "f", "", "backup folder name to restore from")
}
