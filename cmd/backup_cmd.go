package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kebairia/dabackup/internal/config"
	"github.com/kebairia/dabackup/internal/logger"
	"github.com/kebairia/dabackup/internal/operations"
	"github.com/kebairia/dabackup/internal/report"
)

var (
	flagOrg   string
	flagRepo  string
	flagPath  string
	flagToken string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the content at org/repo[/path] into a timestamped folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := logger.Global()
		operator := operations.Setup(cmd.Context(), cfg, newReporter(), log)
		return operator.Backup(cmd.Context())
	},
}

// loadConfig reads the optional config file and layers the command-line
// flags on top. Flags win over file and environment values.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if err := cfg.Load(ConfigFile); err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if flagOrg != "" {
		cfg.Backup.Org = flagOrg
	}
	if flagRepo != "" {
		cfg.Backup.Repo = flagRepo
	}
	if flagPath != "" {
		cfg.Backup.Path = flagPath
	}
	if flagToken != "" {
		cfg.Credentials.Token = flagToken
	}
	return cfg, nil
}

// newReporter picks the CI reporter when running under GitHub Actions,
// else plain stdout.
func newReporter() report.Reporter {
	if os.Getenv("GITHUB_OUTPUT") != "" {
		return report.NewGitHubReporter()
	}
	return report.NewStdoutReporter()
}

func init() {
	backupCmd.Flags().StringVarP(&flagOrg, "org", "o", "", "organization (required)")
	backupCmd.Flags().StringVarP(&flagRepo, "repo", "r", "", "repository (required)")
	backupCmd.Flags().StringVarP(&flagPath, "path", "p", "", "path inside the repository (optional)")
	backupCmd.Flags().StringVarP(&flagToken, "token", "t", "", "access token (overrides other token sources)")
}
