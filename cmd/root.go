package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kebairia/dabackup/internal/logger"
)

var (
	// ConfigFile is the path to the optional YAML configuration.
	ConfigFile string
	// Verbose enables debug logging.
	Verbose bool

	// rootCmd is the base command for dabackup.
	rootCmd = &cobra.Command{
		Use:   "dabackup",
		Short: "CI step that backs up da.live content before it gets overwritten",
		Long: `dabackup lists the content at an org/repo location on da.live,
creates a timestamped backup folder, and moves the existing items into it
so a following publish step can safely overwrite the location.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags are parsed by now, so the verbose setting is honored.
			_, err := logger.Init(Verbose)
			return err
		},
	}
)

// Execute runs the root command.
func Execute() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command and returns the process exit code. Logs are
// flushed before the caller exits, including on the failure path.
func execute(args []string) int {
	defer logger.Cleanup()

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		logger.Global().Error("command failed", "error", err.Error())
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().
		StringVarP(&ConfigFile, "config", "c", "", "path to YAML config file (optional)")
	rootCmd.PersistentFlags().
		BoolVarP(&Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
