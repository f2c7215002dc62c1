package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mergington/internal/cli/config"
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Command-line client for the Mergington High activities portal",
	Long: `portal lets students browse and join extracurricular activities at
Mergington High School, and lets administrators review accounts.

Log in once with 'portal login'; the session persists until it expires
or you run 'portal logout'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(config.Load)

	rootCmd.PersistentFlags().String("server", config.DefaultServerURL, "portal API base URL")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(
		LoginCmd,
		RegisterCmd,
		LogoutCmd,
		WhoamiCmd,
		ActivitiesCmd,
		SignupCmd,
		LeaveCmd,
		RosterCmd,
		BrowseCmd,
	)
}
