package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "webstarter",
	Short: "Session-aware web server starter",
	Long: `webstarter serves a JSON and HTML application with server-side sessions
stored in MongoDB, Redis or memory. Running it without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")
	rootCmd.AddCommand(serveCmd, hashPasswordCmd)
}
