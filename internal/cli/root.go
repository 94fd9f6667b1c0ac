package cli

import (
	"context"

	"github.com/andy/rosterdash/internal/app"
	"github.com/spf13/cobra"
)

// Command annotations controlling how the app container is built
const (
	annotationNoApp     = "no-app"
	annotationLogToFile = "log-to-file"
)

var (
	appInstance *app.App
	configPath  string
)

var rootCmd = &cobra.Command{
	Use:   "rosterdash",
	Short: "A terminal dashboard for a client roster",
	Long: `Rosterdash keeps a client roster in sync with a remote roster endpoint.

By default, running rosterdash without arguments launches the interactive TUI.
Use subcommands for CLI operations, and 'rosterdash serve' to run a local
endpoint seeded with demonstration clients.`,
	Annotations:       map[string]string{annotationLogToFile: "true"},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	defer func() {
		if appInstance != nil {
			appInstance.Close()
		}
	}()
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

// setupApp builds the container once flags are parsed, so --config applies
func setupApp(cmd *cobra.Command, args []string) error {
	if appInstance != nil || cmd.Annotations[annotationNoApp] == "true" {
		return nil
	}
	a, err := app.New(context.Background(), app.Options{
		ConfigPath: configPath,
		LogToFile:  cmd.Annotations[annotationLogToFile] == "true",
	})
	if err != nil {
		return err
	}
	SetApp(a)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/rosterdash/config.yaml)")

	// Add all subcommands
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tuiCmd)
}
