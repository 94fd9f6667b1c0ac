package cli

import (
	"github.com/andy/rosterdash/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Launch the terminal UI",
	Long:        `Launch the interactive terminal user interface for rosterdash.`,
	Annotations: map[string]string{annotationLogToFile: "true"},
	RunE:        launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(appInstance)
}
