package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics for the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadRoster(cmd)
		s := appInstance.Store.Stats()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total clients:  %d\n", s.TotalClients)
		fmt.Fprintf(out, "Companies:      %d\n", s.Companies)
		fmt.Fprintf(out, "Total revenue:  %.2f\n", s.TotalRevenue)
		fmt.Fprintf(out, "Average age:    %d\n", s.AverageAge)
		return nil
	},
}
