package cli

import (
	"errors"
	"fmt"

	"github.com/andy/rosterdash/internal/session"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as an operator",
	Long: `Log in to the dashboard. Any non-empty operator name and password are
accepted; the operator name is remembered in the system keyring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := cmd.InOrStdin(), cmd.OutOrStdout()

		operator, _ := cmd.Flags().GetString("operator")
		if operator == "" {
			var err error
			operator, err = readLine(in, out, "Operator: ")
			if err != nil {
				return err
			}
		}

		password, err := readPassword(in, out, "Password: ")
		if err != nil {
			return err
		}

		if err := appInstance.Session.Login(operator, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Fprintf(out, "✓ Logged in as %s\n", operator)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the logged-in operator",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		operator, err := appInstance.Session.Operator()
		if errors.Is(err, session.ErrNoSession) {
			fmt.Fprintln(out, "Not logged in.")
			return nil
		}
		if err := appInstance.Session.Logout(); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Logged out %s\n", operator)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("operator", "u", "", "Operator name (prompted when omitted)")
}
