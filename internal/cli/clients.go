package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/andy/rosterdash/internal/domain"
	"github.com/andy/rosterdash/internal/service"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, show, add, edit, and delete clients in the roster.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients, one page at a time",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		loadRoster(cmd)

		query, _ := cmd.Flags().GetString("query")
		page, _ := cmd.Flags().GetInt("page")
		all, _ := cmd.Flags().GetBool("all")

		store := appInstance.Store
		var view service.Page
		if all {
			view = service.DeriveView(store.Clients(), query, 1, max(store.Len(), 1))
		} else {
			view = store.View(query, page)
		}

		if view.TotalMatches == 0 {
			fmt.Fprintln(out, "No clients found")
			return nil
		}
		if len(view.Clients) == 0 {
			fmt.Fprintf(out, "Page %d is empty (%d page(s) available)\n", view.Page, view.TotalPages)
			return nil
		}

		// Print table header
		fmt.Fprintf(out, "%-28s %-22s %-14s %4s  %-7s %14s  %s\n", "ID", "Name", "Company", "Age", "Gender", "Subscription", "Registered")
		fmt.Fprintln(out, "----------------------------------------------------------------------------------------------------------------")

		// Print clients
		for _, c := range view.Clients {
			fmt.Fprintf(out, "%-28s %-22s %-14s %4d  %-7s %14s  %s\n",
				truncate(c.ID, 28),
				truncate(c.Name, 22),
				truncate(c.Company, 14),
				c.Age,
				c.Gender,
				c.FormatCost(),
				c.Registered.Display(),
			)
		}

		fmt.Fprintf(out, "\nPage %d of %d  (%d matching client(s))\n", view.Page, view.TotalPages, view.TotalMatches)
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadRoster(cmd)

		client, ok := appInstance.Store.Get(args[0])
		if !ok {
			return fmt.Errorf("client %s: %w", args[0], domain.ErrNotFound)
		}
		printClient(cmd.OutOrStdout(), client)
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadRoster(cmd)

		name, _ := cmd.Flags().GetString("name")
		company, _ := cmd.Flags().GetString("company")
		age, _ := cmd.Flags().GetInt("age")
		gender, _ := cmd.Flags().GetString("gender")
		currency, _ := cmd.Flags().GetString("currency")
		cost, _ := cmd.Flags().GetString("cost")
		picture, _ := cmd.Flags().GetString("picture")

		client, err := appInstance.Store.Add(cmd.Context(), domain.NewClient{
			Name:             name,
			Company:          company,
			Age:              age,
			Gender:           domain.Gender(gender),
			Picture:          picture,
			Currency:         domain.Currency(currency),
			SubscriptionCost: cost,
		})
		if err != nil {
			return fmt.Errorf("invalid client: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Client created: %s (ID: %s)\n", client.Name, client.ID)
		fmt.Fprintf(out, "  Subscription: %s\n", client.FormatCost())
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadRoster(cmd)

		// Only flags the user actually set become part of the patch
		var patch domain.ClientPatch
		flags := cmd.Flags()
		if flags.Changed("name") {
			v, _ := flags.GetString("name")
			patch.Name = &v
		}
		if flags.Changed("company") {
			v, _ := flags.GetString("company")
			patch.Company = &v
		}
		if flags.Changed("age") {
			v, _ := flags.GetInt("age")
			patch.Age = &v
		}
		if flags.Changed("gender") {
			v, _ := flags.GetString("gender")
			patch.Gender = domain.Ptr(domain.Gender(v))
		}
		if flags.Changed("currency") {
			v, _ := flags.GetString("currency")
			patch.Currency = domain.Ptr(domain.Currency(v))
		}
		if flags.Changed("cost") {
			v, _ := flags.GetString("cost")
			patch.SubscriptionCost = &v
		}
		if flags.Changed("picture") {
			v, _ := flags.GetString("picture")
			patch.Picture = &v
		}
		if patch.IsEmpty() {
			return errors.New("nothing to change: pass at least one field flag")
		}

		client, ok, err := appInstance.Store.Update(cmd.Context(), args[0], patch)
		if err != nil {
			return fmt.Errorf("invalid client: %w", err)
		}
		if !ok {
			return fmt.Errorf("client %s: %w", args[0], domain.ErrNotFound)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client updated: %s\n", client.Name)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadRoster(cmd)
		store := appInstance.Store
		out := cmd.OutOrStdout()

		if !store.RequestDelete(args[0]) {
			return fmt.Errorf("client %s: %w", args[0], domain.ErrNotFound)
		}
		pending, _ := store.PendingDelete()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd.InOrStdin(), out, fmt.Sprintf("Delete %s (%s)?", pending.Name, pending.Company)) {
			store.CancelDelete()
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}

		client, _, err := store.ConfirmDelete(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Client deleted: %s\n", client.Name)
		return nil
	},
}

// loadRoster initializes the store, noting when the remote was unreachable
func loadRoster(cmd *cobra.Command) {
	if appInstance.Store.Initialized() {
		return
	}
	if appInstance.Store.Initialize(cmd.Context()) == service.SourceSeed {
		fmt.Fprintf(cmd.ErrOrStderr(), "! remote roster at %s unavailable, using demonstration clients\n", appInstance.Config.Remote.BaseURL)
	}
}

func printClient(out io.Writer, c domain.Client) {
	fmt.Fprintf(out, "%s\n", c.Name)
	fmt.Fprintf(out, "  ID:           %s\n", c.ID)
	fmt.Fprintf(out, "  Company:      %s\n", c.Company)
	fmt.Fprintf(out, "  Age:          %d\n", c.Age)
	fmt.Fprintf(out, "  Gender:       %s\n", c.Gender)
	fmt.Fprintf(out, "  Subscription: %s (%s)\n", c.FormatCost(), c.Currency)
	fmt.Fprintf(out, "  Registered:   %s\n", c.Registered.Display())
	fmt.Fprintf(out, "  Picture:      %s\n", c.Picture)
}

func addClientFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Client name")
	cmd.Flags().String("company", "", "Company")
	cmd.Flags().Int("age", 0, "Age (1-120)")
	cmd.Flags().String("gender", "", "Gender: male, female or other")
	cmd.Flags().String("currency", string(domain.CurrencyUSD), "Currency: USD, INR, Yen, CAD or SGD")
	cmd.Flags().String("cost", "", "Subscription cost, e.g. 1200.00")
	cmd.Flags().String("picture", "", "Picture URL")
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)

	// List flags
	clientsListCmd.Flags().StringP("query", "q", "", "Filter by name or company (case-insensitive)")
	clientsListCmd.Flags().IntP("page", "p", 1, "Page number")
	clientsListCmd.Flags().Bool("all", false, "Show every matching client on one page")

	// Add flags
	addClientFieldFlags(clientsAddCmd)
	clientsAddCmd.MarkFlagRequired("name")
	clientsAddCmd.MarkFlagRequired("company")
	clientsAddCmd.MarkFlagRequired("age")
	clientsAddCmd.MarkFlagRequired("gender")
	clientsAddCmd.MarkFlagRequired("cost")

	// Edit flags
	addClientFieldFlags(clientsEditCmd)

	// Delete flags
	clientsDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
