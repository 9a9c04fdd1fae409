package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docugen/pkg/models"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage the client address book",
	Long: `Manage saved clients.

Clients feed the generation context: a saved client can be pinned with
"docugen generate --client" and its details take precedence over anything
the prompt implies. Deleting a client never touches existing invoices;
invoices only carry the client's name.`,
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		list, err := a.clients.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No clients saved yet.")
			return nil
		}
		for _, c := range list {
			fmt.Printf("%-36s  %-24s  %s\n", c.ID, truncate(c.Name, 24), c.Email)
		}
		return nil
	},
}

var clientAdd models.Client

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a client",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		saved, err := a.clients.Save(cmd.Context(), clientAdd)
		if err != nil {
			return err
		}
		fmt.Printf("Saved client %s (%s).\n", saved.Name, saved.ID)
		return nil
	},
}

var clientRmYes bool

var clientRmCmd = &cobra.Command{
	Use:   "rm <client-id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		c, ok, err := a.clients.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No such client; nothing deleted.")
			return nil
		}
		if !confirm(fmt.Sprintf("Delete client %s? Past invoices keep their client name.", c.Name), clientRmYes) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := a.clients.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s.\n", c.Name)
		return nil
	},
}

func init() {
	f := clientAddCmd.Flags()
	f.StringVar(&clientAdd.ID, "id", "", "Existing client id to update (omit to create)")
	f.StringVar(&clientAdd.Name, "name", "", "Client name (required)")
	f.StringVar(&clientAdd.Email, "email", "", "Billing email")
	f.StringVar(&clientAdd.Address, "address", "", "Billing address")
	f.StringVar(&clientAdd.Phone, "phone", "", "Phone number")
	f.StringVar(&clientAdd.Notes, "notes", "", "Private notes, never included in documents")

	clientRmCmd.Flags().BoolVar(&clientRmYes, "yes", false, "Skip the confirmation prompt")

	clientCmd.AddCommand(clientListCmd, clientAddCmd, clientRmCmd)
	rootCmd.AddCommand(clientCmd)
}
