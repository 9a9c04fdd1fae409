package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docugen/internal/generate"
	"docugen/internal/logger"
	"docugen/pkg/models"
)

var (
	generateClientID  string
	generateInvoiceID string
	generateLayout    string
)

var generateCmd = &cobra.Command{
	Use:   "generate \"<prompt>\"",
	Short: "Draft a new invoice, or revise an existing one, from a prompt",
	Long: `Draft an invoice from a natural-language prompt.

Without --invoice a brand-new document is created and assigned the next
invoice number. With --invoice the prompt is applied as an edit to that
document's current content, appending a new version to its history.
--client pins a saved client as the recipient; the pinned client always
wins over whatever the model infers from the prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("generate-cmd")
		prompt := args[0]

		a, err := newApp()
		if err != nil {
			return err
		}
		orch, err := a.orchestrator()
		if err != nil {
			return err
		}

		layout := models.LayoutType(generateLayout)
		if generateLayout != "" && !layout.Valid() {
			return fmt.Errorf("unknown layout %q (valid: %v)", generateLayout, models.Layouts())
		}

		var inv *models.Invoice
		if generateInvoiceID != "" {
			inv, err = orch.GenerateRevision(cmd.Context(), generateInvoiceID, prompt, layout)
		} else {
			if layout == "" {
				layout = models.DefaultLayout
			}
			inv, err = orch.GenerateNew(cmd.Context(), prompt, generateClientID, layout)
		}
		if err != nil {
			if errors.Is(err, generate.ErrGenerationFailed) {
				// The prompt is echoed back so the user can retry it as-is.
				fmt.Printf("Generation failed. Your prompt was kept:\n  %s\n", prompt)
			}
			return err
		}

		log.Info().Str("invoice_id", inv.ID).Msg("Generation complete")

		fmt.Printf("%s  %s  (%s, %d version(s))\n\n", inv.InvoiceNumber, inv.ClientName, inv.Summary, len(inv.Versions))
		fmt.Println(inv.MarkdownContent)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateClientID, "client", "", "ID of a saved client to bill")
	generateCmd.Flags().StringVar(&generateInvoiceID, "invoice", "", "ID of an existing invoice to revise in place")
	generateCmd.Flags().StringVar(&generateLayout, "layout", "", "Layout: clean, modern, classic or bold")
	rootCmd.AddCommand(generateCmd)
}
