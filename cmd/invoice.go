package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docugen/internal/history"
	"docugen/internal/orchestrate"
	"docugen/internal/render"
	"docugen/pkg/models"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Inspect and manage the invoice history",
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		invoices, err := a.invoices.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(invoices) == 0 {
			fmt.Println("No invoices yet. Try: docugen generate \"Invoice Acme for ...\"")
			return nil
		}
		for _, inv := range invoices {
			created := time.UnixMilli(inv.CreatedAt).Format("2006-01-02")
			fmt.Printf("%-36s  %-9s  %-10s  %-24s  %s\n",
				inv.ID, inv.InvoiceNumber, created, truncate(inv.ClientName, 24), inv.Summary)
		}
		return nil
	},
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show <invoice-id>",
	Short: "Print an invoice's current content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		inv, ok, err := a.invoices.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return orchestrate.ErrInvoiceNotFound
		}
		fmt.Println(inv.MarkdownContent)
		return nil
	},
}

var invoiceVersionsCmd = &cobra.Command{
	Use:   "versions <invoice-id>",
	Short: "List an invoice's version history, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		inv, ok, err := a.invoices.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return orchestrate.ErrInvoiceNotFound
		}
		for i, v := range inv.Versions {
			created := time.UnixMilli(v.CreatedAt).Format("2006-01-02 15:04")
			fmt.Printf("v%-3d %-36s  %s  %s\n", history.DisplayNumber(inv, i), v.ID, created, v.Summary)
		}
		return nil
	},
}

var restoreSave bool

var invoiceRestoreCmd = &cobra.Command{
	Use:   "restore <invoice-id> <version-id>",
	Short: "Preview an older version; --save commits it as a new version",
	Long: `Load an older version's content into the invoice's working view.

Without --save this is a preview only: the stored history is untouched
and nothing persists. With --save the restored content is committed as a
new version on top of the existing chain; history is never rewritten.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		orch := orchestrate.New(a.seq, a.invoices, a.clients, a.profiles, nil)

		if restoreSave {
			inv, err := orch.SaveRestored(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Restored and saved as %s (%d versions).\n", inv.Versions[0].Summary, len(inv.Versions))
			return nil
		}

		inv, err := orch.RestorePreview(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(inv.MarkdownContent)
		fmt.Fprintln(os.Stderr, "\n(preview only; re-run with --save to commit this version)")
		return nil
	},
}

var editLayout string

var invoiceEditCmd = &cobra.Command{
	Use:   "save-edit <invoice-id> <file>",
	Short: "Save a hand-edited markdown file as a new version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editLayout != "" && !models.LayoutType(editLayout).Valid() {
			return fmt.Errorf("unknown layout %q (use one of %v)", editLayout, models.Layouts())
		}
		body, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		orch := orchestrate.New(a.seq, a.invoices, a.clients, a.profiles, nil)

		inv, err := orch.SaveManualEdit(cmd.Context(), args[0], string(body), models.LayoutType(editLayout))
		if err != nil {
			return err
		}
		fmt.Printf("Saved manual edit as v%d.\n", len(inv.Versions))
		return nil
	},
}

var deleteYes bool

var invoiceDeleteCmd = &cobra.Command{
	Use:   "delete <invoice-id>",
	Short: "Delete an invoice and its entire version history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		inv, ok, err := a.invoices.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No such invoice; nothing deleted.")
			return nil
		}
		if !confirm(fmt.Sprintf("Delete %s (%s) and all %d versions? This cannot be undone.",
			inv.InvoiceNumber, inv.ClientName, len(inv.Versions)), deleteYes) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := a.invoices.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s.\n", inv.InvoiceNumber)
		return nil
	},
}

var exportOut string

var invoiceExportCmd = &cobra.Command{
	Use:   "export <invoice-id>",
	Short: "Write the invoice's current content to a markdown file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		inv, ok, err := a.invoices.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return orchestrate.ErrInvoiceNotFound
		}
		out := exportOut
		if out == "" {
			out = inv.InvoiceNumber + ".md"
		}
		if err := os.WriteFile(out, []byte(inv.MarkdownContent), 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s.\n", out)
		return nil
	},
}

var (
	renderOut         string
	renderPaper       string
	renderOrientation string
)

var invoiceRenderCmd = &cobra.Command{
	Use:   "render <invoice-id>",
	Short: "Render the invoice to a printable HTML page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		inv, ok, err := a.invoices.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return orchestrate.ErrInvoiceNotFound
		}
		prof, err := a.profiles.Get(cmd.Context())
		if err != nil {
			return err
		}

		page, err := render.NewHTMLRenderer().RenderHTML(render.Input{
			Markdown:      inv.MarkdownContent,
			Layout:        inv.LayoutID,
			Profile:       prof,
			InvoiceNumber: inv.InvoiceNumber,
			CreatedAt:     inv.CreatedAt,
			DueDate:       inv.DueDate,
			Options: render.Options{
				PaperSize:   renderPaper,
				Orientation: renderOrientation,
			},
		})
		if err != nil {
			return err
		}

		out := renderOut
		if out == "" {
			out = inv.InvoiceNumber + ".html"
		}
		if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s. Open it in a browser and print to PDF.\n", out)
		return nil
	},
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n-3])) + "..."
}

func init() {
	invoiceRestoreCmd.Flags().BoolVar(&restoreSave, "save", false, "Commit the restored version instead of previewing")
	invoiceEditCmd.Flags().StringVar(&editLayout, "layout", "", "Layout to record with the edit (defaults to current)")
	invoiceDeleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Skip the confirmation prompt")
	invoiceExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (defaults to <number>.md)")
	invoiceRenderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output path (defaults to <number>.html)")
	invoiceRenderCmd.Flags().StringVar(&renderPaper, "paper", "a4", "Paper size: a4 or letter")
	invoiceRenderCmd.Flags().StringVar(&renderOrientation, "orientation", "portrait", "portrait or landscape")

	invoiceCmd.AddCommand(invoiceListCmd, invoiceShowCmd, invoiceVersionsCmd,
		invoiceRestoreCmd, invoiceEditCmd, invoiceDeleteCmd, invoiceExportCmd, invoiceRenderCmd)
	rootCmd.AddCommand(invoiceCmd)
}
