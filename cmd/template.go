package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docugen/pkg/models"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage reusable document templates",
	Long: `Manage saved templates and instantiate invoices from them.

A template is a document seed: instantiating one copies its content into
a brand-new invoice with a fresh number; the template itself is never
touched by later edits to that invoice.`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		tpls, err := a.templates.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(tpls) == 0 {
			fmt.Println("No templates saved yet.")
			return nil
		}
		for _, tpl := range tpls {
			created := time.UnixMilli(tpl.CreatedAt).Format("2006-01-02")
			fmt.Printf("%-36s  %-24s  %-8s  %s  %s\n",
				tpl.ID, truncate(tpl.Name, 24), tpl.LayoutID, created, tpl.Description)
		}
		return nil
	},
}

var (
	templateSaveID     string
	templateSaveName   string
	templateSaveDesc   string
	templateSaveLayout string
)

var templateSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Save a markdown file as a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if templateSaveLayout != "" && !models.LayoutType(templateSaveLayout).Valid() {
			return fmt.Errorf("unknown layout %q (use one of %v)", templateSaveLayout, models.Layouts())
		}
		body, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		saved, err := a.templates.Save(cmd.Context(), models.Template{
			ID:              templateSaveID,
			Name:            templateSaveName,
			Description:     templateSaveDesc,
			MarkdownContent: string(body),
			LayoutID:        models.LayoutType(templateSaveLayout),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Saved template %q (%s).\n", saved.Name, saved.ID)
		return nil
	},
}

var templateRmYes bool

var templateRmCmd = &cobra.Command{
	Use:   "rm <template-id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		tpl, ok, err := a.templates.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No such template; nothing deleted.")
			return nil
		}
		if !confirm(fmt.Sprintf("Delete template %q? Invoices made from it are unaffected.", tpl.Name), templateRmYes) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := a.templates.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %q.\n", tpl.Name)
		return nil
	},
}

var templateUseCmd = &cobra.Command{
	Use:   "use <template-id-or-name>",
	Short: "Create a new invoice from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		tpls, err := a.templates.List(cmd.Context())
		if err != nil {
			return err
		}
		var tpl *models.Template
		for i := range tpls {
			if tpls[i].ID == args[0] || strings.EqualFold(tpls[i].Name, args[0]) {
				tpl = &tpls[i]
				break
			}
		}
		if tpl == nil {
			return fmt.Errorf("no template matching %q", args[0])
		}

		prof, err := a.profiles.Get(cmd.Context())
		if err != nil {
			return err
		}
		inv, err := a.instantiator().Instantiate(cmd.Context(), *tpl, prof)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s from template %q (invoice id %s).\n", inv.InvoiceNumber, tpl.Name, inv.ID)
		return nil
	},
}

func init() {
	f := templateSaveCmd.Flags()
	f.StringVar(&templateSaveID, "id", "", "Existing template id to update (omit to create)")
	f.StringVar(&templateSaveName, "name", "", "Template name, unique ignoring case (required)")
	f.StringVar(&templateSaveDesc, "description", "", "Short description")
	f.StringVar(&templateSaveLayout, "layout", "", "Layout to record (clean, modern, classic, bold)")

	templateRmCmd.Flags().BoolVar(&templateRmYes, "yes", false, "Skip the confirmation prompt")

	templateCmd.AddCommand(templateListCmd, templateSaveCmd, templateRmCmd, templateUseCmd)
	rootCmd.AddCommand(templateCmd)
}
