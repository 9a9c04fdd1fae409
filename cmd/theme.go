package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docugen/internal/storage"
)

const defaultTheme = "light"

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the UI theme preference",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			theme, ok, err := a.store.Read(cmd.Context(), storage.KeyTheme)
			if err != nil {
				return err
			}
			if !ok {
				theme = defaultTheme
			}
			fmt.Println(theme)
			return nil
		}

		if args[0] != "light" && args[0] != "dark" {
			return fmt.Errorf("unknown theme %q (light or dark)", args[0])
		}
		if err := a.store.Write(cmd.Context(), storage.KeyTheme, args[0]); err != nil {
			return err
		}
		fmt.Printf("Theme set to %s.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
