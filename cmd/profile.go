package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the business profile",
	Long: `Show or update the sender identity used in every generated document.

There is exactly one profile per installation. "set" only changes the
fields whose flags are given; everything else keeps its current value.`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		p, err := a.profiles.Get(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Business:       %s\n", p.BusinessName)
		fmt.Printf("Owner:          %s\n", p.OwnerName)
		fmt.Printf("Address:        %s\n", p.Address)
		fmt.Printf("Email:          %s\n", p.Email)
		fmt.Printf("Phone:          %s\n", p.Phone)
		fmt.Printf("Website:        %s\n", p.WebsiteURL)
		fmt.Printf("Currency:       %s\n", p.Currency)
		fmt.Printf("Payment terms:  %s\n", p.DefaultPaymentTerms)
		fmt.Printf("Payment details:\n%s\n", p.PaymentDetails)
		if p.InvoiceNumberFormat != "" {
			fmt.Printf("Number format:  %s\n", p.InvoiceNumberFormat)
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		p, err := a.profiles.Get(cmd.Context())
		if err != nil {
			return err
		}

		set := func(name string, dst *string) {
			if cmd.Flags().Changed(name) {
				*dst, _ = cmd.Flags().GetString(name)
			}
		}
		set("business", &p.BusinessName)
		set("owner", &p.OwnerName)
		set("address", &p.Address)
		set("email", &p.Email)
		set("phone", &p.Phone)
		set("website", &p.WebsiteURL)
		set("logo-url", &p.LogoURL)
		set("logo-bg", &p.LogoBackgroundColor)
		set("logo-fg", &p.LogoTextColor)
		set("payment-details", &p.PaymentDetails)
		set("payment-terms", &p.DefaultPaymentTerms)
		set("client-address", &p.DefaultClientAddress)
		set("currency", &p.Currency)
		set("number-format", &p.InvoiceNumberFormat)

		if err := a.profiles.Save(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Println("Profile saved.")
		return nil
	},
}

func init() {
	f := profileSetCmd.Flags()
	f.String("business", "", "Business name")
	f.String("owner", "", "Owner name")
	f.String("address", "", "Business address")
	f.String("email", "", "Billing email")
	f.String("phone", "", "Phone number")
	f.String("website", "", "Website URL")
	f.String("logo-url", "", "Logo image URL (empty falls back to a monogram)")
	f.String("logo-bg", "", "Monogram background color, e.g. #2563eb")
	f.String("logo-fg", "", "Monogram text color")
	f.String("payment-details", "", "Bank and payment instructions")
	f.String("payment-terms", "", "Default payment terms, e.g. \"Net 30\"")
	f.String("client-address", "", "Default client address hint for generation")
	f.String("currency", "", "Currency code, e.g. USD")
	f.String("number-format", "", "Invoice number format, e.g. ACME-%05d")

	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}
