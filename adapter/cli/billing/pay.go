package billing

import (
	"fmt"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/revenia/revenia/internal/billing/domain"
	"github.com/spf13/cobra"
)

var payStatus string

var payCmd = &cobra.Command{
	Use:   "pay [invoice-id]",
	Short: "Record an invoice payment outcome",
	Long: `Move an invoice to a new status and reconcile the owning subscription.

Statuses:
  paid     - Payment succeeded; the subscription activates and its cycle advances
  failed   - Payment failed; the subscription enters grace or gets suspended
  expired  - The invoice lapsed; the subscription expires
  canceled - The invoice was withdrawn; the subscription expires

Examples:
  revenia billing pay 6f1c... --status paid
  revenia billing pay 6f1c... --status failed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Engine == nil {
			fmt.Println("Billing requires an initialized store.")
			return nil
		}

		invoice, err := app.Engine.UpdateInvoiceStatus(cmd.Context(), args[0], domain.InvoiceStatus(payStatus))
		if err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		fmt.Printf("Invoice %s is now %s\n", invoice.InvoiceID, invoice.Status)
		return nil
	},
}

func init() {
	payCmd.Flags().StringVarP(&payStatus, "status", "s", "paid", "new invoice status (paid, failed, expired, canceled, awaiting_payment)")
}
