package billing

import (
	"fmt"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var invoiceAmount string

var invoiceCmd = &cobra.Command{
	Use:   "invoice [subscription-id]",
	Short: "Create an invoice for a subscription's current cycle",
	Long: `Create an invoice billing the subscription's current cycle.

The invoice starts awaiting payment and the subscription moves to
pending_payment.

Examples:
  revenia billing invoice 6f1c... --amount 29.90`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Engine == nil {
			fmt.Println("Billing requires an initialized store.")
			return nil
		}

		amount, err := decimal.NewFromString(invoiceAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", invoiceAmount, err)
		}

		invoice, err := app.Engine.CreateInvoice(cmd.Context(), args[0], amount)
		if err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		fmt.Printf("Created invoice: %s\n", invoice.InvoiceID)
		fmt.Printf("  Amount: %s\n", invoice.Amount)
		fmt.Printf("  Status: %s\n", invoice.Status)
		fmt.Printf("  Period: %s to %s\n",
			invoice.BillingPeriod.Start.Format("2006-01-02"),
			invoice.BillingPeriod.End.Format("2006-01-02"))
		return nil
	},
}

func init() {
	invoiceCmd.Flags().StringVarP(&invoiceAmount, "amount", "a", "0", "invoice amount")
}
