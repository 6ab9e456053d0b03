package billing

import (
	"github.com/spf13/cobra"
)

// Cmd is the billing command group
var Cmd = &cobra.Command{
	Use:   "billing",
	Short: "Manage subscriptions and invoices",
	Long:  `Create subscriptions, issue invoices, record payments, evaluate billing cycles and check access.`,
}

func init() {
	Cmd.AddCommand(subscribeCmd)
	Cmd.AddCommand(invoiceCmd)
	Cmd.AddCommand(payCmd)
	Cmd.AddCommand(cycleCmd)
	Cmd.AddCommand(graceCmd)
	Cmd.AddCommand(accessCmd)
	Cmd.AddCommand(statusCmd)
}
