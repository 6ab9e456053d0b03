package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/revenia/revenia/adapter/cli"
	plansDomain "github.com/revenia/revenia/internal/plans/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	cycleAmount string
	cycleAt     string
)

var cycleCmd = &cobra.Command{
	Use:   "cycle [subscription-id]",
	Short: "Evaluate a subscription's billing cycle",
	Long: `Check whether the subscription's billing cycle has elapsed. If it has,
an invoice is issued for the elapsed cycle and the subscription moves to
pending_payment, grace or suspended depending on its grace deadline.

Without --amount the invoice amount is taken from the plan catalog; an
unknown plan bills zero.

Examples:
  revenia billing cycle 6f1c...
  revenia billing cycle 6f1c... --at 2026-02-01 --amount 29.90`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Engine == nil {
			fmt.Println("Billing requires an initialized store.")
			return nil
		}

		now := time.Now().UTC()
		if cycleAt != "" {
			parsed, err := time.Parse("2006-01-02", cycleAt)
			if err != nil {
				return fmt.Errorf("invalid evaluation time %q: %w", cycleAt, err)
			}
			now = parsed
		}

		var amount *decimal.Decimal
		if cycleAmount != "" {
			parsed, err := decimal.NewFromString(cycleAmount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", cycleAmount, err)
			}
			amount = &parsed
		} else if price, err := resolvePlanPrice(cmd, app, args[0]); err != nil {
			return err
		} else if price != nil {
			amount = price
		}

		invoice, err := app.Engine.EvaluateCycle(cmd.Context(), args[0], now, amount)
		if err != nil {
			return fmt.Errorf("failed to evaluate cycle: %w", err)
		}
		if invoice == nil {
			fmt.Println("Cycle has not elapsed; nothing to bill.")
			return nil
		}

		fmt.Printf("Cycle elapsed; created invoice: %s\n", invoice.InvoiceID)
		fmt.Printf("  Amount: %s\n", invoice.Amount)
		fmt.Printf("  Period: %s to %s\n",
			invoice.BillingPeriod.Start.Format("2006-01-02"),
			invoice.BillingPeriod.End.Format("2006-01-02"))
		return nil
	},
}

// resolvePlanPrice looks up the subscription's plan price. A plan missing
// from the catalog is not an error here; the invoice then bills zero.
func resolvePlanPrice(cmd *cobra.Command, app *cli.App, subscriptionID string) (*decimal.Decimal, error) {
	if app.PlanRepository == nil {
		return nil, nil
	}
	subscription, err := app.Subscriptions.Get(cmd.Context(), subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	plan, err := app.PlanRepository.FindByID(cmd.Context(), subscription.PlanID)
	if err != nil {
		if errors.Is(err, plansDomain.ErrPlanNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	price := plan.Price
	return &price, nil
}

func init() {
	cycleCmd.Flags().StringVarP(&cycleAmount, "amount", "a", "", "invoice amount (defaults to the plan price)")
	cycleCmd.Flags().StringVar(&cycleAt, "at", "", "evaluation date (YYYY-MM-DD, defaults to today)")
}
