package billing

import (
	"fmt"
	"time"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/revenia/revenia/internal/billing/application"
	"github.com/spf13/cobra"
)

var (
	subscribeUser  string
	subscribePlan  string
	subscribeCycle time.Duration
	subscribeStart string
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Create a subscription",
	Long: `Create a subscription for a user on a plan.

The subscription starts in pending_payment and its first billing cycle
runs from the start date for one cycle duration.

Examples:
  revenia billing subscribe -u user-1 -p plan-pro
  revenia billing subscribe -u user-1 -p plan-pro --cycle 720h --start 2026-01-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Engine == nil {
			fmt.Println("Billing requires an initialized store.")
			return nil
		}

		userID := subscribeUser
		if userID == "" {
			userID = app.CurrentUserID
		}
		if userID == "" {
			return fmt.Errorf("user id required (use --user or REVENIA_USER_ID)")
		}

		start := time.Now().UTC()
		if subscribeStart != "" {
			parsed, err := time.Parse("2006-01-02", subscribeStart)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", subscribeStart, err)
			}
			start = parsed
		}

		subscription, err := app.Engine.CreateSubscription(cmd.Context(), application.CreateSubscriptionInput{
			UserID:        userID,
			PlanID:        subscribePlan,
			StartDate:     start,
			CycleDuration: subscribeCycle,
		})
		if err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		fmt.Printf("Created subscription: %s\n", subscription.SubscriptionID)
		fmt.Printf("  User: %s\n", subscription.UserID)
		fmt.Printf("  Plan: %s\n", subscription.PlanID)
		fmt.Printf("  Status: %s\n", subscription.Status)
		fmt.Printf("  Cycle: %s to %s\n",
			subscription.CurrentCycleStart.Format("2006-01-02"),
			subscription.CurrentCycleEnd.Format("2006-01-02"))
		return nil
	},
}

func init() {
	subscribeCmd.Flags().StringVarP(&subscribeUser, "user", "u", "", "user id (defaults to configured user)")
	subscribeCmd.Flags().StringVarP(&subscribePlan, "plan", "p", "", "plan id")
	subscribeCmd.Flags().DurationVar(&subscribeCycle, "cycle", 30*24*time.Hour, "billing cycle duration")
	subscribeCmd.Flags().StringVar(&subscribeStart, "start", "", "start date (YYYY-MM-DD, defaults to today)")
	_ = subscribeCmd.MarkFlagRequired("plan")
}
