package plan

import (
	"fmt"
	"time"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/revenia/revenia/internal/plans/application"
	"github.com/spf13/cobra"
)

var (
	changeUser   string
	changeReason string
)

var changeCmd = &cobra.Command{
	Use:   "change [plan-id]",
	Short: "Move a user to another plan",
	Long: `Replace the user's current plan assignment with a new one. The new
assignment keeps a pointer to the one it replaced.

Examples:
  revenia plan change plan-pro -u user-1 --reason upgrade`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ChangePlanHandler == nil {
			fmt.Println("Plan management requires an initialized store.")
			return nil
		}

		userID := changeUser
		if userID == "" {
			userID = app.CurrentUserID
		}
		if userID == "" {
			return fmt.Errorf("user id required (use --user or REVENIA_USER_ID)")
		}

		result, err := app.ChangePlanHandler.Handle(cmd.Context(), application.ChangePlanCommand{
			UserID:    userID,
			NewPlanID: args[0],
			Reason:    changeReason,
			Now:       time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to change plan: %w", err)
		}

		fmt.Printf("User %s is now on plan %s\n", userID, result.Assignment.PlanID)
		if result.Previous != nil {
			fmt.Printf("  Previous plan: %s\n", result.Previous.PlanID)
		}
		return nil
	},
}

func init() {
	changeCmd.Flags().StringVarP(&changeUser, "user", "u", "", "user id (defaults to configured user)")
	changeCmd.Flags().StringVar(&changeReason, "reason", "", "reason recorded on the new assignment")
}
