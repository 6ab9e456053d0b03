package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/spf13/cobra"
)

var (
	accessUser string
	accessAt   string
)

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Check whether a user has access",
	Long: `Evaluate a user's access from their subscription state and, when
access is allowed, list the roles granted by their plan assignment.

Examples:
  revenia billing access -u user-1
  revenia billing access -u user-1 --at 2026-02-20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.EvaluateAccessHandler == nil {
			fmt.Println("Access checks require an initialized store.")
			return nil
		}

		userID := accessUser
		if userID == "" {
			userID = app.CurrentUserID
		}
		if userID == "" {
			return fmt.Errorf("user id required (use --user or REVENIA_USER_ID)")
		}

		now := time.Now().UTC()
		if accessAt != "" {
			parsed, err := time.Parse("2006-01-02", accessAt)
			if err != nil {
				return fmt.Errorf("invalid evaluation time %q: %w", accessAt, err)
			}
			now = parsed
		}

		evaluation, err := app.EvaluateAccessHandler.Handle(cmd.Context(), userID, now)
		if err != nil {
			return fmt.Errorf("failed to evaluate access: %w", err)
		}

		verdict := "denied"
		if evaluation.Decision.Allowed {
			verdict = "allowed"
		}
		fmt.Printf("Access %s for user %s\n", verdict, userID)
		fmt.Printf("  Reason: %s\n", evaluation.Decision.Reason)
		if evaluation.PlanID != "" {
			fmt.Printf("  Plan: %s\n", evaluation.PlanID)
		}
		if len(evaluation.Roles) > 0 {
			fmt.Printf("  Roles: %s\n", strings.Join(evaluation.Roles, ", "))
		}
		return nil
	},
}

func init() {
	accessCmd.Flags().StringVarP(&accessUser, "user", "u", "", "user id (defaults to configured user)")
	accessCmd.Flags().StringVar(&accessAt, "at", "", "evaluation date (YYYY-MM-DD, defaults to today)")
}
