package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/revenia/revenia/internal/plans/application"
	"github.com/spf13/cobra"
)

var assignUser string

var assignCmd = &cobra.Command{
	Use:   "assign [plan-id]",
	Short: "Assign a plan to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AssignPlanHandler == nil {
			fmt.Println("Plan management requires an initialized store.")
			return nil
		}

		userID := assignUser
		if userID == "" {
			userID = app.CurrentUserID
		}
		if userID == "" {
			return fmt.Errorf("user id required (use --user or REVENIA_USER_ID)")
		}

		assignment, err := app.AssignPlanHandler.Handle(cmd.Context(), application.AssignPlanCommand{
			UserID: userID,
			PlanID: args[0],
			Now:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to assign plan: %w", err)
		}

		fmt.Printf("Assigned plan %s to user %s\n", assignment.PlanID, assignment.UserID)
		if len(assignment.Roles) > 0 {
			fmt.Printf("  Roles: %s\n", strings.Join(assignment.Roles, ", "))
		}
		return nil
	},
}

func init() {
	assignCmd.Flags().StringVarP(&assignUser, "user", "u", "", "user id (defaults to configured user)")
}
