package plan

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/revenia/revenia/adapter/cli"
	"github.com/revenia/revenia/internal/plans/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	createID    string
	createPrice string
	createCycle time.Duration
	createRoles []string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a plan",
	Long: `Add a plan to the catalog.

Examples:
  revenia plan create "Pro" --price 29.90 --roles pro,api
  revenia plan create "Free" --price 0 --cycle 720h`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.PlanRepository == nil {
			fmt.Println("Plan management requires an initialized store.")
			return nil
		}

		price, err := decimal.NewFromString(createPrice)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", createPrice, err)
		}

		planID := createID
		if planID == "" {
			planID = uuid.NewString()
		}

		p := &domain.Plan{
			PlanID:        planID,
			Name:          args[0],
			Status:        domain.PlanActive,
			Price:         price,
			CycleDuration: createCycle,
			MappedRoles:   createRoles,
		}
		if err := app.PlanRepository.Save(cmd.Context(), p); err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}

		fmt.Printf("Created plan: %s\n", p.Name)
		fmt.Printf("  ID: %s\n", p.PlanID)
		fmt.Printf("  Price: %s\n", p.Price)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createID, "id", "", "plan id (defaults to a generated id)")
	createCmd.Flags().StringVar(&createPrice, "price", "0", "price per billing cycle")
	createCmd.Flags().DurationVar(&createCycle, "cycle", 30*24*time.Hour, "billing cycle duration")
	createCmd.Flags().StringSliceVar(&createRoles, "roles", nil, "roles granted by the plan")
}
