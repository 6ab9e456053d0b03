package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrPlanNotFound  = errors.New("plan not found")
	ErrPlanNotActive = errors.New("plan not active")
)

// PlanStatus represents the availability of a plan.
type PlanStatus string

const (
	PlanActive  PlanStatus = "active"
	PlanRetired PlanStatus = "retired"
)

// Plan is a purchasable billing plan. Price is the amount billed per cycle.
type Plan struct {
	PlanID        string
	Name          string
	Status        PlanStatus
	Price         decimal.Decimal
	CycleDuration time.Duration
	MappedRoles   []string
}

// IsActive reports whether the plan can be assigned.
func (p *Plan) IsActive() bool {
	return p.Status == PlanActive
}
