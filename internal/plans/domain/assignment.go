package domain

import "time"

// PlanAssignment records that a user is on a plan. The roles slice is the
// snapshot of the plan's mapped roles at assignment time; role semantics
// belong to the authorization module, the strings are opaque here.
type PlanAssignment struct {
	AssignmentID string
	UserID       string
	PlanID       string
	AssignedAt   time.Time
	Roles        []string
	Context      map[string]string
}
