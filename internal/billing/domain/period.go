package domain

import "time"

// BillingPeriod is the half-open interval [Start, End) an invoice bills for.
type BillingPeriod struct {
	Start time.Time
	End   time.Time
}

// NewBillingPeriod creates a billing period. Start must precede End.
func NewBillingPeriod(start, end time.Time) BillingPeriod {
	return BillingPeriod{Start: start, End: end}
}

// Contains reports whether the moment falls within the period.
func (p BillingPeriod) Contains(moment time.Time) bool {
	return !moment.Before(p.Start) && moment.Before(p.End)
}

// IsValid reports whether Start precedes End.
func (p BillingPeriod) IsValid() bool {
	return p.Start.Before(p.End)
}
