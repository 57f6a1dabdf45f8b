package core

import (
	"errors"
	"strings"
)

type (
	// Money is a fixed-point currency amount in cents. All arithmetic is
	// done on cents; floats appear only at the storage and display
	// boundaries.
	Money struct {
		Cents int64
	}

	// Transaction is one immutable ledger entry. ID is assigned by the
	// store on insert; a zero ID means the transaction has not been
	// persisted yet.
	Transaction struct {
		ID          int64
		Date        Date
		Description string
		Amount      Money
		Category    string
	}

	// Budget is a monthly spending ceiling for one category. The store
	// keeps at most one budget per category.
	Budget struct {
		Category string
		Limit    Money
	}

	// CategorySpend pairs the summed spend for a category with its budget
	// limit. Limit is zero when no budget is set.
	CategorySpend struct {
		Category string
		Spent    Money
		Limit    Money
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
)

// Validate checks the manual-entry rules: a set date, a non-empty
// description and a positive amount. Bulk import is more lenient and does
// not go through this.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Limit.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// PercentUsed returns the raw spent/limit ratio as a percentage. It is not
// clamped, so over-budget categories report values above 100. A zero limit
// yields 0 rather than dividing.
func (cs CategorySpend) PercentUsed() float64 {
	if cs.Limit.Cents <= 0 {
		return 0
	}
	return float64(cs.Spent.Cents) / float64(cs.Limit.Cents) * 100
}

// DisplayPercent is PercentUsed capped at 100 for progress-bar style
// rendering.
func (cs CategorySpend) DisplayPercent() float64 {
	p := cs.PercentUsed()
	if p > 100 {
		return 100
	}
	return p
}

// Over reports whether the category exceeded its budget.
func (cs CategorySpend) Over() bool {
	return cs.Limit.Cents > 0 && cs.Spent.Cents > cs.Limit.Cents
}

// Overrun returns the amount spent beyond the limit, zero when not over.
func (cs CategorySpend) Overrun() Money {
	if !cs.Over() {
		return Money{}
	}
	return Money{Cents: cs.Spent.Cents - cs.Limit.Cents}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns m minus other. The result may be negative, which is
// meaningful (overspend).
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}
