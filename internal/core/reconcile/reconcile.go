// Package reconcile implements the installment reconciliation engine: given a
// total charge and a partition into an initial payment plus dated
// installments, it guarantees the partition sums to the total (within a
// currency-rounding tolerance) and computes the remaining amount to allocate
// as the partition is edited. It is pure state manipulation with no I/O so
// the workflow services can validate a plan before anything is persisted.
package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tolerance is the maximum acceptable absolute discrepancy between the total
// charge and the allocated sum (currency rounding).
var Tolerance = decimal.New(1, -2) // 0.01

var (
	// ErrOverAllocated indicates an edit would push the allocated sum past the total charge.
	ErrOverAllocated = errors.New("allocation exceeds total charge")
	// ErrNothingRemaining indicates an installment cannot be added because the total is fully allocated.
	ErrNothingRemaining = errors.New("no remaining amount to allocate")
	// ErrNegativeAmount indicates a negative payment amount.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrRowNotFound indicates an installment index outside the plan.
	ErrRowNotFound = errors.New("installment index out of range")
	// ErrUnreconciled indicates the partition does not sum to the total charge.
	ErrUnreconciled = errors.New("installments do not reconcile with total charge")
)

// AllocationError reports an over-allocation, naming the offending sum
// against the total charge. Row is -1 when the initial payment is at fault,
// otherwise it is the index of the offending installment so the caller can
// attach the error to that row.
type AllocationError struct {
	Row   int
	Sum   decimal.Decimal
	Total decimal.Decimal
}

func (e *AllocationError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("initial payment pushes allocated sum to %s against a total charge of %s", e.Sum.StringFixed(2), e.Total.StringFixed(2))
	}
	return fmt.Sprintf("installment %d pushes allocated sum to %s against a total charge of %s", e.Row+1, e.Sum.StringFixed(2), e.Total.StringFixed(2))
}

func (e *AllocationError) Is(target error) bool { return target == ErrOverAllocated }

// DiscrepancyError reports a failed final reconciliation check.
type DiscrepancyError struct {
	Sum   decimal.Decimal
	Total decimal.Decimal
}

func (e *DiscrepancyError) Error() string {
	return fmt.Sprintf("allocated sum %s does not match total charge %s", e.Sum.StringFixed(2), e.Total.StringFixed(2))
}

func (e *DiscrepancyError) Is(target error) bool { return target == ErrUnreconciled }

// Line is one regular installment within a plan.
type Line struct {
	Amount  decimal.Decimal
	DueDate *time.Time
	Remark  string
}

// Plan is the in-progress partition of a total charge into an initial payment
// plus zero-or-more installments.
type Plan struct {
	Total        decimal.Decimal
	Initial      decimal.Decimal
	Installments []Line
}

// NewPlan creates an empty plan against the given total charge.
func NewPlan(total decimal.Decimal) *Plan {
	return &Plan{Total: total}
}

// SetTotalCharge resets the partition against a new total. Any prior
// allocation reconciled against a different total would be silently wrong,
// so the initial payment and all installments are cleared.
func (p *Plan) SetTotalCharge(total decimal.Decimal) {
	p.Total = total
	p.Initial = decimal.Zero
	p.Installments = nil
}

// AllocatedSum returns initial + sum of all installment amounts.
func (p *Plan) AllocatedSum() decimal.Decimal {
	sum := p.Initial
	for _, line := range p.Installments {
		sum = sum.Add(line.Amount)
	}
	return sum
}

// Remaining returns total - (initial + sum of installments). It gates the
// "add installment" affordance: adding is only allowed while it is positive.
func (p *Plan) Remaining() decimal.Decimal {
	return p.Total.Sub(p.AllocatedSum())
}

// SetInitialPayment replaces the initial payment, rejecting negative amounts
// and any value that would over-allocate the total.
func (p *Plan) SetInitialPayment(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	sum := amount
	for _, line := range p.Installments {
		sum = sum.Add(line.Amount)
	}
	if sum.Sub(p.Total).GreaterThan(Tolerance) {
		return &AllocationError{Row: -1, Sum: sum, Total: p.Total}
	}
	p.Initial = amount
	return nil
}

// AddInstallment appends a new installment pre-filled with the remaining
// amount as a convenience default. It fails when the total is already fully
// allocated. Returns the index of the appended installment.
func (p *Plan) AddInstallment() (int, error) {
	remaining := p.Remaining()
	if !remaining.IsPositive() {
		return 0, ErrNothingRemaining
	}
	p.Installments = append(p.Installments, Line{Amount: remaining})
	return len(p.Installments) - 1, nil
}

// UpdateAmount replaces the amount of the installment at index, applying the
// over-allocation guard scoped to "initial + all other installments + new
// value". On violation the plan is left unchanged and the returned
// AllocationError carries the offending row.
func (p *Plan) UpdateAmount(index int, amount decimal.Decimal) error {
	if index < 0 || index >= len(p.Installments) {
		return ErrRowNotFound
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	sum := p.Initial.Add(amount)
	for i, line := range p.Installments {
		if i == index {
			continue
		}
		sum = sum.Add(line.Amount)
	}
	if sum.Sub(p.Total).GreaterThan(Tolerance) {
		return &AllocationError{Row: index, Sum: sum, Total: p.Total}
	}
	p.Installments[index].Amount = amount
	return nil
}

// UpdateDueDate sets the due date of the installment at index.
func (p *Plan) UpdateDueDate(index int, dueDate time.Time) error {
	if index < 0 || index >= len(p.Installments) {
		return ErrRowNotFound
	}
	p.Installments[index].DueDate = &dueDate
	return nil
}

// UpdateRemark sets the remark of the installment at index.
func (p *Plan) UpdateRemark(index int, remark string) error {
	if index < 0 || index >= len(p.Installments) {
		return ErrRowNotFound
	}
	p.Installments[index].Remark = remark
	return nil
}

// RemoveInstallment deletes the installment at index unconditionally.
func (p *Plan) RemoveInstallment(index int) error {
	if index < 0 || index >= len(p.Installments) {
		return ErrRowNotFound
	}
	p.Installments = append(p.Installments[:index], p.Installments[index+1:]...)
	return nil
}

// Validate is the final check before a plan may be submitted:
// |total - (initial + sum of installments)| < 0.01. With no installments the
// initial payment alone must equal the total (the exact single-payment
// shortcut). Individual amounts must not be negative.
func (p *Plan) Validate() error {
	if p.Initial.IsNegative() {
		return ErrNegativeAmount
	}
	for _, line := range p.Installments {
		if line.Amount.IsNegative() {
			return ErrNegativeAmount
		}
	}
	sum := p.AllocatedSum()
	if p.Total.Sub(sum).Abs().GreaterThanOrEqual(Tolerance) {
		return &DiscrepancyError{Sum: sum, Total: p.Total}
	}
	return nil
}
