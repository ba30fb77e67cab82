package reconcile_test

import (
	"testing"
	"time"

	"github.com/placementpro/enrollment_crm_app/internal/core/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPlan_SinglePaymentShortcut(t *testing.T) {
	p := reconcile.NewPlan(dec("5000.00"))
	require.NoError(t, p.SetInitialPayment(dec("5000.00")))

	assert.True(t, p.Remaining().IsZero())
	assert.NoError(t, p.Validate())

	// Total fully allocated, so no further installments may be added.
	_, err := p.AddInstallment()
	assert.ErrorIs(t, err, reconcile.ErrNothingRemaining)
}

func TestPlan_InitialPlusOneInstallment(t *testing.T) {
	p := reconcile.NewPlan(dec("5000.00"))
	require.NoError(t, p.SetInitialPayment(dec("2000.00")))

	idx, err := p.AddInstallment()
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	// The new installment is pre-filled with the remaining amount.
	assert.True(t, p.Installments[idx].Amount.Equal(dec("3000.00")))
	due := time.Now().AddDate(0, 0, 30)
	require.NoError(t, p.UpdateDueDate(idx, due))

	assert.True(t, p.Remaining().IsZero())
	assert.NoError(t, p.Validate())
}

func TestPlan_ValidateReportsDiscrepancy(t *testing.T) {
	p := reconcile.NewPlan(dec("5000.00"))
	require.NoError(t, p.SetInitialPayment(dec("2000.00")))
	_, err := p.AddInstallment()
	require.NoError(t, err)

	// Editing the installment down to 2500 leaves 500 unallocated.
	require.NoError(t, p.UpdateAmount(0, dec("2500.00")))
	assert.True(t, p.Remaining().Equal(dec("500.00")))

	err = p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, reconcile.ErrUnreconciled)
	assert.Contains(t, err.Error(), "4500.00")
	assert.Contains(t, err.Error(), "5000.00")
}

func TestPlan_InitialPaymentGuards(t *testing.T) {
	p := reconcile.NewPlan(dec("5000.00"))
	require.NoError(t, p.SetInitialPayment(dec("2000.00")))
	_, err := p.AddInstallment()
	require.NoError(t, err)

	// Raising the initial payment past the total (with the existing
	// installment) must be rejected without mutating the plan.
	err = p.SetInitialPayment(dec("3000.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, reconcile.ErrOverAllocated)
	var allocErr *reconcile.AllocationError
	require.ErrorAs(t, err, &allocErr)
	assert.Equal(t, -1, allocErr.Row)
	assert.True(t, p.Initial.Equal(dec("2000.00")))

	assert.ErrorIs(t, p.SetInitialPayment(dec("-1")), reconcile.ErrNegativeAmount)
}

func TestPlan_UpdateAmountGuards(t *testing.T) {
	p := reconcile.NewPlan(dec("5000.00"))
	require.NoError(t, p.SetInitialPayment(dec("1000.00")))

	idx1, err := p.AddInstallment()
	require.NoError(t, err)
	require.NoError(t, p.UpdateAmount(idx1, dec("2000.00")))
	idx2, err := p.AddInstallment()
	require.NoError(t, err)
	require.NoError(t, p.UpdateAmount(idx2, dec("2000.00")))

	// initial(1000) + other(2000) + new value(2500) > 5000 -> per-row error
	err = p.UpdateAmount(idx1, dec("2500.00"))
	require.Error(t, err)
	var allocErr *reconcile.AllocationError
	require.ErrorAs(t, err, &allocErr)
	assert.Equal(t, idx1, allocErr.Row)
	// Value is not mutated until corrected.
	assert.True(t, p.Installments[idx1].Amount.Equal(dec("2000.00")))

	assert.ErrorIs(t, p.UpdateAmount(7, dec("1.00")), reconcile.ErrRowNotFound)
}

func TestPlan_RemainingMonotonicity(t *testing.T) {
	p := reconcile.NewPlan(dec("5000.00"))
	require.NoError(t, p.SetInitialPayment(dec("1000.00")))

	before := p.Remaining()
	idx, err := p.AddInstallment()
	require.NoError(t, err)
	require.NoError(t, p.UpdateAmount(idx, dec("1500.00")))

	// Adding a non-negative installment never increases remaining.
	assert.True(t, p.Remaining().LessThanOrEqual(before))

	// Removing it restores the prior remaining.
	require.NoError(t, p.RemoveInstallment(idx))
	assert.True(t, p.Remaining().Equal(before))
}

func TestPlan_SetTotalChargeResetsPartition(t *testing.T) {
	p := reconcile.NewPlan(dec("5000.00"))
	require.NoError(t, p.SetInitialPayment(dec("2000.00")))
	_, err := p.AddInstallment()
	require.NoError(t, err)

	// Switching package/pricing mode changes the total the partition
	// reconciles against; any partial allocation is discarded.
	p.SetTotalCharge(dec("4500.00"))
	assert.Empty(t, p.Installments)
	assert.True(t, p.Initial.IsZero())
	assert.True(t, p.Remaining().Equal(dec("4500.00")))
}

func TestPlan_ValidateTolerance(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		initial string
		lines   []string
		wantErr bool
	}{
		{name: "exact", total: "5000.00", initial: "2000.00", lines: []string{"3000.00"}, wantErr: false},
		{name: "within tolerance", total: "5000.00", initial: "2000.005", lines: []string{"3000.00"}, wantErr: false},
		{name: "at tolerance boundary", total: "5000.00", initial: "2000.01", lines: []string{"3000.00"}, wantErr: true},
		{name: "under allocated", total: "5000.00", initial: "2000.00", lines: []string{"2500.00"}, wantErr: true},
		{name: "empty plan nonzero total", total: "5000.00", initial: "0", lines: nil, wantErr: true},
		{name: "zero total empty plan", total: "0", initial: "0", lines: nil, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := reconcile.NewPlan(dec(tt.total))
			p.Initial = dec(tt.initial)
			for _, l := range tt.lines {
				p.Installments = append(p.Installments, reconcile.Line{Amount: dec(l)})
			}
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
