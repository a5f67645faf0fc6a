package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/features/finance/fees/model"
)

func feeDue(daysAgo int, totalCents, paidCents int64) model.FeeRecordModel {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	return model.FeeRecordModel{
		FeeRecordTotalAmount: cents(totalCents),
		FeeRecordPaidAmount:  cents(paidCents),
		FeeRecordDueDate:     now.AddDate(0, 0, -daysAgo),
	}
}

func policy(dailyRate, maxRate float64, graceDays int) model.LateFeePolicy {
	return model.LateFeePolicy{
		Enabled:   true,
		DailyRate: decimal.NewFromFloat(dailyRate),
		MaxRate:   decimal.NewFromFloat(maxRate),
		GraceDays: graceDays,
	}
}

func TestComputeLateFeeTenDaysUncapped(t *testing.T) {
	// due 10 days ago, 1% daily, cap 50%, no grace → 100.00 (cap is 500)
	fee := feeDue(10, 100000, 0)
	res := ComputeLateFee(fee, policy(0.01, 0.5, 0), time.Now().UTC().Truncate(24*time.Hour))

	assert.Equal(t, 10, res.DaysLate)
	assert.Equal(t, "100.00", res.LateFeeAmount.String())
	assert.Equal(t, "1100.00", res.TotalDue.String())
}

func TestComputeLateFeeCapApplies(t *testing.T) {
	// 100 days late at 1% daily would be 100% of total; cap at 50%
	fee := feeDue(100, 100000, 0)
	res := ComputeLateFee(fee, policy(0.01, 0.5, 0), time.Now().UTC().Truncate(24*time.Hour))

	assert.Equal(t, 100, res.DaysLate)
	assert.Equal(t, "500.00", res.LateFeeAmount.String())
}

func TestComputeLateFeeGracePeriod(t *testing.T) {
	eval := time.Now().UTC().Truncate(24 * time.Hour)

	// 5 days late with 7 grace days → no penalty
	res := ComputeLateFee(feeDue(5, 100000, 0), policy(0.01, 0, 7), eval)
	assert.Equal(t, 0, res.DaysLate)
	assert.True(t, res.LateFeeAmount.IsZero())

	// 10 days late with 7 grace days → 3 chargeable days
	res = ComputeLateFee(feeDue(10, 100000, 0), policy(0.01, 0, 7), eval)
	assert.Equal(t, 3, res.DaysLate)
	assert.Equal(t, "30.00", res.LateFeeAmount.String())
}

func TestComputeLateFeeDisabledPolicy(t *testing.T) {
	fee := feeDue(30, 100000, 0)
	p := policy(0.01, 0.5, 0)
	p.Enabled = false

	res := ComputeLateFee(fee, p, time.Now().UTC().Truncate(24*time.Hour))
	assert.True(t, res.LateFeeAmount.IsZero())
	assert.Equal(t, "1000.00", res.TotalDue.String())
}

func TestComputeLateFeeNotYetDue(t *testing.T) {
	fee := feeDue(-5, 100000, 40000) // due 5 days from now, 400 already paid
	res := ComputeLateFee(fee, policy(0.01, 0.5, 0), time.Now().UTC().Truncate(24*time.Hour))

	assert.Equal(t, 0, res.DaysLate)
	assert.True(t, res.LateFeeAmount.IsZero())
	assert.Equal(t, "600.00", res.TotalDue.String())
}

func TestComputeLateFeeIsIdempotent(t *testing.T) {
	fee := feeDue(10, 100000, 40000)
	p := policy(0.01, 0.5, 2)
	eval := time.Now().UTC().Truncate(24 * time.Hour)

	first := ComputeLateFee(fee, p, eval)
	second := ComputeLateFee(fee, p, eval)

	assert.Equal(t, first, second)
	// input fee untouched
	assert.Equal(t, "400.00", fee.FeeRecordPaidAmount.String())
}

func TestLateDaysCeilsPartialDays(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// half a day past due still counts as one late day
	assert.Equal(t, 1, lateDays(due, due.Add(12*time.Hour), 0))
	assert.Equal(t, 0, lateDays(due, due, 0))
	assert.Equal(t, 0, lateDays(due, due.Add(-time.Hour), 0))
	assert.Equal(t, 2, lateDays(due, due.Add(36*time.Hour), 0))
}
