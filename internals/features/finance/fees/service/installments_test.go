package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/helpers/money"
)

func inst(amountCents int64, day int) model.Installment {
	return model.Installment{
		DueDate: time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC),
		Amount:  money.NewFromCents(amountCents),
	}
}

func TestValidateInstallmentsSumMatches(t *testing.T) {
	total := cents(100000) // 1000.00

	err := ValidateInstallments([]model.Installment{
		inst(40000, 1), inst(30000, 15), inst(30000, 30),
	}, total)
	assert.NoError(t, err)
}

func TestValidateInstallmentsSumMismatch(t *testing.T) {
	total := cents(100000)

	err := ValidateInstallments([]model.Installment{
		inst(40000, 1), inst(30000, 15), // 700.00 ≠ 1000.00
	}, total)
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindValidation, kind)
	// pesan memuat kedua angka supaya mismatch bisa didebug dari response
	assert.Contains(t, err.Error(), "700.00")
	assert.Contains(t, err.Error(), "1000.00")
}

func TestValidateInstallmentsToleratesOneCent(t *testing.T) {
	total := cents(100000)

	// 333.33 * 3 = 999.99, off by one cent → OK
	err := ValidateInstallments([]model.Installment{
		inst(33333, 1), inst(33333, 15), inst(33333, 30),
	}, total)
	assert.NoError(t, err)

	// off by two cents → rejected
	err = ValidateInstallments([]model.Installment{
		inst(33333, 1), inst(33333, 15), inst(33332, 30),
	}, total)
	assert.Error(t, err)
}

func TestValidateInstallmentsRejectsBadItems(t *testing.T) {
	total := cents(100000)

	err := ValidateInstallments(nil, total)
	assert.Error(t, err)

	err = ValidateInstallments([]model.Installment{inst(0, 1)}, total)
	assert.Error(t, err)

	err = ValidateInstallments([]model.Installment{
		{Amount: money.NewFromCents(100000)}, // zero due date
	}, total)
	assert.Error(t, err)
}
