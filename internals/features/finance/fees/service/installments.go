// file: internals/features/finance/fees/service/installments.go
package service

import (
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/helpers/money"
)

// installmentSumTolerance: jumlah cicilan boleh meleset maksimal 0.01
// dari total fee (toleransi pembulatan pembagian manual).
const installmentSumTolerance = money.Money(1) // 1 cent

// ValidateInstallments checks a proposed installment plan against the fee
// total. Error message carries both sums so a mismatch is debuggable from
// the API response alone.
func ValidateInstallments(items []model.Installment, total money.Money) error {
	if len(items) == 0 {
		return errValidationf("installment plan must contain at least one installment")
	}

	sum := money.Zero
	for i, it := range items {
		if !it.Amount.IsPositive() {
			return errValidationf("installment %d: amount must be greater than zero", i+1)
		}
		if it.DueDate.IsZero() {
			return errValidationf("installment %d: due date is required", i+1)
		}
		sum = sum.Add(it.Amount)
	}

	if sum.Sub(total).Abs().Cmp(installmentSumTolerance) > 0 {
		return errValidationf("installment sum %s does not match fee total %s", sum, total)
	}
	return nil
}
