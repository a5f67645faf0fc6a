// file: internals/features/finance/fees/service/reconcile.go
package service

import (
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/helpers/money"
)

/* =========================================================
   Status reconciler — pure function

   Status fee adalah fungsi murni dari (total, paid, hasRefund):
     PAID     ⟺ paid ≥ total
     REFUNDED ⟺ paid ≤ 0 dan ada entri refund
     PARTIAL  ⟺ 0 < paid < total
     DUE      ⟺ selainnya
   Dipanggil oleh setiap mutasi ledger setelah append entri,
   sebelum fee dipersist — tidak pernah oleh caller langsung.
========================================================= */

func Reconcile(total, paid money.Money, hasRefund bool) model.FeeStatus {
	switch {
	case paid.Cmp(total) >= 0:
		return model.FeeStatusPaid
	case paid.Cmp(money.Zero) <= 0 && hasRefund:
		return model.FeeStatusRefunded
	case paid.IsPositive():
		return model.FeeStatusPartial
	default:
		return model.FeeStatusDue
	}
}

// SumEntries replays the ledger: the signed sum of all entries for a fee
// defines its paid amount.
func SumEntries(entries []model.FeePaymentModel) money.Money {
	sum := money.Zero
	for _, e := range entries {
		sum = sum.Add(e.FeePaymentAmount)
	}
	return sum
}

// HasRefundEntry reports whether any entry in the ledger is a refund.
func HasRefundEntry(entries []model.FeePaymentModel) bool {
	for _, e := range entries {
		if e.IsRefund() {
			return true
		}
	}
	return false
}

// ValidateRefund checks the refund precondition: 0 < amount ≤ paid. The
// caller must hold the fee row lock so paid cannot move underneath the check.
func ValidateRefund(amount, paid money.Money) error {
	if !amount.IsPositive() {
		return errValidationf("refund amount must be greater than zero")
	}
	if amount.Cmp(paid) > 0 {
		return errValidationf("refund %s exceeds paid amount %s", amount, paid)
	}
	return nil
}
