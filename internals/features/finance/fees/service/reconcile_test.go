package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/helpers/money"
)

func cents(c int64) money.Money { return money.NewFromCents(c) }

func TestReconcileTable(t *testing.T) {
	total := cents(100000) // 1000.00

	cases := []struct {
		name      string
		paid      money.Money
		hasRefund bool
		want      model.FeeStatus
	}{
		{"nothing paid", cents(0), false, model.FeeStatusDue},
		{"partial", cents(40000), false, model.FeeStatusPartial},
		{"exactly total", cents(100000), false, model.FeeStatusPaid},
		{"overpaid", cents(120000), false, model.FeeStatusPaid},
		{"drained by refund", cents(0), true, model.FeeStatusRefunded},
		{"partial after refund", cents(30000), true, model.FeeStatusPartial},
		{"paid despite refund history", cents(100000), true, model.FeeStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Reconcile(total, tc.paid, tc.hasRefund))
		})
	}
}

func TestLedgerReplayDefinesPaidAmount(t *testing.T) {
	// arbitrary payment/refund sequence: paid == signed sum of entries
	entries := []model.FeePaymentModel{
		{FeePaymentAmount: cents(40000), FeePaymentMethod: model.PaymentMethodCash},
		{FeePaymentAmount: cents(60000), FeePaymentMethod: model.PaymentMethodCard},
		{FeePaymentAmount: cents(-100000), FeePaymentMethod: model.PaymentMethodRefund},
	}

	assert.Equal(t, cents(0), SumEntries(entries))
	assert.True(t, HasRefundEntry(entries))
	assert.Equal(t, model.FeeStatusRefunded, Reconcile(cents(100000), SumEntries(entries), HasRefundEntry(entries)))
}

// Scenario dari spesifikasi bisnis: 1000.00 → pay 400 → pay 600 → refund 1000.
func TestPaymentRefundLifecycle(t *testing.T) {
	total := cents(100000)
	var entries []model.FeePaymentModel

	pay := func(amount money.Money) {
		entries = append(entries, model.FeePaymentModel{
			FeePaymentAmount: amount,
			FeePaymentMethod: model.PaymentMethodCash,
		})
	}
	refund := func(amount money.Money) {
		entries = append(entries, model.FeePaymentModel{
			FeePaymentAmount: amount.Neg(),
			FeePaymentMethod: model.PaymentMethodRefund,
		})
	}

	pay(cents(40000))
	paid := SumEntries(entries)
	assert.Equal(t, "400.00", paid.String())
	assert.Equal(t, model.FeeStatusPartial, Reconcile(total, paid, HasRefundEntry(entries)))

	pay(cents(60000))
	paid = SumEntries(entries)
	assert.Equal(t, "1000.00", paid.String())
	assert.Equal(t, model.FeeStatusPaid, Reconcile(total, paid, HasRefundEntry(entries)))

	refund(cents(100000))
	paid = SumEntries(entries)
	assert.Equal(t, "0.00", paid.String())
	assert.Equal(t, model.FeeStatusRefunded, Reconcile(total, paid, HasRefundEntry(entries)))

	// refunded fee is re-entrant: a new payment leaves REFUNDED
	pay(cents(50000))
	paid = SumEntries(entries)
	assert.Equal(t, model.FeeStatusPartial, Reconcile(total, paid, HasRefundEntry(entries)))
}

// Refund precondition: 0 < amount ≤ paid, surfaced as a validation error
// with both amounts in the message.
func TestValidateRefundGuard(t *testing.T) {
	err := ValidateRefund(cents(5000), cents(3000))
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindValidation, kind)
	assert.Contains(t, err.Error(), "50.00")
	assert.Contains(t, err.Error(), "30.00")

	// refund of the full paid amount is allowed
	assert.NoError(t, ValidateRefund(cents(3000), cents(3000)))
	assert.NoError(t, ValidateRefund(cents(100), cents(3000)))

	assert.Error(t, ValidateRefund(cents(0), cents(3000)))
	assert.Error(t, ValidateRefund(cents(-100), cents(3000)))
}

func TestRetryableTxErrorDetection(t *testing.T) {
	assert.True(t, isRetryableTxError(assert.AnError) == false)
	assert.True(t, isRetryableTxError(errTest("deadlock detected")))
	assert.True(t, isRetryableTxError(errTest("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)")))
	assert.False(t, isRetryableTxError(nil))
}

func TestDuplicateKeyErrorDetection(t *testing.T) {
	assert.True(t, isDuplicateKeyError(errTest(`duplicate key value violates unique constraint "uq_fee_payments_receipt"`)))
	assert.False(t, isDuplicateKeyError(errTest("connection refused")))
	assert.False(t, isDuplicateKeyError(nil))
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestPaymentDateDefaults(t *testing.T) {
	d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	entry := model.FeePaymentModel{FeePaymentDate: d}
	assert.Equal(t, d, entry.FeePaymentDate)
	assert.False(t, entry.IsRefund())
}
