// file: internals/features/finance/fees/service/late_fee.go
package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/helpers/money"
)

/* =========================================================
   Late-fee calculator — pure, advisory only

   Tidak pernah memutasi fee record: hasil hanya preview.
   Denda = total * dailyRate * hariTerlambat, dibatasi
   total * maxRate kalau cap dikonfigurasi.
========================================================= */

type LateFeeResult struct {
	DaysLate      int
	LateFeeAmount money.Money
	TotalDue      money.Money
}

func ComputeLateFee(fee model.FeeRecordModel, policy model.LateFeePolicy, evaluationDate time.Time) LateFeeResult {
	daysLate := lateDays(fee.FeeRecordDueDate, evaluationDate, policy.GraceDays)

	lateFee := money.Zero
	if daysLate > 0 && policy.Enabled {
		factor := policy.DailyRate.Mul(decimal.NewFromInt(int64(daysLate)))
		lateFee = fee.FeeRecordTotalAmount.MulFraction(factor)

		if policy.MaxRate.IsPositive() {
			cap := fee.FeeRecordTotalAmount.MulFraction(policy.MaxRate)
			lateFee = money.Min(lateFee, cap)
		}
	}

	return LateFeeResult{
		DaysLate:      daysLate,
		LateFeeAmount: lateFee,
		TotalDue:      fee.FeeRecordTotalAmount.Sub(fee.FeeRecordPaidAmount).Add(lateFee),
	}
}

// lateDays = max(0, ceil(hari sejak due date) − graceDays)
func lateDays(dueDate, evaluationDate time.Time, graceDays int) int {
	diff := evaluationDate.Sub(dueDate)
	if diff <= 0 {
		return 0
	}
	days := int(math.Ceil(diff.Hours() / 24))
	days -= graceDays
	if days < 0 {
		return 0
	}
	return days
}
