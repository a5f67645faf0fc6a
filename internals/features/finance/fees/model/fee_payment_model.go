// file: internals/features/finance/fees/model/fee_payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schoolku_backend/internals/helpers/money"
)

/* =========================================================
   MODEL fee_payments — ledger append-only

   Satu baris = satu event pembayaran atau refund terhadap
   fee record. Baris tidak pernah di-edit atau dihapus;
   jumlah kronologis amount mendefinisikan paid_amount.
========================================================= */

type FeePaymentModel struct {
	// PK
	FeePaymentID uuid.UUID `gorm:"column:fee_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_payment_id"`

	// FK → fee_records + tenant denorm (guard query tanpa join)
	FeePaymentFeeID    uuid.UUID `gorm:"column:fee_payment_fee_id;type:uuid;not null;index:ix_fee_payments_fee" json:"fee_payment_fee_id"`
	FeePaymentSchoolID uuid.UUID `gorm:"column:fee_payment_school_id;type:uuid;not null;index:ix_fee_payments_school" json:"fee_payment_school_id"`

	// Signed amount: positif = payment, negatif = refund
	FeePaymentAmount money.Money `gorm:"column:fee_payment_amount_cents;not null" json:"fee_payment_amount"`

	FeePaymentMethod PaymentMethod `gorm:"column:fee_payment_method;type:varchar(20);not null" json:"fee_payment_method"`
	FeePaymentDate   time.Time     `gorm:"column:fee_payment_date;type:date;not null" json:"fee_payment_date"`

	// Nomor kuitansi unik (time-based + random suffix)
	FeePaymentReceiptNumber string `gorm:"column:fee_payment_receipt_number;type:varchar(40);not null;uniqueIndex:uq_fee_payments_receipt" json:"fee_payment_receipt_number"`

	// Metadata bebas (refund reason, gateway response, dsb)
	FeePaymentMeta datatypes.JSONMap `gorm:"column:fee_payment_meta;type:jsonb" json:"fee_payment_meta,omitempty"`

	// Append-only: hanya created_at, tanpa update/soft delete
	FeePaymentCreatedAt time.Time `gorm:"column:fee_payment_created_at;not null;autoCreateTime" json:"fee_payment_created_at"`
}

func (FeePaymentModel) TableName() string { return "fee_payments" }

func (p *FeePaymentModel) IsRefund() bool {
	return p.FeePaymentAmount.IsNegative()
}
