// file: internals/features/finance/fees/model/fee_record_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolku_backend/internals/helpers/money"
)

/* =========================================================
   MODEL fee_records — satu kewajiban tagihan per siswa

   fee_record_paid_amount adalah field turunan: selalu sama
   dengan jumlah entri ledger (fee_payments) untuk fee ini,
   direkonsiliasi di setiap mutasi dalam satu transaksi.
========================================================= */

type FeeRecordModel struct {
	// PK
	FeeRecordID uuid.UUID `gorm:"column:fee_record_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_record_id"`

	// Tenant & owner
	FeeRecordSchoolID  uuid.UUID `gorm:"column:fee_record_school_id;type:uuid;not null;index:ix_fee_records_school" json:"fee_record_school_id"`
	FeeRecordStudentID uuid.UUID `gorm:"column:fee_record_student_id;type:uuid;not null;index:ix_fee_records_student" json:"fee_record_student_id"`

	// Kategori & periode
	FeeRecordFeeType      string `gorm:"column:fee_record_fee_type;type:varchar(40);not null" json:"fee_record_fee_type"`
	FeeRecordAcademicYear string `gorm:"column:fee_record_academic_year;type:varchar(20);not null" json:"fee_record_academic_year"`

	// Nominal (bigint cents)
	FeeRecordTotalAmount money.Money `gorm:"column:fee_record_total_amount_cents;not null;check:fee_record_total_amount_cents>0" json:"fee_record_total_amount"`
	FeeRecordDiscount    money.Money `gorm:"column:fee_record_discount_cents;not null;default:0;check:fee_record_discount_cents>=0" json:"fee_record_discount"`
	FeeRecordPaidAmount  money.Money `gorm:"column:fee_record_paid_amount_cents;not null;default:0" json:"fee_record_paid_amount"`

	// Jatuh tempo
	FeeRecordDueDate time.Time `gorm:"column:fee_record_due_date;type:date;not null;index:ix_fee_records_due_date" json:"fee_record_due_date"`

	// Rencana cicilan (opsional): [{due_date, amount}], jumlah == total
	FeeRecordInstallments datatypes.JSON `gorm:"column:fee_record_installments;type:jsonb" json:"fee_record_installments,omitempty"`

	// Status turunan
	FeeRecordStatus FeeStatus `gorm:"column:fee_record_status;type:varchar(16);not null;default:'DUE';index:ix_fee_records_status" json:"fee_record_status"`

	// Timestamps
	FeeRecordCreatedAt time.Time      `gorm:"column:fee_record_created_at;not null;autoCreateTime" json:"fee_record_created_at"`
	FeeRecordUpdatedAt time.Time      `gorm:"column:fee_record_updated_at;not null;autoUpdateTime" json:"fee_record_updated_at"`
	FeeRecordDeletedAt gorm.DeletedAt `gorm:"column:fee_record_deleted_at;index" json:"-"`
}

func (FeeRecordModel) TableName() string { return "fee_records" }

/* ===================== Installment plan ===================== */

type Installment struct {
	DueDate time.Time   `json:"due_date"`
	Amount  money.Money `json:"amount"`
}

// Installments decodes the stored plan; nil when no plan is set.
func (m *FeeRecordModel) Installments() ([]Installment, error) {
	if len(m.FeeRecordInstallments) == 0 {
		return nil, nil
	}
	var items []Installment
	if err := json.Unmarshal(m.FeeRecordInstallments, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetInstallmentPlan replaces the stored plan wholesale.
func (m *FeeRecordModel) SetInstallmentPlan(items []Installment) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.FeeRecordInstallments = datatypes.JSON(raw)
	return nil
}

// OutstandingAmount is the remaining balance before any late fee.
func (m *FeeRecordModel) OutstandingAmount() money.Money {
	return m.FeeRecordTotalAmount.Sub(m.FeeRecordPaidAmount)
}
