// file: internals/features/finance/fees/dto/fee_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/helpers/money"
)

/* =========================================================
   FEE RECORDS — DTO
========================================================= */

type InstallmentInput struct {
	DueDate time.Time   `json:"due_date" validate:"required"`
	Amount  money.Money `json:"amount" validate:"required,gt=0"`
}

// Create
type CreateFeeRecordRequest struct {
	FeeRecordStudentID    uuid.UUID   `json:"fee_record_student_id" validate:"required"`
	FeeRecordFeeType      string      `json:"fee_record_fee_type" validate:"required,max=40"`
	FeeRecordAcademicYear string      `json:"fee_record_academic_year" validate:"required,max=20"`
	FeeRecordTotalAmount  money.Money `json:"fee_record_total_amount" validate:"required,gt=0"`
	FeeRecordDiscount     money.Money `json:"fee_record_discount" validate:"omitempty,gte=0"`
	FeeRecordDueDate      time.Time   `json:"fee_record_due_date" validate:"required"`

	FeeRecordInstallments []InstallmentInput `json:"fee_record_installments,omitempty" validate:"omitempty,min=1,dive"`
}

func (r *CreateFeeRecordRequest) ToModel(schoolID uuid.UUID) *model.FeeRecordModel {
	return &model.FeeRecordModel{
		FeeRecordSchoolID:     schoolID,
		FeeRecordStudentID:    r.FeeRecordStudentID,
		FeeRecordFeeType:      r.FeeRecordFeeType,
		FeeRecordAcademicYear: r.FeeRecordAcademicYear,
		FeeRecordTotalAmount:  r.FeeRecordTotalAmount,
		FeeRecordDiscount:     r.FeeRecordDiscount,
		FeeRecordDueDate:      r.FeeRecordDueDate,
		FeeRecordPaidAmount:   money.Zero,
		FeeRecordStatus:       model.FeeStatusDue,
	}
}

// Installments converts the request items into model installments.
func (r *CreateFeeRecordRequest) Installments() []model.Installment {
	if len(r.FeeRecordInstallments) == 0 {
		return nil
	}
	items := make([]model.Installment, 0, len(r.FeeRecordInstallments))
	for _, it := range r.FeeRecordInstallments {
		items = append(items, model.Installment{DueDate: it.DueDate, Amount: it.Amount})
	}
	return items
}

// Update (partial) — hanya field non-finansial.
// total/paid/status tidak bisa dipatch langsung; mereka hanya berubah lewat
// operasi ledger (payment/refund/installment).
type UpdateFeeRecordRequest struct {
	FeeRecordFeeType      *string    `json:"fee_record_fee_type,omitempty" validate:"omitempty,max=40"`
	FeeRecordAcademicYear *string    `json:"fee_record_academic_year,omitempty" validate:"omitempty,max=20"`
	FeeRecordDueDate      *time.Time `json:"fee_record_due_date,omitempty"`
}

// SetInstallments
type SetInstallmentsRequest struct {
	Installments []InstallmentInput `json:"installments" validate:"required,min=1,dive"`
}

func (r *SetInstallmentsRequest) ToModel() []model.Installment {
	items := make([]model.Installment, 0, len(r.Installments))
	for _, it := range r.Installments {
		items = append(items, model.Installment{DueDate: it.DueDate, Amount: it.Amount})
	}
	return items
}

// List query
type ListFeeRecordQuery struct {
	StudentID    *uuid.UUID `query:"student_id"`
	FeeType      *string    `query:"fee_type"`
	Status       *string    `query:"status"`
	AcademicYear *string    `query:"academic_year"`
	DueFrom      *time.Time `query:"due_from"`
	DueTo        *time.Time `query:"due_to"`
}

/* ====================== Responses ====================== */

type FeeRecordResponse struct {
	FeeRecordID           uuid.UUID           `json:"fee_record_id"`
	FeeRecordSchoolID     uuid.UUID           `json:"fee_record_school_id"`
	FeeRecordStudentID    uuid.UUID           `json:"fee_record_student_id"`
	FeeRecordFeeType      string              `json:"fee_record_fee_type"`
	FeeRecordAcademicYear string              `json:"fee_record_academic_year"`
	FeeRecordTotalAmount  money.Money         `json:"fee_record_total_amount"`
	FeeRecordDiscount     money.Money         `json:"fee_record_discount"`
	FeeRecordPaidAmount   money.Money         `json:"fee_record_paid_amount"`
	FeeRecordOutstanding  money.Money         `json:"fee_record_outstanding"`
	FeeRecordDueDate      time.Time           `json:"fee_record_due_date"`
	FeeRecordStatus       model.FeeStatus     `json:"fee_record_status"`
	FeeRecordInstallments []model.Installment `json:"fee_record_installments,omitempty"`
	FeeRecordCreatedAt    time.Time           `json:"fee_record_created_at"`
	FeeRecordUpdatedAt    time.Time           `json:"fee_record_updated_at"`
}

func FromFeeModel(m model.FeeRecordModel) FeeRecordResponse {
	items, _ := m.Installments()
	return FeeRecordResponse{
		FeeRecordID:           m.FeeRecordID,
		FeeRecordSchoolID:     m.FeeRecordSchoolID,
		FeeRecordStudentID:    m.FeeRecordStudentID,
		FeeRecordFeeType:      m.FeeRecordFeeType,
		FeeRecordAcademicYear: m.FeeRecordAcademicYear,
		FeeRecordTotalAmount:  m.FeeRecordTotalAmount,
		FeeRecordDiscount:     m.FeeRecordDiscount,
		FeeRecordPaidAmount:   m.FeeRecordPaidAmount,
		FeeRecordOutstanding:  m.OutstandingAmount(),
		FeeRecordDueDate:      m.FeeRecordDueDate,
		FeeRecordStatus:       m.FeeRecordStatus,
		FeeRecordInstallments: items,
		FeeRecordCreatedAt:    m.FeeRecordCreatedAt,
		FeeRecordUpdatedAt:    m.FeeRecordUpdatedAt,
	}
}

func FromFeeModels(list []model.FeeRecordModel) []FeeRecordResponse {
	out := make([]FeeRecordResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromFeeModel(m))
	}
	return out
}

/* ====================== Late fee preview ====================== */

type LateFeePreviewResponse struct {
	FeeRecordID    uuid.UUID   `json:"fee_record_id"`
	EvaluationDate time.Time   `json:"evaluation_date"`
	DaysLate       int         `json:"days_late"`
	LateFeeAmount  money.Money `json:"late_fee_amount"`
	TotalDue       money.Money `json:"total_due"`
}
