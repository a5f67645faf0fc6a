// file: internals/features/finance/fees/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/helpers/money"
)

/* =========================================================
   PAYMENT LEDGER — DTO
========================================================= */

type RecordPaymentRequest struct {
	FeePaymentFeeID  uuid.UUID           `json:"fee_payment_fee_id" validate:"required"`
	FeePaymentAmount money.Money         `json:"fee_payment_amount" validate:"required,gt=0"`
	FeePaymentMethod model.PaymentMethod `json:"fee_payment_method" validate:"required"`
	FeePaymentDate   *time.Time          `json:"fee_payment_date,omitempty"`
}

// PaymentDateOrNow: tanggal bayar default hari ini.
func (r *RecordPaymentRequest) PaymentDateOrNow() time.Time {
	if r.FeePaymentDate != nil {
		return *r.FeePaymentDate
	}
	return time.Now().UTC()
}

type RecordRefundRequest struct {
	FeePaymentFeeID  uuid.UUID   `json:"fee_payment_fee_id" validate:"required"`
	FeePaymentAmount money.Money `json:"fee_payment_amount" validate:"required,gt=0"`
	RefundReason     string      `json:"refund_reason" validate:"required,max=200"`
}

/* ====================== Responses ====================== */

type FeePaymentResponse struct {
	FeePaymentID            uuid.UUID           `json:"fee_payment_id"`
	FeePaymentFeeID         uuid.UUID           `json:"fee_payment_fee_id"`
	FeePaymentAmount        money.Money         `json:"fee_payment_amount"`
	FeePaymentMethod        model.PaymentMethod `json:"fee_payment_method"`
	FeePaymentDate          time.Time           `json:"fee_payment_date"`
	FeePaymentReceiptNumber string              `json:"fee_payment_receipt_number"`
	FeePaymentMeta          datatypes.JSONMap   `json:"fee_payment_meta,omitempty"`
	FeePaymentCreatedAt     time.Time           `json:"fee_payment_created_at"`
}

func FromPaymentModel(m model.FeePaymentModel) FeePaymentResponse {
	return FeePaymentResponse{
		FeePaymentID:            m.FeePaymentID,
		FeePaymentFeeID:         m.FeePaymentFeeID,
		FeePaymentAmount:        m.FeePaymentAmount,
		FeePaymentMethod:        m.FeePaymentMethod,
		FeePaymentDate:          m.FeePaymentDate,
		FeePaymentReceiptNumber: m.FeePaymentReceiptNumber,
		FeePaymentMeta:          m.FeePaymentMeta,
		FeePaymentCreatedAt:     m.FeePaymentCreatedAt,
	}
}

func FromPaymentModels(list []model.FeePaymentModel) []FeePaymentResponse {
	out := make([]FeePaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromPaymentModel(m))
	}
	return out
}

// Mutasi ledger selalu mengembalikan entri + fee yang sudah direkonsiliasi.
type LedgerMutationResponse struct {
	Payment FeePaymentResponse `json:"payment"`
	Fee     FeeRecordResponse  `json:"fee"`
}

/* =========================================================
   GATEWAY CHECKOUT — DTO
========================================================= */

type CheckoutRequest struct {
	FeeCheckoutFeeID  uuid.UUID   `json:"fee_checkout_fee_id" validate:"required"`
	FeeCheckoutAmount money.Money `json:"fee_checkout_amount" validate:"required,gt=0"`

	PayerFirstName string `json:"payer_first_name" validate:"required,max=60"`
	PayerLastName  string `json:"payer_last_name" validate:"omitempty,max=60"`
	PayerEmail     string `json:"payer_email" validate:"required,email"`
	PayerPhone     string `json:"payer_phone" validate:"omitempty,max=20"`
}

type CheckoutResponse struct {
	FeeCheckoutID          uuid.UUID            `json:"fee_checkout_id"`
	FeeCheckoutFeeID       uuid.UUID            `json:"fee_checkout_fee_id"`
	FeeCheckoutOrderID     string               `json:"fee_checkout_order_id"`
	FeeCheckoutAmount      money.Money          `json:"fee_checkout_amount"`
	FeeCheckoutStatus      model.CheckoutStatus `json:"fee_checkout_status"`
	FeeCheckoutSnapToken   *string              `json:"fee_checkout_snap_token,omitempty"`
	FeeCheckoutRedirectURL *string              `json:"fee_checkout_redirect_url,omitempty"`
}

func FromCheckoutModel(m model.FeeCheckoutModel) CheckoutResponse {
	return CheckoutResponse{
		FeeCheckoutID:          m.FeeCheckoutID,
		FeeCheckoutFeeID:       m.FeeCheckoutFeeID,
		FeeCheckoutOrderID:     m.FeeCheckoutOrderID,
		FeeCheckoutAmount:      m.FeeCheckoutAmount,
		FeeCheckoutStatus:      m.FeeCheckoutStatus,
		FeeCheckoutSnapToken:   m.FeeCheckoutSnapToken,
		FeeCheckoutRedirectURL: m.FeeCheckoutRedirectURL,
	}
}
