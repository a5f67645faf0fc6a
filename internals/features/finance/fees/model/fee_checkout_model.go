// file: internals/features/finance/fees/model/fee_checkout_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schoolku_backend/internals/helpers/money"
)

/* =========================================================
   MODEL fee_checkouts — intent pembayaran gateway (Midtrans)

   Order ID dipakai sebagai korelasi webhook → fee record.
   Entri ledger baru ditulis saat transaksi settle, lewat
   jalur RecordPayment yang sama (atomik).
========================================================= */

type FeeCheckoutModel struct {
	// PK
	FeeCheckoutID uuid.UUID `gorm:"column:fee_checkout_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_checkout_id"`

	// FK + tenant
	FeeCheckoutFeeID    uuid.UUID `gorm:"column:fee_checkout_fee_id;type:uuid;not null;index:ix_fee_checkouts_fee" json:"fee_checkout_fee_id"`
	FeeCheckoutSchoolID uuid.UUID `gorm:"column:fee_checkout_school_id;type:uuid;not null;index:ix_fee_checkouts_school" json:"fee_checkout_school_id"`

	// Order ID di PSP (juga calon receipt number saat settle)
	FeeCheckoutOrderID string `gorm:"column:fee_checkout_order_id;type:varchar(40);not null;uniqueIndex:uq_fee_checkouts_order" json:"fee_checkout_order_id"`

	FeeCheckoutAmount money.Money    `gorm:"column:fee_checkout_amount_cents;not null;check:fee_checkout_amount_cents>0" json:"fee_checkout_amount"`
	FeeCheckoutStatus CheckoutStatus `gorm:"column:fee_checkout_status;type:varchar(16);not null;default:'initiated';index:ix_fee_checkouts_status" json:"fee_checkout_status"`

	// Snap token + redirect dari Midtrans
	FeeCheckoutSnapToken   *string `gorm:"column:fee_checkout_snap_token" json:"fee_checkout_snap_token,omitempty"`
	FeeCheckoutRedirectURL *string `gorm:"column:fee_checkout_redirect_url" json:"fee_checkout_redirect_url,omitempty"`

	// Payload notifikasi gateway terakhir
	FeeCheckoutGatewayMeta datatypes.JSONMap `gorm:"column:fee_checkout_gateway_meta;type:jsonb" json:"fee_checkout_gateway_meta,omitempty"`

	FeeCheckoutSettledAt *time.Time `gorm:"column:fee_checkout_settled_at" json:"fee_checkout_settled_at,omitempty"`

	// Timestamps
	FeeCheckoutCreatedAt time.Time `gorm:"column:fee_checkout_created_at;not null;autoCreateTime" json:"fee_checkout_created_at"`
	FeeCheckoutUpdatedAt time.Time `gorm:"column:fee_checkout_updated_at;not null;autoUpdateTime" json:"fee_checkout_updated_at"`
}

func (FeeCheckoutModel) TableName() string { return "fee_checkouts" }

func (m *FeeCheckoutModel) IsOpen() bool {
	return m.FeeCheckoutStatus == CheckoutStatusInitiated
}
