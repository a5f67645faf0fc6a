// file: internals/features/finance/fees/service/midtrans.go
package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/helpers/money"
)

/* =========================================================
   Midtrans — checkout ONLINE lewat Snap

   CreateCheckout membuat intent + Snap token; entri ledger
   baru ditulis saat webhook melaporkan settlement, lewat
   jalur transaksi yang sama dengan payment manual.
========================================================= */

var (
	snapClient     snap.Client
	snapServerKey  string
	snapConfigured bool
)

// InitMidtrans harus dipanggil saat bootstrap app.
func InitMidtrans(serverKey string, useProduction bool) {
	if serverKey == "" {
		return
	}
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	snapClient.New(serverKey, env)
	snapServerKey = serverKey
	snapConfigured = true
}

// verifyWebhookSignature checks the Midtrans notification signature:
// SHA512(order_id + status_code + gross_amount + serverKey).
func verifyWebhookSignature(orderID, statusCode, grossAmount, signatureKey, serverKey string) bool {
	if signatureKey == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:]) == strings.ToLower(signatureKey)
}

// checkoutGrossUnits converts a checkout amount to the major units Snap
// charges in. Sub-unit cents would make the gateway collect less than the
// ledger later records, so they are rejected up front.
func checkoutGrossUnits(amount money.Money) (int64, error) {
	if amount.Cents()%100 != 0 {
		return 0, errValidationf("checkout amount %s must be a whole currency unit", amount)
	}
	return amount.Cents() / 100, nil
}

func (s *FeeLedgerService) CreateCheckout(ctx context.Context, schoolID uuid.UUID, req *dto.CheckoutRequest) (*model.FeeCheckoutModel, error) {
	if !snapConfigured {
		return nil, errConflictf("payment gateway is not configured")
	}
	if !req.FeeCheckoutAmount.IsPositive() {
		return nil, errValidationf("checkout amount must be greater than zero")
	}
	grossUnits, err := checkoutGrossUnits(req.FeeCheckoutAmount)
	if err != nil {
		return nil, err
	}
	if err := s.checkMethodAllowed(ctx, schoolID, model.PaymentMethodOnline); err != nil {
		return nil, err
	}

	fee, err := s.GetFee(ctx, schoolID, req.FeeCheckoutFeeID)
	if err != nil {
		return nil, err
	}

	intent := &model.FeeCheckoutModel{
		FeeCheckoutFeeID:    fee.FeeRecordID,
		FeeCheckoutSchoolID: schoolID,
		FeeCheckoutOrderID:  GenerateReceiptNumber(ReceiptPrefixCheckout),
		FeeCheckoutAmount:   req.FeeCheckoutAmount,
		FeeCheckoutStatus:   model.CheckoutStatusInitiated,
	}
	if err := s.DB.WithContext(ctx).Create(intent).Error; err != nil {
		return nil, err
	}

	// Midtrans menghitung dalam unit mayor (IDR tanpa sen)
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  intent.FeeCheckoutOrderID,
			GrossAmt: grossUnits,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.PayerFirstName,
			LName: req.PayerLastName,
			Email: req.PayerEmail,
			Phone: req.PayerPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       fee.FeeRecordID.String(),
				Price:    grossUnits,
				Qty:      1,
				Name:     fee.FeeRecordFeeType + " fee " + fee.FeeRecordAcademicYear,
				Category: fee.FeeRecordFeeType,
			},
		},
	}

	resp, snapErr := snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		// intent dibiarkan initiated; caller bisa checkout ulang
		return nil, errConflictf("gateway checkout failed: %v", snapErr)
	}

	token := resp.Token
	redirect := resp.RedirectURL
	intent.FeeCheckoutSnapToken = &token
	intent.FeeCheckoutRedirectURL = &redirect
	if err := s.DB.WithContext(ctx).Model(&model.FeeCheckoutModel{}).
		Where("fee_checkout_id = ?", intent.FeeCheckoutID).
		Updates(map[string]interface{}{
			"fee_checkout_snap_token":   token,
			"fee_checkout_redirect_url": redirect,
		}).Error; err != nil {
		return nil, err
	}
	return intent, nil
}

// HandleMidtransWebhook processes a gateway notification. Settlement writes
// the ledger entry atomically with the intent transition; repeated
// notifications for a settled order are no-ops.
func (s *FeeLedgerService) HandleMidtransWebhook(ctx context.Context, body map[string]interface{}) error {
	if !snapConfigured {
		return errConflictf("payment gateway is not configured")
	}

	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		return errValidationf("incomplete webhook payload")
	}

	// tolak notifikasi palsu sebelum menyentuh data apa pun
	statusCode, _ := body["status_code"].(string)
	grossAmount, _ := body["gross_amount"].(string)
	signature, _ := body["signature_key"].(string)
	if !verifyWebhookSignature(orderID, statusCode, grossAmount, signature, snapServerKey) {
		return errValidationf("invalid webhook signature")
	}

	var intent model.FeeCheckoutModel
	if err := s.DB.WithContext(ctx).
		Where("fee_checkout_order_id = ?", orderID).
		First(&intent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("checkout intent not found for order " + orderID)
		}
		return err
	}

	// gross_amount dari gateway harus sama dengan nominal intent
	if grossAmount != "" {
		amt, err := money.FromString(grossAmount)
		if err != nil || amt.Cmp(intent.FeeCheckoutAmount) != 0 {
			return errValidationf("gross amount %s does not match checkout amount %s", grossAmount, intent.FeeCheckoutAmount)
		}
	}

	switch status {
	case "capture", "settlement":
		return s.settleCheckout(ctx, &intent, body)
	case "expire":
		return s.closeCheckout(ctx, &intent, model.CheckoutStatusExpired, body)
	case "cancel", "deny":
		return s.closeCheckout(ctx, &intent, model.CheckoutStatusCanceled, body)
	default:
		// pending/authorize dsb: simpan payload terakhir saja
		return s.DB.WithContext(ctx).Model(&model.FeeCheckoutModel{}).
			Where("fee_checkout_id = ?", intent.FeeCheckoutID).
			Update("fee_checkout_gateway_meta", datatypes.JSONMap(body)).Error
	}
}

func (s *FeeLedgerService) settleCheckout(ctx context.Context, intent *model.FeeCheckoutModel, body map[string]interface{}) error {
	if intent.FeeCheckoutStatus == model.CheckoutStatusSettled {
		return nil // idempotent
	}

	entry := &model.FeePaymentModel{
		FeePaymentFeeID:         intent.FeeCheckoutFeeID,
		FeePaymentSchoolID:      intent.FeeCheckoutSchoolID,
		FeePaymentAmount:        intent.FeeCheckoutAmount,
		FeePaymentMethod:        model.PaymentMethodOnline,
		FeePaymentDate:          time.Now().UTC(),
		FeePaymentReceiptNumber: GenerateReceiptNumber(ReceiptPrefixPayment),
		FeePaymentMeta: datatypes.JSONMap{
			"gateway":          "midtrans",
			"gateway_order_id": intent.FeeCheckoutOrderID,
			"gateway_response": body,
		},
	}

	return s.withFeeTx(ctx, intent.FeeCheckoutSchoolID, intent.FeeCheckoutFeeID, func(tx *gorm.DB, fee *model.FeeRecordModel) error {
		// guard ulang di bawah lock: webhook bisa datang ganda
		var current model.FeeCheckoutModel
		if err := tx.Where("fee_checkout_id = ?", intent.FeeCheckoutID).First(&current).Error; err != nil {
			return err
		}
		if current.FeeCheckoutStatus == model.CheckoutStatusSettled {
			return nil
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		if err := reconcileFee(tx, fee); err != nil {
			return err
		}

		now := time.Now().UTC()
		return tx.Model(&model.FeeCheckoutModel{}).
			Where("fee_checkout_id = ?", intent.FeeCheckoutID).
			Updates(map[string]interface{}{
				"fee_checkout_status":       model.CheckoutStatusSettled,
				"fee_checkout_settled_at":   now,
				"fee_checkout_gateway_meta": datatypes.JSONMap(body),
			}).Error
	})
}

func (s *FeeLedgerService) closeCheckout(ctx context.Context, intent *model.FeeCheckoutModel, status model.CheckoutStatus, body map[string]interface{}) error {
	if !intent.IsOpen() {
		return nil
	}
	return s.DB.WithContext(ctx).Model(&model.FeeCheckoutModel{}).
		Where("fee_checkout_id = ? AND fee_checkout_status = ?", intent.FeeCheckoutID, model.CheckoutStatusInitiated).
		Updates(map[string]interface{}{
			"fee_checkout_status":       status,
			"fee_checkout_gateway_meta": datatypes.JSONMap(body),
		}).Error
}
