// file: internals/features/finance/fees/controller/payment_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type FeePaymentController struct {
	Service *service.FeeLedgerService
}

func NewFeePaymentController(db *gorm.DB) *FeePaymentController {
	return &FeePaymentController{Service: service.NewFeeLedgerService(db)}
}

/* ======================= RECORD PAYMENT ======================= */
// POST /api/a/fees/payments
func (h *FeePaymentController) RecordPayment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}

	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	entry, fee, err := h.Service.RecordPayment(c.UserContext(), schoolID, &req)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonCreated(c, "Payment recorded", dto.LedgerMutationResponse{
		Payment: dto.FromPaymentModel(*entry),
		Fee:     dto.FromFeeModel(*fee),
	})
}

/* ======================= RECORD REFUND ======================= */
// POST /api/a/fees/refunds
func (h *FeePaymentController) RecordRefund(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}
	actorID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.RecordRefundRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	entry, fee, err := h.Service.RecordRefund(c.UserContext(), schoolID, actorID, &req)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonCreated(c, "Refund recorded", dto.LedgerMutationResponse{
		Payment: dto.FromPaymentModel(*entry),
		Fee:     dto.FromFeeModel(*fee),
	})
}

/* ======================= LIST LEDGER ======================= */
// GET /api/a/fees/:id/payments
func (h *FeePaymentController) ListByFee(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}
	feeID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	entries, err := h.Service.ListPayments(c.UserContext(), schoolID, feeID)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromPaymentModels(entries))
}

/* ======================= GATEWAY CHECKOUT ======================= */
// POST /api/a/fees/payments/checkout
func (h *FeePaymentController) Checkout(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	intent, err := h.Service.CreateCheckout(c.UserContext(), schoolID, &req)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonCreated(c, "Checkout created", dto.FromCheckoutModel(*intent))
}

/* ======================= MIDTRANS WEBHOOK ======================= */
// POST /api/public/fees/payments/midtrans/webhook
// Dipanggil gateway, tanpa JWT; scope sekolah dibawa oleh intent.
func (h *FeePaymentController) MidtransWebhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}

	if err := h.Service.HandleMidtransWebhook(c.UserContext(), body); err != nil {
		log.Printf("[ERROR] midtrans webhook: %v", err)
		return httpError(c, err)
	}
	return helper.JsonOK(c, "OK", nil)
}
