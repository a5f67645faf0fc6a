// file: internals/features/finance/fees/controller/fee_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type FeeController struct {
	Service *service.FeeLedgerService
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{Service: service.NewFeeLedgerService(db)}
}

/* ======================= CREATE ======================= */
// POST /api/a/fees
func (h *FeeController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}

	var req dto.CreateFeeRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	fee, err := h.Service.CreateFee(c.UserContext(), schoolID, &req)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonCreated(c, "Fee record created", dto.FromFeeModel(*fee))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/fees/:id
func (h *FeeController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}
	feeID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	fee, err := h.Service.GetFee(c.UserContext(), schoolID, feeID)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromFeeModel(*fee))
}

/* ======================= LIST ======================= */
// GET /api/a/fees?student_id=&fee_type=&status=&academic_year=&due_from=&due_to=&page=&per_page=
func (h *FeeController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}

	var q dto.ListFeeRecordQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	list, total, err := h.Service.ListFees(c.UserContext(), schoolID, &q, paging.Offset, paging.Limit)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonList(c, "OK", dto.FromFeeModels(list),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================= UPDATE (non-financial) ======================= */
// PATCH /api/a/fees/:id
func (h *FeeController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}
	feeID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateFeeRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	fee, err := h.Service.UpdateFee(c.UserContext(), schoolID, feeID, &req)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonUpdated(c, "Fee record updated", dto.FromFeeModel(*fee))
}

/* ======================= DELETE ======================= */
// DELETE /api/a/fees/:id
func (h *FeeController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}
	feeID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.Service.DeleteFee(c.UserContext(), schoolID, feeID); err != nil {
		return httpError(c, err)
	}
	return helper.JsonDeleted(c, "Fee record deleted", fiber.Map{"fee_record_id": feeID})
}

/* ======================= INSTALLMENT PLAN ======================= */
// PUT /api/a/fees/:id/installments
func (h *FeeController) SetInstallments(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}
	feeID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.SetInstallmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	fee, err := h.Service.SetInstallments(c.UserContext(), schoolID, feeID, req.ToModel())
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonUpdated(c, "Installment plan replaced", dto.FromFeeModel(*fee))
}

/* ======================= LATE FEE PREVIEW ======================= */
// GET /api/a/fees/:id/late-fee?evaluation_date=
func (h *FeeController) LateFeePreview(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}
	feeID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var evalAt *time.Time
	if raw := strings.TrimSpace(c.Query("evaluation_date")); raw != "" {
		parsed, perr := time.Parse("2006-01-02", raw)
		if perr != nil {
			if parsed, perr = time.Parse(time.RFC3339, raw); perr != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid evaluation_date")
			}
		}
		evalAt = &parsed
	}

	fee, res, err := h.Service.LateFeePreview(c.UserContext(), schoolID, feeID, evalAt)
	if err != nil {
		return httpError(c, err)
	}

	at := time.Now().UTC()
	if evalAt != nil {
		at = *evalAt
	}
	return helper.JsonOK(c, "OK", dto.LateFeePreviewResponse{
		FeeRecordID:    fee.FeeRecordID,
		EvaluationDate: at,
		DaysLate:       res.DaysLate,
		LateFeeAmount:  res.LateFeeAmount,
		TotalDue:       res.TotalDue,
	})
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}
