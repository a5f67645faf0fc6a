// file: internals/features/finance/fees/controller/setting_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type FinanceSettingController struct {
	Service *service.FeeLedgerService
}

func NewFinanceSettingController(db *gorm.DB) *FinanceSettingController {
	return &FinanceSettingController{Service: service.NewFeeLedgerService(db)}
}

/* ======================= GET ======================= */
// GET /api/a/fees/settings
// Sekolah tanpa baris setting mendapat default (denda nonaktif).
func (h *FinanceSettingController) Get(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}

	setting, err := h.Service.FindSettings(c.UserContext(), schoolID)
	if err != nil {
		return httpError(c, err)
	}
	if setting == nil {
		defaults := model.SchoolFinanceSettingModel{
			SchoolFinanceSettingSchoolID: schoolID,
		}
		return helper.JsonOK(c, "OK (defaults)", dto.FromSettingModel(defaults))
	}
	return helper.JsonOK(c, "OK", dto.FromSettingModel(*setting))
}

/* ======================= UPSERT ======================= */
// PUT /api/a/fees/settings
func (h *FinanceSettingController) Upsert(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return err
	}

	var req dto.UpsertFinanceSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	setting, err := h.Service.UpsertSettings(c.UserContext(), schoolID, &req)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonUpdated(c, "Finance settings saved", dto.FromSettingModel(*setting))
}
