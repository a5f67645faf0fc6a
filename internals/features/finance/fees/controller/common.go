// file: internals/features/finance/fees/controller/common.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
)

var validate = validator.New()

// httpError memetakan taksonomi error ledger → HTTP status.
// Error non-domain jatuh ke 500 generik tanpa membocorkan detail internal.
func httpError(c *fiber.Ctx, err error) error {
	if kind, ok := service.KindOf(err); ok {
		switch kind {
		case service.ErrKindValidation:
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		case service.ErrKindNotFound:
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case service.ErrKindConflict:
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
	}
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "internal error")
}
