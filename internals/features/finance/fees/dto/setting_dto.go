// file: internals/features/finance/fees/dto/setting_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/finance/fees/model"
)

/* =========================================================
   SCHOOL FINANCE SETTINGS — DTO
========================================================= */

type UpsertFinanceSettingRequest struct {
	LateFeeEnabled   bool            `json:"late_fee_enabled"`
	LateFeeDailyRate decimal.Decimal `json:"late_fee_daily_rate"`
	LateFeeMaxRate   decimal.Decimal `json:"late_fee_max_rate"`
	LateFeeGraceDays int             `json:"late_fee_grace_days" validate:"gte=0"`

	AllowedMethods []string `json:"allowed_methods,omitempty" validate:"omitempty,dive,oneof=CASH CARD ONLINE CHEQUE BANK_TRANSFER MIDTRANS QRIS"`
}

func (r *UpsertFinanceSettingRequest) Apply(m *model.SchoolFinanceSettingModel, schoolID uuid.UUID) {
	m.SchoolFinanceSettingSchoolID = schoolID
	m.SchoolFinanceSettingLateFeeEnabled = r.LateFeeEnabled
	m.SchoolFinanceSettingLateFeeDailyRate = r.LateFeeDailyRate
	m.SchoolFinanceSettingLateFeeMaxRate = r.LateFeeMaxRate
	m.SchoolFinanceSettingLateFeeGraceDays = r.LateFeeGraceDays
	m.SchoolFinanceSettingAllowedMethods = r.AllowedMethods
}

type FinanceSettingResponse struct {
	SchoolFinanceSettingID       uuid.UUID       `json:"school_finance_setting_id"`
	SchoolFinanceSettingSchoolID uuid.UUID       `json:"school_finance_setting_school_id"`
	LateFeeEnabled               bool            `json:"late_fee_enabled"`
	LateFeeDailyRate             decimal.Decimal `json:"late_fee_daily_rate"`
	LateFeeMaxRate               decimal.Decimal `json:"late_fee_max_rate"`
	LateFeeGraceDays             int             `json:"late_fee_grace_days"`
	AllowedMethods               []string        `json:"allowed_methods,omitempty"`
	UpdatedAt                    time.Time       `json:"updated_at"`
}

func FromSettingModel(m model.SchoolFinanceSettingModel) FinanceSettingResponse {
	return FinanceSettingResponse{
		SchoolFinanceSettingID:       m.SchoolFinanceSettingID,
		SchoolFinanceSettingSchoolID: m.SchoolFinanceSettingSchoolID,
		LateFeeEnabled:               m.SchoolFinanceSettingLateFeeEnabled,
		LateFeeDailyRate:             m.SchoolFinanceSettingLateFeeDailyRate,
		LateFeeMaxRate:               m.SchoolFinanceSettingLateFeeMaxRate,
		LateFeeGraceDays:             m.SchoolFinanceSettingLateFeeGraceDays,
		AllowedMethods:               m.SchoolFinanceSettingAllowedMethods,
		UpdatedAt:                    m.SchoolFinanceSettingUpdatedAt,
	}
}
