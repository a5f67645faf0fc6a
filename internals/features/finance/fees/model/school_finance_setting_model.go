// file: internals/features/finance/fees/model/school_finance_setting_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

/* =========================================================
   MODEL school_finance_settings — satu baris per sekolah

   Menyimpan kebijakan denda keterlambatan + metode pembayaran
   yang diterima. Kalau sekolah belum punya baris, dipakai
   DefaultLateFeePolicy (denda nonaktif, semua metode boleh).
========================================================= */

type SchoolFinanceSettingModel struct {
	// PK
	SchoolFinanceSettingID uuid.UUID `gorm:"column:school_finance_setting_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_finance_setting_id"`

	// Tenant (satu setting per sekolah)
	SchoolFinanceSettingSchoolID uuid.UUID `gorm:"column:school_finance_setting_school_id;type:uuid;not null;uniqueIndex:uq_school_finance_settings_school" json:"school_finance_setting_school_id"`

	// Late fee policy
	SchoolFinanceSettingLateFeeEnabled   bool            `gorm:"column:school_finance_setting_late_fee_enabled;not null;default:false" json:"school_finance_setting_late_fee_enabled"`
	SchoolFinanceSettingLateFeeDailyRate decimal.Decimal `gorm:"column:school_finance_setting_late_fee_daily_rate;type:numeric(8,6);not null;default:0" json:"school_finance_setting_late_fee_daily_rate"`
	SchoolFinanceSettingLateFeeMaxRate   decimal.Decimal `gorm:"column:school_finance_setting_late_fee_max_rate;type:numeric(8,6);not null;default:0" json:"school_finance_setting_late_fee_max_rate"`
	SchoolFinanceSettingLateFeeGraceDays int             `gorm:"column:school_finance_setting_late_fee_grace_days;not null;default:0;check:school_finance_setting_late_fee_grace_days>=0" json:"school_finance_setting_late_fee_grace_days"`

	// Metode pembayaran yang diterima sekolah; kosong = semua
	SchoolFinanceSettingAllowedMethods pq.StringArray `gorm:"column:school_finance_setting_allowed_methods;type:text[]" json:"school_finance_setting_allowed_methods,omitempty"`

	// Timestamps
	SchoolFinanceSettingCreatedAt time.Time `gorm:"column:school_finance_setting_created_at;not null;autoCreateTime" json:"school_finance_setting_created_at"`
	SchoolFinanceSettingUpdatedAt time.Time `gorm:"column:school_finance_setting_updated_at;not null;autoUpdateTime" json:"school_finance_setting_updated_at"`
}

func (SchoolFinanceSettingModel) TableName() string { return "school_finance_settings" }

/* ===================== Late fee policy view ===================== */

// LateFeePolicy is the calculator's input: rates are fractions of the fee
// total (dailyRate per day late, maxRate as the cap; 0 = no cap).
type LateFeePolicy struct {
	Enabled   bool            `json:"enabled"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	MaxRate   decimal.Decimal `json:"max_rate"`
	GraceDays int             `json:"grace_days"`
}

func DefaultLateFeePolicy() LateFeePolicy {
	return LateFeePolicy{Enabled: false}
}

func (m *SchoolFinanceSettingModel) LateFeePolicy() LateFeePolicy {
	return LateFeePolicy{
		Enabled:   m.SchoolFinanceSettingLateFeeEnabled,
		DailyRate: m.SchoolFinanceSettingLateFeeDailyRate,
		MaxRate:   m.SchoolFinanceSettingLateFeeMaxRate,
		GraceDays: m.SchoolFinanceSettingLateFeeGraceDays,
	}
}

// MethodAllowed reports whether the school accepts the given payment method.
// An empty allow-list means every payable method is accepted.
func (m *SchoolFinanceSettingModel) MethodAllowed(method PaymentMethod) bool {
	if len(m.SchoolFinanceSettingAllowedMethods) == 0 {
		return true
	}
	for _, s := range m.SchoolFinanceSettingAllowedMethods {
		if PaymentMethod(s) == method {
			return true
		}
	}
	return false
}
