// file: internals/features/finance/fees/service/ledger_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
)

/* =========================================================
   FeeLedgerService — inti ledger

   Setiap mutasi berjalan dalam satu transaksi dengan row lock
   (SELECT ... FOR UPDATE) pada fee record, jadi dua payment
   bersamaan terhadap fee yang sama diserialisasi per fee id.
   Konflik tulis (serialization/deadlock) di-retry terbatas
   lalu muncul sebagai ConflictError.
========================================================= */

type FeeLedgerService struct {
	DB *gorm.DB
}

func NewFeeLedgerService(db *gorm.DB) *FeeLedgerService {
	return &FeeLedgerService{DB: db}
}

const txMaxAttempts = 3

func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40p01")
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// withFeeTx runs fn inside one transaction with the fee row locked,
// retrying the whole unit on write conflicts before giving up.
func (s *FeeLedgerService) withFeeTx(ctx context.Context, schoolID, feeID uuid.UUID, fn func(tx *gorm.DB, fee *model.FeeRecordModel) error) error {
	var lastErr error
	for attempt := 0; attempt < txMaxAttempts; attempt++ {
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var fee model.FeeRecordModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("fee_record_id = ? AND fee_record_school_id = ?", feeID, schoolID).
				First(&fee).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// scope mismatch dilaporkan sama dengan tidak ada
					return errNotFound("fee record not found")
				}
				return err
			}
			return fn(tx, &fee)
		})
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err
	}
	return errConflictf("write conflict on fee record after %d attempts: %v", txMaxAttempts, lastErr)
}

// reconcileFee replays the ledger inside the transaction and persists the
// derived paid amount + status. The ledger, not the stored field, is
// authoritative.
func reconcileFee(tx *gorm.DB, fee *model.FeeRecordModel) error {
	var entries []model.FeePaymentModel
	if err := tx.
		Where("fee_payment_fee_id = ?", fee.FeeRecordID).
		Order("fee_payment_created_at ASC, fee_payment_id ASC").
		Find(&entries).Error; err != nil {
		return err
	}

	paid := SumEntries(entries)
	if paid.IsNegative() {
		// refund precondition should make this unreachable
		return errConflictf("ledger sum for fee %s is negative (%s)", fee.FeeRecordID, paid)
	}

	fee.FeeRecordPaidAmount = paid
	fee.FeeRecordStatus = Reconcile(fee.FeeRecordTotalAmount, paid, HasRefundEntry(entries))

	return tx.Model(&model.FeeRecordModel{}).
		Where("fee_record_id = ?", fee.FeeRecordID).
		Updates(map[string]interface{}{
			"fee_record_paid_amount_cents": fee.FeeRecordPaidAmount,
			"fee_record_status":            fee.FeeRecordStatus,
		}).Error
}

/* ======================= FEE RECORD STORE ======================= */

func (s *FeeLedgerService) CreateFee(ctx context.Context, schoolID uuid.UUID, req *dto.CreateFeeRecordRequest) (*model.FeeRecordModel, error) {
	if !req.FeeRecordTotalAmount.IsPositive() {
		return nil, errValidationf("total amount must be greater than zero")
	}
	if req.FeeRecordDiscount.IsNegative() {
		return nil, errValidationf("discount cannot be negative")
	}
	if req.FeeRecordDiscount.Cmp(req.FeeRecordTotalAmount) > 0 {
		return nil, errValidationf("discount %s exceeds total amount %s", req.FeeRecordDiscount, req.FeeRecordTotalAmount)
	}

	m := req.ToModel(schoolID)

	if items := req.Installments(); items != nil {
		if err := ValidateInstallments(items, req.FeeRecordTotalAmount); err != nil {
			return nil, err
		}
		if err := m.SetInstallmentPlan(items); err != nil {
			return nil, errValidationf("invalid installment plan: %v", err)
		}
	}

	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *FeeLedgerService) GetFee(ctx context.Context, schoolID, feeID uuid.UUID) (*model.FeeRecordModel, error) {
	var fee model.FeeRecordModel
	if err := s.DB.WithContext(ctx).
		Where("fee_record_id = ? AND fee_record_school_id = ?", feeID, schoolID).
		First(&fee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("fee record not found")
		}
		return nil, err
	}
	return &fee, nil
}

func (s *FeeLedgerService) ListFees(ctx context.Context, schoolID uuid.UUID, q *dto.ListFeeRecordQuery, offset, limit int) ([]model.FeeRecordModel, int64, error) {
	base := s.DB.WithContext(ctx).Model(&model.FeeRecordModel{}).
		Where("fee_record_school_id = ?", schoolID)

	if q.StudentID != nil {
		base = base.Where("fee_record_student_id = ?", *q.StudentID)
	}
	if q.FeeType != nil && *q.FeeType != "" {
		base = base.Where("fee_record_fee_type = ?", *q.FeeType)
	}
	if q.Status != nil && *q.Status != "" {
		base = base.Where("fee_record_status = ?", strings.ToUpper(*q.Status))
	}
	if q.AcademicYear != nil && *q.AcademicYear != "" {
		base = base.Where("fee_record_academic_year = ?", *q.AcademicYear)
	}
	if q.DueFrom != nil {
		base = base.Where("fee_record_due_date >= ?", *q.DueFrom)
	}
	if q.DueTo != nil {
		base = base.Where("fee_record_due_date <= ?", *q.DueTo)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.FeeRecordModel
	if err := base.
		Order("fee_record_due_date ASC, fee_record_created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateFee patches non-financial fields only. Amounts and status never
// change here; they only move through the ledger operations below.
func (s *FeeLedgerService) UpdateFee(ctx context.Context, schoolID, feeID uuid.UUID, req *dto.UpdateFeeRecordRequest) (*model.FeeRecordModel, error) {
	patch := map[string]interface{}{}
	if req.FeeRecordFeeType != nil {
		patch["fee_record_fee_type"] = *req.FeeRecordFeeType
	}
	if req.FeeRecordAcademicYear != nil {
		patch["fee_record_academic_year"] = *req.FeeRecordAcademicYear
	}
	if req.FeeRecordDueDate != nil {
		patch["fee_record_due_date"] = *req.FeeRecordDueDate
	}

	var out *model.FeeRecordModel
	err := s.withFeeTx(ctx, schoolID, feeID, func(tx *gorm.DB, fee *model.FeeRecordModel) error {
		if len(patch) == 0 {
			out = fee
			return nil
		}
		if err := tx.Model(&model.FeeRecordModel{}).
			Where("fee_record_id = ?", fee.FeeRecordID).
			Updates(patch).Error; err != nil {
			return err
		}
		if err := tx.Where("fee_record_id = ?", fee.FeeRecordID).First(fee).Error; err != nil {
			return err
		}
		out = fee
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteFee soft-deletes a fee that has no ledger history. Once any payment
// or refund entry exists the fee is permanent.
func (s *FeeLedgerService) DeleteFee(ctx context.Context, schoolID, feeID uuid.UUID) error {
	return s.withFeeTx(ctx, schoolID, feeID, func(tx *gorm.DB, fee *model.FeeRecordModel) error {
		var count int64
		if err := tx.Model(&model.FeePaymentModel{}).
			Where("fee_payment_fee_id = ?", fee.FeeRecordID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errConflictf("cannot delete fee record with recorded payments")
		}
		return tx.Delete(fee).Error
	})
}

/* ======================= PAYMENT LEDGER ======================= */

func (s *FeeLedgerService) RecordPayment(ctx context.Context, schoolID uuid.UUID, req *dto.RecordPaymentRequest) (*model.FeePaymentModel, *model.FeeRecordModel, error) {
	if !req.FeePaymentAmount.IsPositive() {
		return nil, nil, errValidationf("payment amount must be greater than zero")
	}
	if !model.IsPayableMethod(req.FeePaymentMethod) {
		return nil, nil, errValidationf("unknown payment method %q", req.FeePaymentMethod)
	}
	if err := s.checkMethodAllowed(ctx, schoolID, req.FeePaymentMethod); err != nil {
		return nil, nil, err
	}

	entry := &model.FeePaymentModel{
		FeePaymentFeeID:         req.FeePaymentFeeID,
		FeePaymentSchoolID:      schoolID,
		FeePaymentAmount:        req.FeePaymentAmount,
		FeePaymentMethod:        req.FeePaymentMethod,
		FeePaymentDate:          req.PaymentDateOrNow(),
		FeePaymentReceiptNumber: GenerateReceiptNumber(ReceiptPrefixPayment),
	}

	var fee *model.FeeRecordModel
	err := s.withFeeTx(ctx, schoolID, req.FeePaymentFeeID, func(tx *gorm.DB, f *model.FeeRecordModel) error {
		if err := tx.Create(entry).Error; err != nil {
			if isDuplicateKeyError(err) {
				return errConflictf("receipt number collision, retry the payment")
			}
			return err
		}
		if err := reconcileFee(tx, f); err != nil {
			return err
		}
		fee = f
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return entry, fee, nil
}

func (s *FeeLedgerService) RecordRefund(ctx context.Context, schoolID, actorID uuid.UUID, req *dto.RecordRefundRequest) (*model.FeePaymentModel, *model.FeeRecordModel, error) {
	if !req.FeePaymentAmount.IsPositive() {
		return nil, nil, errValidationf("refund amount must be greater than zero")
	}

	entry := &model.FeePaymentModel{
		FeePaymentFeeID:         req.FeePaymentFeeID,
		FeePaymentSchoolID:      schoolID,
		FeePaymentAmount:        req.FeePaymentAmount.Neg(),
		FeePaymentMethod:        model.PaymentMethodRefund,
		FeePaymentDate:          time.Now().UTC(),
		FeePaymentReceiptNumber: GenerateReceiptNumber(ReceiptPrefixRefund),
		FeePaymentMeta: datatypes.JSONMap{
			"refund_reason": req.RefundReason,
			"recorded_by":   actorID.String(),
		},
	}

	var fee *model.FeeRecordModel
	err := s.withFeeTx(ctx, schoolID, req.FeePaymentFeeID, func(tx *gorm.DB, f *model.FeeRecordModel) error {
		// saldo dibaca di bawah row lock, jadi pengecekan ini serial
		if err := ValidateRefund(req.FeePaymentAmount, f.FeeRecordPaidAmount); err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			if isDuplicateKeyError(err) {
				return errConflictf("receipt number collision, retry the refund")
			}
			return err
		}
		if err := reconcileFee(tx, f); err != nil {
			return err
		}
		fee = f
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return entry, fee, nil
}

// ListPayments returns the fee's ledger in append order. Read-only; served
// from a consistent snapshot, never blocks writers.
func (s *FeeLedgerService) ListPayments(ctx context.Context, schoolID, feeID uuid.UUID) ([]model.FeePaymentModel, error) {
	if _, err := s.GetFee(ctx, schoolID, feeID); err != nil {
		return nil, err
	}

	var entries []model.FeePaymentModel
	if err := s.DB.WithContext(ctx).
		Where("fee_payment_fee_id = ? AND fee_payment_school_id = ?", feeID, schoolID).
		Order("fee_payment_created_at ASC, fee_payment_id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

/* ======================= INSTALLMENT PLANNER ======================= */

// SetInstallments replaces the fee's installment plan wholesale. Paid amount
// and status are untouched; a failed validation leaves any prior plan as-is.
func (s *FeeLedgerService) SetInstallments(ctx context.Context, schoolID, feeID uuid.UUID, items []model.Installment) (*model.FeeRecordModel, error) {
	var out *model.FeeRecordModel
	err := s.withFeeTx(ctx, schoolID, feeID, func(tx *gorm.DB, fee *model.FeeRecordModel) error {
		if err := ValidateInstallments(items, fee.FeeRecordTotalAmount); err != nil {
			return err
		}
		if err := fee.SetInstallmentPlan(items); err != nil {
			return errValidationf("invalid installment plan: %v", err)
		}
		if err := tx.Model(&model.FeeRecordModel{}).
			Where("fee_record_id = ?", fee.FeeRecordID).
			Update("fee_record_installments", fee.FeeRecordInstallments).Error; err != nil {
			return err
		}
		out = fee
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ======================= LATE FEE PREVIEW ======================= */

// LateFeePreview computes the advisory late fee for a fee record. Pure
// read: nothing is posted to the ledger or written to the fee.
func (s *FeeLedgerService) LateFeePreview(ctx context.Context, schoolID, feeID uuid.UUID, evaluationDate *time.Time) (*model.FeeRecordModel, LateFeeResult, error) {
	fee, err := s.GetFee(ctx, schoolID, feeID)
	if err != nil {
		return nil, LateFeeResult{}, err
	}

	policy, err := s.lateFeePolicy(ctx, schoolID)
	if err != nil {
		return nil, LateFeeResult{}, err
	}

	evalAt := time.Now().UTC()
	if evaluationDate != nil {
		evalAt = *evaluationDate
	}
	return fee, ComputeLateFee(*fee, policy, evalAt), nil
}

/* ======================= SCHOOL SETTINGS ======================= */

// FindSettings returns nil (no error) when the school has no settings row.
func (s *FeeLedgerService) FindSettings(ctx context.Context, schoolID uuid.UUID) (*model.SchoolFinanceSettingModel, error) {
	var setting model.SchoolFinanceSettingModel
	err := s.DB.WithContext(ctx).
		Where("school_finance_setting_school_id = ?", schoolID).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (s *FeeLedgerService) UpsertSettings(ctx context.Context, schoolID uuid.UUID, req *dto.UpsertFinanceSettingRequest) (*model.SchoolFinanceSettingModel, error) {
	if req.LateFeeDailyRate.IsNegative() || req.LateFeeMaxRate.IsNegative() {
		return nil, errValidationf("late fee rates cannot be negative")
	}
	if req.LateFeeGraceDays < 0 {
		return nil, errValidationf("grace days cannot be negative")
	}

	var setting model.SchoolFinanceSettingModel
	req.Apply(&setting, schoolID)

	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "school_finance_setting_school_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"school_finance_setting_late_fee_enabled",
				"school_finance_setting_late_fee_daily_rate",
				"school_finance_setting_late_fee_max_rate",
				"school_finance_setting_late_fee_grace_days",
				"school_finance_setting_allowed_methods",
				"school_finance_setting_updated_at",
			}),
		}).
		Create(&setting).Error; err != nil {
		return nil, err
	}

	// ambil ulang supaya id & timestamps terisi dari baris final
	found, err := s.FindSettings(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return &setting, nil
	}
	return found, nil
}

func (s *FeeLedgerService) lateFeePolicy(ctx context.Context, schoolID uuid.UUID) (model.LateFeePolicy, error) {
	setting, err := s.FindSettings(ctx, schoolID)
	if err != nil {
		return model.LateFeePolicy{}, err
	}
	if setting == nil {
		return model.DefaultLateFeePolicy(), nil
	}
	return setting.LateFeePolicy(), nil
}

func (s *FeeLedgerService) checkMethodAllowed(ctx context.Context, schoolID uuid.UUID, method model.PaymentMethod) error {
	setting, err := s.FindSettings(ctx, schoolID)
	if err != nil {
		return err
	}
	if setting != nil && !setting.MethodAllowed(method) {
		return errValidationf("payment method %q is not accepted by this school", method)
	}
	return nil
}
