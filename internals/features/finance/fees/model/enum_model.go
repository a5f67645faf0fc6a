// file: internals/features/finance/fees/model/enum_model.go
package model

type FeeStatus string
type PaymentMethod string

/* ===== enum fee_status (mirror DB) =====
Status diturunkan dari saldo ledger, tidak pernah di-set langsung oleh caller. */
const (
	FeeStatusDue      FeeStatus = "DUE"
	FeeStatusPartial  FeeStatus = "PARTIAL"
	FeeStatusPaid     FeeStatus = "PAID"
	FeeStatusRefunded FeeStatus = "REFUNDED"
)

/* ===== enum payment_method (mirror DB) ===== */
const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodOnline       PaymentMethod = "ONLINE"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodRefund       PaymentMethod = "REFUND"

	// gateway-specific tags
	PaymentMethodMidtrans PaymentMethod = "MIDTRANS"
	PaymentMethodQRIS     PaymentMethod = "QRIS"
)

// PayableMethods are the methods a caller may record a payment with.
// REFUND is reserved for refund entries written by the ledger itself.
var PayableMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodOnline,
	PaymentMethodCheque,
	PaymentMethodBankTransfer,
	PaymentMethodMidtrans,
	PaymentMethodQRIS,
}

func IsPayableMethod(m PaymentMethod) bool {
	for _, pm := range PayableMethods {
		if pm == m {
			return true
		}
	}
	return false
}

/* ===== fee types (category tag, free-form with common values) ===== */
const (
	FeeTypeTuition   = "tuition"
	FeeTypeTransport = "transport"
	FeeTypeLibrary   = "library"
	FeeTypeExam      = "exam"
	FeeTypeUniform   = "uniform"
	FeeTypeOther     = "other"
)

/* ===== enum checkout_status (gateway intents) ===== */
type CheckoutStatus string

const (
	CheckoutStatusInitiated CheckoutStatus = "initiated"
	CheckoutStatusSettled   CheckoutStatus = "settled"
	CheckoutStatusExpired   CheckoutStatus = "expired"
	CheckoutStatusCanceled  CheckoutStatus = "canceled"
)
