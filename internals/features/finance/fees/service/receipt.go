// file: internals/features/finance/fees/service/receipt.go
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Receipt prefixes per jenis entri.
const (
	ReceiptPrefixPayment  = "RCP"
	ReceiptPrefixRefund   = "RFD"
	ReceiptPrefixCheckout = "ONL"
)

// GenerateReceiptNumber builds a unique receipt/reference number:
// time-based body + random suffix, e.g. "RCP-20260828143015-7F3A1C".
// Uniqueness is still enforced by the DB unique index.
func GenerateReceiptNumber(prefix string) string {
	ts := time.Now().UTC().Format("20060102150405")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, ts, suffix)
}
