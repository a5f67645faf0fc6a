package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReceiptNumberShape(t *testing.T) {
	n := GenerateReceiptNumber(ReceiptPrefixPayment)

	parts := strings.Split(n, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "RCP", parts[0])
	assert.Len(t, parts[1], 14) // yyyymmddhhmmss
	assert.Len(t, parts[2], 6)
	assert.Equal(t, strings.ToUpper(n), n)
}

func TestGenerateReceiptNumberDistinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		n := GenerateReceiptNumber(ReceiptPrefixRefund)
		assert.False(t, seen[n], "receipt number repeated: %s", n)
		seen[n] = true
	}
}
