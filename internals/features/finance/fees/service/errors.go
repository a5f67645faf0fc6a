// file: internals/features/finance/fees/service/errors.go
package service

import (
	"errors"
	"fmt"
)

/* =========================================================
   Taksonomi error ledger

   Semua error domain keluar sebagai *LedgerError dengan satu
   dari tiga kind; controller memetakan kind → HTTP status.
   School-scope mismatch sengaja dilaporkan sebagai not_found
   supaya eksistensi data lintas tenant tidak bocor.
========================================================= */

type ErrKind string

const (
	ErrKindValidation ErrKind = "validation"
	ErrKindNotFound   ErrKind = "not_found"
	ErrKindConflict   ErrKind = "conflict"
)

type LedgerError struct {
	Kind    ErrKind
	Message string
}

func (e *LedgerError) Error() string { return e.Message }

func errValidationf(format string, args ...any) error {
	return &LedgerError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

func errNotFound(message string) error {
	return &LedgerError{Kind: ErrKindNotFound, Message: message}
}

func errConflictf(format string, args ...any) error {
	return &LedgerError{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ledger error kind, when err is one.
func KindOf(err error) (ErrKind, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return "", false
}
