// Package id derives stable transaction identifiers so that re-importing the
// same statement file yields the same IDs and duplicates can be skipped.
package id

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// transferPattern matches SBI "Transfer to/from <counterparty> -" narrations.
var transferPattern = regexp.MustCompile(`(?i)Transfer (?:to|from) (.*?) -`)

// Ref builds an ID from the statement's own reference number. This is the
// preferred form: it is stable across re-imports.
func Ref(bank model.Bank, ref string) string {
	return fmt.Sprintf("%s-%s", bank, strings.TrimSpace(ref))
}

// Transfer builds an ID from the counterparty named in an SBI transfer
// narration, for rows that carry no reference number. Returns "" when the
// narration does not match the transfer phrasing.
func Transfer(bank model.Bank, narration string, date time.Time) string {
	m := transferPattern.FindStringSubmatch(narration)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s-%d", bank, strings.TrimSpace(m[1]), date.UnixMilli())
}

// Fallback builds a positional ID for rows with no usable reference. It is
// unique within one import but NOT stable across re-imports if upstream row
// ordering or filtering shifts; callers must not rely on it for dedup of
// edited statements.
func Fallback(bank model.Bank, index int, date time.Time) string {
	return fmt.Sprintf("%s-txn-%d-%d", bank, index, date.UnixMilli())
}

// Manual builds an ID for a hand-entered transaction.
func Manual(now time.Time) string {
	return fmt.Sprintf("manual-%d", now.UnixMilli())
}
