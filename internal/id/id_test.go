package id

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestRef(t *testing.T) {
	assert.Equal(t, "PNB-S12345", Ref(model.BankPNB, "S12345"))
	assert.Equal(t, "HDFC-000123", Ref(model.BankHDFC, "  000123  "))
}

func TestRef_Deterministic(t *testing.T) {
	a := Ref(model.BankSBI, "REF9")
	b := Ref(model.BankSBI, "REF9")
	assert.Equal(t, a, b)
}

func TestTransfer_Matches(t *testing.T) {
	d := date(2024, 4, 1)
	got := Transfer(model.BankSBI, "Transfer to JOHN DOE -UPI/123", d)
	assert.Equal(t, "SBI-JOHN DOE-"+millis(d), got)
}

func TestTransfer_CaseInsensitive(t *testing.T) {
	d := date(2024, 4, 1)
	got := Transfer(model.BankSBI, "TRANSFER FROM ACME CORP - NEFT", d)
	assert.Equal(t, "SBI-ACME CORP-"+millis(d), got)
}

func TestTransfer_NoMatch(t *testing.T) {
	assert.Empty(t, Transfer(model.BankSBI, "ATM WDL", date(2024, 4, 1)))
}

func TestFallback(t *testing.T) {
	d := date(2023, 6, 5)
	assert.Equal(t, "PNB-txn-7-"+millis(d), Fallback(model.BankPNB, 7, d))
}

func TestManual(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "manual-"+millis(now), Manual(now))
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
