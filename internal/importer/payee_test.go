package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func TestExtractPayee_BankAccSlashForm(t *testing.T) {
	got := ExtractPayee("UPI/BANK ACC/JOHN DOE/ref123", model.BankPNB)
	assert.Equal(t, "Bank Acc - JOHN DOE", got)
}

func TestExtractPayee_BankAccSpaceForm(t *testing.T) {
	got := ExtractPayee("BANK ACC JOHN", model.BankHDFC)
	assert.Equal(t, "Bank Acc - JOHN", got)
}

func TestExtractPayee_NEFTThirdSegment(t *testing.T) {
	got := ExtractPayee("NEFT CR-AXIS123-ACME CORP-payment for invoice", model.BankHDFC)
	assert.Equal(t, "ACME CORP", got)
}

func TestExtractPayee_IMPSShortCandidateFallsThrough(t *testing.T) {
	// Third segment "AB" is too short; the generic rule strips "IMPS-" and
	// keeps the text before the first remaining dash.
	got := ExtractPayee("IMPS-123-AB-x", model.BankPNB)
	assert.Equal(t, "123", got)
}

func TestExtractPayee_UPISBILastSegment(t *testing.T) {
	got := ExtractPayee("TO TRANSFER-UPI/DR/998877/AMAZON PAY/AMAZON", model.BankSBI)
	assert.Equal(t, "AMAZON", got)
}

func TestExtractPayee_UPIGenericFourthSegment(t *testing.T) {
	got := ExtractPayee("UPI/DR/998877/ZOMATO/okhdfc", model.BankPNB)
	assert.Equal(t, "ZOMATO", got)
}

func TestExtractPayee_UPITooFewSegments(t *testing.T) {
	// Only three segments for a non-SBI bank: fall through to generic, which
	// strips the "UPI-" marker nowhere (no dash) and cuts at the first "/".
	got := ExtractPayee("UPI/998877/X", model.BankPNB)
	assert.Equal(t, "UPI", got)
}

func TestExtractPayee_HDFCUPIDashForm(t *testing.T) {
	got := ExtractPayee("UPI-ZOMATO-zomato@ybl-ref", model.BankHDFC)
	assert.Equal(t, "ZOMATO", got)
}

func TestExtractPayee_HDFCDashFormOnlyForHDFC(t *testing.T) {
	// Same narration for PNB skips rule 4: generic strips "UPI-" and cuts at
	// the first remaining dash.
	got := ExtractPayee("UPI-ZOMATO-zomato@ybl-ref", model.BankPNB)
	assert.Equal(t, "ZOMATO", got)
}

func TestExtractPayee_SBITransferPhrase(t *testing.T) {
	got := ExtractPayee("Transfer to JOHN DOE - UPI", model.BankSBI)
	assert.Equal(t, "JOHN DOE", got)
}

func TestExtractPayee_SBITransferWordFallback(t *testing.T) {
	got := ExtractPayee("Transfer to savings account number 88", model.BankSBI)
	assert.Equal(t, "savings account number", got)
}

func TestExtractPayee_GenericKeepsUnrecognizedText(t *testing.T) {
	got := ExtractPayee("XYZ RANDOM TEXT", model.BankPNB)
	assert.Equal(t, "XYZ RANDOM TEXT", got)
}

func TestExtractPayee_ATMWDLSurvives(t *testing.T) {
	// The prefix strip requires a trailing dash, so neither token matches.
	got := ExtractPayee("ATM WDL", model.BankPNB)
	assert.Equal(t, "ATM WDL", got)
}

func TestExtractPayee_SentinelWhenNothingLeft(t *testing.T) {
	got := ExtractPayee("UPI-/x", model.BankPNB)
	assert.Equal(t, FallbackPayee, got)
}

func TestExtractPayee_RuleOrderBankAccBeforeUPI(t *testing.T) {
	// Narration matches both rule 1 and rule 3; rule 1 wins.
	got := ExtractPayee("UPI/BANK ACC/ALICE/UPI/x/y", model.BankPNB)
	assert.Equal(t, "Bank Acc - ALICE", got)
}

func TestExtractPayee_Deterministic(t *testing.T) {
	n := "NEFT DR-REF1-SOMEONE ELSE-x"
	assert.Equal(t, ExtractPayee(n, model.BankSBI), ExtractPayee(n, model.BankSBI))
}
