package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Bank identifies a supported statement layout.
type Bank string

const (
	BankPNB  Bank = "PNB"
	BankHDFC Bank = "HDFC"
	BankSBI  Bank = "SBI"
	// BankManual tags hand-entered transactions; it never goes through the
	// statement pipeline.
	BankManual Bank = "Manual"
)

// Banks lists every known bank tag.
func Banks() []Bank {
	return []Bank{BankPNB, BankHDFC, BankSBI, BankManual}
}

// ParseBank resolves a bank tag case-insensitively.
func ParseBank(s string) (Bank, error) {
	for _, b := range Banks() {
		if strings.EqualFold(s, string(b)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown bank %q", s)
}

// Direction says whether a transaction decreases or increases the balance.
type Direction string

const (
	Debit  Direction = "Debit"
	Credit Direction = "Credit"
)

// ParseDirection resolves a direction case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch {
	case strings.EqualFold(s, string(Debit)):
		return Debit, nil
	case strings.EqualFold(s, string(Credit)):
		return Credit, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Transaction is one normalized statement row.
type Transaction struct {
	ID        string
	Date      time.Time // day precision, UTC midnight
	Direction Direction
	Amount    decimal.Decimal // always positive; sign comes from Direction
	Narration string          // original bank description, verbatim
	Payee     string          // derived counterparty label, never empty
	Category  string          // assigned by the category service, not the pipeline
	Bank      Bank
}

// Signed returns the amount with the direction applied: debits negative,
// credits positive.
func (t Transaction) Signed() decimal.Decimal {
	if t.Direction == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
