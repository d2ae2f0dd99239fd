package importer

import "github.com/ledgerline-dev/ledgerline/internal/model"

// Field is a canonical column in the normalized schema.
type Field int

const (
	FieldDate Field = iota
	FieldRemarks
	FieldReference
	FieldDebit
	FieldCredit
)

// Profile describes how to locate and read one bank's statement layout.
// Profiles are pure data; the same locate/normalize code runs for every bank.
type Profile struct {
	Bank model.Bank

	// HeaderKeywords are lowercase substrings; the first row containing any
	// of them in any cell is the header row.
	HeaderKeywords []string

	// Aliases maps each canonical field to acceptable source header labels,
	// in priority order. The first label present with a non-empty cell wins.
	Aliases map[Field][]string
}

var profiles = map[model.Bank]Profile{
	model.BankPNB: {
		Bank:           model.BankPNB,
		HeaderKeywords: []string{"txn date", "description"},
		Aliases: map[Field][]string{
			FieldDate:      {"Txn Date"},
			FieldRemarks:   {"Description"},
			FieldReference: {"Txn No.", "Reference No."},
			FieldDebit:     {"Dr Amount"},
			FieldCredit:    {"Cr Amount"},
		},
	},
	model.BankHDFC: {
		Bank:           model.BankHDFC,
		HeaderKeywords: []string{"narration", "withdrawal amt."},
		Aliases: map[Field][]string{
			FieldDate:      {"Date"},
			FieldRemarks:   {"Narration"},
			FieldReference: {"Chq./Ref.No."},
			FieldDebit:     {"Withdrawal Amt."},
			FieldCredit:    {"Deposit Amt."},
		},
	},
	model.BankSBI: {
		Bank:           model.BankSBI,
		HeaderKeywords: []string{"details", "ref no./cheque no."},
		Aliases: map[Field][]string{
			FieldDate:      {"Date"},
			FieldRemarks:   {"Details"},
			FieldReference: {"Ref No./Cheque No."},
			FieldDebit:     {"Debit"},
			FieldCredit:    {"Credit"},
		},
	},
	// Manual entries are created directly and never parsed from a file.
	model.BankManual: {
		Bank:    model.BankManual,
		Aliases: map[Field][]string{},
	},
}

// ProfileFor returns the profile for a bank.
func ProfileFor(bank model.Bank) (Profile, bool) {
	p, ok := profiles[bank]
	return p, ok
}
