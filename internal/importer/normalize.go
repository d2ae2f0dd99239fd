package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// normalizeRows maps every data row after the header into zero or one
// Transaction. Rows that cannot be normalized are skipped silently: partial
// import beats total failure for statements that mix transactions with
// balance lines and footers.
func normalizeRows(rows [][]Cell, headerIdx int, p Profile) []model.Transaction {
	header := rows[headerIdx]
	cols := make(map[string]int, len(header))
	for i, c := range header {
		label := strings.TrimSpace(c.Text)
		if label == "" {
			continue
		}
		if _, ok := cols[label]; !ok {
			cols[label] = i
		}
	}

	var txns []model.Transaction
	for i, row := range rows[headerIdx+1:] {
		if t, ok := normalizeRow(row, i, cols, p); ok {
			txns = append(txns, t)
		}
	}
	return txns
}

// lookup resolves the first alias present with a non-empty cell in the row.
func lookup(row []Cell, cols map[string]int, aliases []string) (Cell, bool) {
	for _, a := range aliases {
		idx, ok := cols[a]
		if !ok || idx >= len(row) {
			continue
		}
		if c := row[idx]; c.present() {
			return c, true
		}
	}
	return Cell{}, false
}

func normalizeRow(row []Cell, index int, cols map[string]int, p Profile) (model.Transaction, bool) {
	if len(row) == 0 {
		return model.Transaction{}, false
	}

	dateCell, ok := lookup(row, cols, p.Aliases[FieldDate])
	if !ok {
		return model.Transaction{}, false
	}
	remarksCell, ok := lookup(row, cols, p.Aliases[FieldRemarks])
	if !ok || strings.TrimSpace(remarksCell.Text) == "" {
		return model.Transaction{}, false
	}
	narration := remarksCell.Text

	date, ok := parseDate(dateCell)
	if !ok {
		return model.Transaction{}, false
	}

	debitCell, _ := lookup(row, cols, p.Aliases[FieldDebit])
	creditCell, _ := lookup(row, cols, p.Aliases[FieldCredit])
	dir, amount, ok := parseAmounts(debitCell.Text, creditCell.Text)
	if !ok {
		return model.Transaction{}, false
	}

	return model.Transaction{
		ID:        resolveID(p.Bank, row, cols, p, narration, date, index),
		Date:      date,
		Direction: dir,
		Amount:    amount,
		Narration: narration,
		Payee:     ExtractPayee(narration, p.Bank),
		Bank:      p.Bank,
	}, true
}

// resolveID prefers the statement's reference number, then the SBI transfer
// counterparty, then a positional fallback.
func resolveID(bank model.Bank, row []Cell, cols map[string]int, p Profile, narration string, date time.Time, index int) string {
	if ref, ok := lookup(row, cols, p.Aliases[FieldReference]); ok && strings.TrimSpace(ref.Text) != "" {
		return id.Ref(bank, ref.Text)
	}
	if bank == model.BankSBI {
		if tid := id.Transfer(bank, narration, date); tid != "" {
			return tid
		}
	}
	return id.Fallback(bank, index, date)
}

// parseDate accepts a natively decoded date or a d/m/y text form. Text dates
// split on "/" or "-" into exactly three numeric parts; a two-digit year is
// promoted by adding 2000. Anything else, including impossible calendar
// dates, rejects the row.
func parseDate(c Cell) (time.Time, bool) {
	if c.HasDate {
		return c.Date, true
	}

	s := strings.TrimSpace(c.Text)
	parts := strings.Split(strings.ReplaceAll(s, "/", "-"), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	yearStr := strings.TrimSpace(parts[2])
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	if len(yearStr) == 2 {
		year += 2000
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// parseAmounts applies the debit-wins-first rule: a positive debit value
// makes the row a Debit and the credit column is ignored; otherwise a
// positive credit value makes it a Credit; otherwise the row is dropped.
func parseAmounts(debit, credit string) (model.Direction, decimal.Decimal, bool) {
	if d, ok := parseAmount(debit); ok {
		return model.Debit, d, true
	}
	if c, ok := parseAmount(credit); ok {
		return model.Credit, c, true
	}
	return "", decimal.Decimal{}, false
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}
