// Package importer turns bank statement spreadsheets into normalized
// transactions: decode the workbook, locate the transaction table, map each
// row through the bank's column aliases, and derive a stable identity and a
// counterparty label per row.
package importer

import (
	"fmt"
	"io"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Parse reads a statement spreadsheet and returns its transactions in
// source-row order. password may be empty; it is only consulted when the
// workbook is encrypted. Parse holds no state across calls.
//
// Failures: ErrPasswordRequired, ErrWrongPassword, ErrEmptyFile,
// *FileError, *TableNotFoundError. Rows that cannot be normalized are
// skipped, not reported.
func Parse(r io.Reader, bank model.Bank, password string) ([]model.Transaction, error) {
	if bank == model.BankManual {
		return nil, fmt.Errorf("bank %s has no statement layout", bank)
	}
	profile, ok := ProfileFor(bank)
	if !ok {
		return nil, fmt.Errorf("unknown bank %q", bank)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FileError{Err: err}
	}

	rows, err := decodeWorkbook(data, password)
	if err != nil {
		return nil, err
	}

	headerIdx, err := locateHeader(rows, profile)
	if err != nil {
		return nil, err
	}

	return normalizeRows(rows, headerIdx, profile), nil
}
