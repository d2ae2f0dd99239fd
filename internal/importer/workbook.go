package importer

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Sentinel decode errors surfaced to the caller's UI layer.
var (
	// ErrPasswordRequired means the workbook is encrypted and no password
	// was supplied.
	ErrPasswordRequired = errors.New("workbook is encrypted: password required")
	// ErrWrongPassword means a password was supplied but decryption failed.
	ErrWrongPassword = errors.New("workbook password is not correct")
	// ErrEmptyFile means the workbook has no sheets or an empty first sheet.
	ErrEmptyFile = errors.New("workbook has no data")
)

// FileError wraps any other unrecoverable decode failure.
type FileError struct {
	Err error
}

func (e *FileError) Error() string { return "reading workbook: " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// TableNotFoundError means no row matched the bank profile's header keywords.
type TableNotFoundError struct {
	Bank model.Bank
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("could not locate the %s transaction table", e.Bank)
}

// Cell is one raw spreadsheet cell. Date-formatted cells carry a decoded
// calendar date in addition to their display text.
type Cell struct {
	Text    string
	Date    time.Time
	HasDate bool
}

func (c Cell) present() bool {
	return c.HasDate || strings.TrimSpace(c.Text) != ""
}

var (
	zipMagic  = []byte{'P', 'K', 0x03, 0x04}
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

	// "EncryptedPackage" as the UTF-16LE directory entry name used by
	// ECMA-376 encrypted containers.
	encryptedPackageName = utf16le("EncryptedPackage")
)

func utf16le(s string) []byte {
	b := make([]byte, 0, len(s)*2)
	for _, r := range s {
		b = append(b, byte(r), 0)
	}
	return b
}

// decodeWorkbook opens a spreadsheet binary and returns the rows of its
// first sheet. The format is sniffed from magic bytes: a ZIP container is
// xlsx; an OLE2 compound file is either a legacy xls workbook or an
// encrypted xlsx, tried in that order.
func decodeWorkbook(data []byte, password string) ([][]Cell, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return decodeXLSX(data, password)
	case bytes.HasPrefix(data, ole2Magic):
		// Encrypted OOXML workbooks live in an OLE2 container too; they
		// carry an EncryptedPackage stream instead of a BIFF workbook.
		if bytes.Contains(data, encryptedPackageName) {
			return decodeXLSX(data, password)
		}
		rows, err := decodeXLS(data)
		if err == nil {
			return rows, nil
		}
		return decodeXLSX(data, password)
	default:
		return decodeXLSX(data, password)
	}
}

func decodeXLSX(data []byte, password string) ([][]Cell, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{Password: password})
	if err != nil {
		return nil, classifyOpenError(err, password)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, &FileError{Err: err}
	}
	if len(raw) == 0 {
		return nil, ErrEmptyFile
	}

	rows := make([][]Cell, len(raw))
	for i, r := range raw {
		cells := make([]Cell, len(r))
		for j, text := range r {
			cells[j] = Cell{Text: text}
			if d, ok := nativeDate(f, sheet, i, j); ok {
				cells[j].Date = d
				cells[j].HasDate = true
			}
		}
		rows[i] = cells
	}
	return rows, nil
}

// classifyOpenError maps excelize failures onto the decode error taxonomy,
// preferring its structured error values over message inspection.
func classifyOpenError(err error, password string) error {
	if errors.Is(err, excelize.ErrWorkbookPassword) {
		if password == "" {
			return ErrPasswordRequired
		}
		return ErrWrongPassword
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "decrypt") || strings.Contains(msg, "encrypted") {
		if password == "" {
			return ErrPasswordRequired
		}
		return ErrWrongPassword
	}
	return &FileError{Err: err}
}

// nativeDate reports the decoded calendar date of a cell whose style is a
// date number format. Returns false for everything else.
func nativeDate(f *excelize.File, sheet string, row, col int) (time.Time, bool) {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return time.Time{}, false
	}
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return time.Time{}, false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil || !isDateNumFmt(style) {
		return time.Time{}, false
	}
	raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return time.Time{}, false
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

func isDateNumFmt(style *excelize.Style) bool {
	// Builtin date formats (excluding time-only 45-47).
	if (style.NumFmt >= 14 && style.NumFmt <= 22) || (style.NumFmt >= 27 && style.NumFmt <= 36) {
		return true
	}
	if style.CustomNumFmt != nil {
		fmtStr := strings.ToLower(*style.CustomNumFmt)
		return strings.Contains(fmtStr, "y") && strings.Contains(fmtStr, "d")
	}
	return false
}

func decodeXLS(data []byte) ([][]Cell, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FileError{Err: err}
	}

	sheets := wb.GetSheets()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	var rows [][]Cell
	for _, r := range sheets[0].GetRows() {
		var cells []Cell
		for _, c := range r.GetCols() {
			cells = append(cells, Cell{Text: c.GetString()})
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}
