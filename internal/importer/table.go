package importer

import "strings"

// locateHeader returns the index of the first row where any cell,
// lower-cased, contains any of the profile's header keywords. Rows before it
// are preamble (statement titles, account summaries) and are discarded by
// the caller.
func locateHeader(rows [][]Cell, p Profile) (int, error) {
	for i, row := range rows {
		for _, cell := range row {
			text := strings.ToLower(cell.Text)
			if text == "" {
				continue
			}
			for _, kw := range p.HeaderKeywords {
				if strings.Contains(text, kw) {
					return i, nil
				}
			}
		}
	}
	return 0, &TableNotFoundError{Bank: p.Bank}
}
