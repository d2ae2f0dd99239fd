package ledger

import (
	"fmt"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Validate checks the store invariants for a batch of transactions before it
// is written: unique non-empty IDs, positive amounts, a valid direction, and
// non-empty narration and payee.
func Validate(txns []model.Transaction) []error {
	var errs []error
	ids := make(map[string]bool, len(txns))

	for i, t := range txns {
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("transaction %d: empty id", i))
		} else if ids[t.ID] {
			errs = append(errs, fmt.Errorf("transaction %d: duplicate id %q", i, t.ID))
		}
		ids[t.ID] = true

		if !t.Amount.IsPositive() {
			errs = append(errs, fmt.Errorf("transaction %d (%s): amount must be positive, got %s", i, t.ID, t.Amount))
		}
		if t.Direction != model.Debit && t.Direction != model.Credit {
			errs = append(errs, fmt.Errorf("transaction %d (%s): invalid direction %q", i, t.ID, t.Direction))
		}
		if t.Narration == "" {
			errs = append(errs, fmt.Errorf("transaction %d (%s): empty narration", i, t.ID))
		}
		if t.Payee == "" {
			errs = append(errs, fmt.Errorf("transaction %d (%s): empty payee", i, t.ID))
		}
		if t.Date.IsZero() {
			errs = append(errs, fmt.Errorf("transaction %d (%s): zero date", i, t.ID))
		}
	}
	return errs
}
