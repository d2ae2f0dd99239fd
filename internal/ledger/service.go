// Package ledger persists normalized transactions in a ledger directory and
// enforces the dedup-by-ID contract on append: the pipeline guarantees ID
// determinism, the ledger is the "previously seen" set it joins against.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

const transactionsFile = "transactions.csv"

// ErrNothingNew is returned by Append when every parsed transaction was
// already in the ledger.
var ErrNothingNew = errors.New("all transactions already imported")

// Service reads and writes the transactions store under a ledger root.
type Service struct {
	root string
}

// NewService creates a ledger Service rooted at dir.
func NewService(dir string) *Service {
	return &Service{root: dir}
}

// Path returns the location of the transactions file.
func (s *Service) Path() string {
	return filepath.Join(s.root, transactionsFile)
}

// ReadAll returns every stored transaction in append order. A missing file
// is an empty ledger, not an error.
func (s *Service) ReadAll() ([]model.Transaction, error) {
	f, err := os.Open(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return txns, nil
}

// Append stores the transactions that are not already present, keyed by ID,
// and returns them. Returns ErrNothingNew when txns is non-empty but every
// ID was already stored.
func (s *Service) Append(txns []model.Transaction) ([]model.Transaction, error) {
	existing, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t.ID] = true
	}

	var fresh []model.Transaction
	for _, t := range txns {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		fresh = append(fresh, t)
	}

	if len(fresh) == 0 {
		if len(txns) > 0 {
			return nil, ErrNothingNew
		}
		return nil, nil
	}

	if verrs := Validate(fresh); len(verrs) > 0 {
		return nil, fmt.Errorf("invalid transactions: %w", errors.Join(verrs...))
	}

	if err := s.appendRows(fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Rewrite replaces the whole store contents, preserving order. Used when
// categories are reassigned in bulk.
func (s *Service) Rewrite(txns []model.Transaction) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	f, err := os.Create(s.Path())
	if err != nil {
		return fmt.Errorf("creating ledger: %w", err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

// Clear removes the transactions store. Categories and payee mappings are
// not touched.
func (s *Service) Clear() error {
	err := os.Remove(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Service) appendRows(txns []model.Transaction) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	path := s.Path()
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, txns); err != nil {
		return fmt.Errorf("appending transactions: %w", err)
	}
	return nil
}
