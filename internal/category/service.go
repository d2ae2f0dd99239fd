// Package category manages the user's spending categories and the learned
// payee to category mapping. The mapping is the join key between the
// pipeline's derived payees and the user's categorization: once a payee is
// mapped, every future import of that payee is categorized automatically.
package category

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

const (
	categoriesFile = "categories.yaml"
	payeeMapFile   = "payee-map.json"
)

// Service reads and writes category state under a ledger root.
type Service struct {
	root string
}

// NewService creates a category Service rooted at dir.
func NewService(dir string) *Service {
	return &Service{root: dir}
}

// Categories returns the saved category set, or the defaults when none has
// been saved yet.
func (s *Service) Categories() ([]model.Category, error) {
	data, err := os.ReadFile(filepath.Join(s.root, categoriesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return model.DefaultCategories(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	var cats []model.Category
	if err := yaml.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}
	return cats, nil
}

// SaveCategories writes the category set.
func (s *Service) SaveCategories(cats []model.Category) error {
	data, err := yaml.Marshal(cats)
	if err != nil {
		return fmt.Errorf("marshaling categories: %w", err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, categoriesFile), data, 0o644); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}

// Add creates a new category. The ID must be unused.
func (s *Service) Add(id string, typ model.CategoryType) error {
	cats, err := s.Categories()
	if err != nil {
		return err
	}
	for _, c := range cats {
		if c.ID == id {
			return fmt.Errorf("category %q already exists", id)
		}
	}
	return s.SaveCategories(append(cats, model.Category{ID: id, Type: typ}))
}

// Remove deletes a category. The Other catch-all cannot be removed.
func (s *Service) Remove(id string) error {
	if id == model.CategoryOther {
		return fmt.Errorf("category %q cannot be removed", id)
	}
	cats, err := s.Categories()
	if err != nil {
		return err
	}

	kept := cats[:0]
	for _, c := range cats {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cats) {
		return fmt.Errorf("category %q not found", id)
	}
	return s.SaveCategories(kept)
}

// TypeOf returns the type of a category ID, defaulting to Expense for
// unknown categories.
func TypeOf(cats []model.Category, id string) model.CategoryType {
	for _, c := range cats {
		if c.ID == id {
			return c.Type
		}
	}
	return model.CategoryTypeExpense
}

// PayeeMap returns the learned payee to category mapping. A missing file is
// an empty mapping.
func (s *Service) PayeeMap() (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, payeeMapFile))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading payee map: %w", err)
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing payee map: %w", err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

// SavePayeeMap writes the payee mapping as pretty-printed JSON so exported
// files stay hand-editable.
func (s *Service) SavePayeeMap(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling payee map: %w", err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, payeeMapFile), data, 0o644); err != nil {
		return fmt.Errorf("writing payee map: %w", err)
	}
	return nil
}

// SetPayeeCategory records that a payee belongs to a category.
func (s *Service) SetPayeeCategory(payee, categoryID string) error {
	m, err := s.PayeeMap()
	if err != nil {
		return err
	}
	m[payee] = categoryID
	return s.SavePayeeMap(m)
}

// Merge folds imported mappings into the stored map; imported entries win on
// conflict. Returns the merged map.
func (s *Service) Merge(imported map[string]string) (map[string]string, error) {
	m, err := s.PayeeMap()
	if err != nil {
		return nil, err
	}
	for payee, cat := range imported {
		m[payee] = cat
	}
	if err := s.SavePayeeMap(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Assign fills each transaction's category from the payee mapping, falling
// back to Other for unmapped payees. Transactions that already carry a
// category keep it.
func Assign(txns []model.Transaction, payeeMap map[string]string) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		if t.Category == "" {
			if cat, ok := payeeMap[t.Payee]; ok {
				t.Category = cat
			} else {
				t.Category = model.CategoryOther
			}
		}
		out[i] = t
	}
	return out
}

// Reassign updates stored transactions after a mapping change: every
// transaction of the payee moves to the new category. Returns the updated
// slice and how many rows changed.
func Reassign(txns []model.Transaction, payee, categoryID string) ([]model.Transaction, int) {
	changed := 0
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		if t.Payee == payee && t.Category != categoryID {
			t.Category = categoryID
			changed++
		}
		out[i] = t
	}
	return out, changed
}

// Upgrade applies imported mappings to transactions still categorized as
// Other, leaving explicit categorizations untouched.
func Upgrade(txns []model.Transaction, imported map[string]string) ([]model.Transaction, int) {
	changed := 0
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		if t.Category == model.CategoryOther {
			if cat, ok := imported[t.Payee]; ok {
				t.Category = cat
				changed++
			}
		}
		out[i] = t
	}
	return out, changed
}

// Payees returns the distinct payees of a transaction set, sorted.
func Payees(txns []model.Transaction) []string {
	set := map[string]bool{}
	for _, t := range txns {
		set[t.Payee] = true
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
