package model

// CategoryType classifies how a category contributes to monthly stats.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "Income"
	CategoryTypeExpense CategoryType = "Expense"
	CategoryTypeSavings CategoryType = "Savings"
)

// Category is a user-managed spending bucket.
type Category struct {
	ID   string       `yaml:"id"`
	Type CategoryType `yaml:"type"`
}

// CategoryOther is the catch-all category assigned when no payee mapping
// exists.
const CategoryOther = "Other"

// CategorySelf marks transfers between the user's own accounts; it is
// excluded from stats entirely.
const CategorySelf = "Self"

// DefaultCategories returns the starter category set for a new ledger.
func DefaultCategories() []Category {
	return []Category{
		{ID: "Food", Type: CategoryTypeExpense},
		{ID: "Travel", Type: CategoryTypeExpense},
		{ID: "Fuel", Type: CategoryTypeExpense},
		{ID: "Shopping", Type: CategoryTypeExpense},
		{ID: "Rent", Type: CategoryTypeExpense},
		{ID: "Health", Type: CategoryTypeExpense},
		{ID: "Utilities", Type: CategoryTypeExpense},
		{ID: "Savings", Type: CategoryTypeSavings},
		{ID: "Salary", Type: CategoryTypeIncome},
		{ID: CategorySelf, Type: CategoryTypeIncome},
		{ID: CategoryOther, Type: CategoryTypeExpense},
	}
}
