// Package report computes spending summaries over stored transactions.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/category"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Stats aggregates a transaction set into income, expense and savings
// buckets. A transaction's category type decides its bucket; its direction
// decides the sign within the bucket, so refunds and reversals subtract.
type Stats struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Savings decimal.Decimal
	Net     decimal.Decimal
}

// Compute aggregates txns against the category set. Transactions in the
// Self category (own-account transfers) are excluded entirely.
func Compute(txns []model.Transaction, cats []model.Category) Stats {
	var s Stats
	for _, t := range txns {
		if t.Category == model.CategorySelf {
			continue
		}
		switch category.TypeOf(cats, t.Category) {
		case model.CategoryTypeIncome:
			if t.Direction == model.Credit {
				s.Income = s.Income.Add(t.Amount)
			} else {
				s.Income = s.Income.Sub(t.Amount)
			}
		case model.CategoryTypeExpense:
			if t.Direction == model.Debit {
				s.Expense = s.Expense.Add(t.Amount)
			} else {
				s.Expense = s.Expense.Sub(t.Amount)
			}
		case model.CategoryTypeSavings:
			if t.Direction == model.Debit {
				s.Savings = s.Savings.Add(t.Amount)
			} else {
				s.Savings = s.Savings.Sub(t.Amount)
			}
		}
	}
	s.Net = s.Income.Sub(s.Expense).Sub(s.Savings)
	return s
}

// ByCategory totals the signed spend per category, Self excluded.
func ByCategory(txns []model.Transaction) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for _, t := range txns {
		if t.Category == model.CategorySelf {
			continue
		}
		out[t.Category] = out[t.Category].Add(t.Signed())
	}
	return out
}

// FilterMonth keeps transactions dated in the given month.
func FilterMonth(txns []model.Transaction, year int, month time.Month) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if t.Date.Year() == year && t.Date.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

// FilterYear keeps transactions dated in the given year.
func FilterYear(txns []model.Transaction, year int) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if t.Date.Year() == year {
			out = append(out, t)
		}
	}
	return out
}

// DailySummary is one calendar day's totals.
type DailySummary struct {
	Date         time.Time
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
	Transactions []model.Transaction
}

// Daily groups transactions by calendar date, ascending.
func Daily(txns []model.Transaction) []DailySummary {
	byDate := map[time.Time]*DailySummary{}
	for _, t := range txns {
		day := time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)
		s, ok := byDate[day]
		if !ok {
			s = &DailySummary{Date: day}
			byDate[day] = s
		}
		if t.Direction == model.Debit {
			s.TotalDebit = s.TotalDebit.Add(t.Amount)
		} else {
			s.TotalCredit = s.TotalCredit.Add(t.Amount)
		}
		s.Transactions = append(s.Transactions, t)
	}

	out := make([]DailySummary, 0, len(byDate))
	for _, s := range byDate {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
