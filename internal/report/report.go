// Package report filters the canonical transaction table and computes the
// derived views the dashboard consumes. Every function is pure: it takes
// a slice, never mutates it, and degrades to empty or zero results on
// empty input.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rosa-dev/rosa/internal/model"
)

// Filter selects transactions by type and inclusive date range. A nil or
// empty Types slice admits every type; a zero From or To leaves that end
// unbounded. From after To selects nothing.
type Filter struct {
	Types []model.TxnType
	From  time.Time
	To    time.Time
}

// Point is one entry of a date-keyed series.
type Point struct {
	Date  time.Time
	Total decimal.Decimal
}

// Summary holds the headline figures for a filtered set.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

// CategorySum is a category and its summed magnitude.
type CategorySum struct {
	Category string
	Amount   decimal.Decimal
}

// TypeCount is the number of transactions of one type.
type TypeCount struct {
	Type  model.TxnType
	Count int
}

// Apply returns the transactions matching f, preserving input order.
// Filtering is idempotent: applying the same filter twice changes nothing.
func Apply(txns []model.Transaction, f Filter) []model.Transaction {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return nil
	}

	var allowed map[model.TxnType]struct{}
	if len(f.Types) > 0 {
		allowed = make(map[model.TxnType]struct{}, len(f.Types))
		for _, t := range f.Types {
			allowed[t] = struct{}{}
		}
	}

	var out []model.Transaction
	for _, txn := range txns {
		if allowed != nil {
			if _, ok := allowed[txn.Type]; !ok {
				continue
			}
		}
		if !f.From.IsZero() && txn.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && txn.Date.After(f.To) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

// NetWorth re-sorts the set ascending by date (stable, so ties keep input
// order), computes the running sum of signed amounts, and shifts the
// series so it starts at zero. Cumulative values are always recomputed
// from scratch; totals carried over from a differently filtered set would
// be wrong. Empty input yields an empty series.
func NetWorth(txns []model.Transaction) []Point {
	if len(txns) == 0 {
		return nil
	}

	ordered := make([]model.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	points := make([]Point, len(ordered))
	running := decimal.Zero
	for i, txn := range ordered {
		running = running.Add(txn.Signed)
		points[i] = Point{Date: txn.Date, Total: running}
	}

	// Zero-base the series at the first entry.
	base := points[0].Total
	for i := range points {
		points[i].Total = points[i].Total.Sub(base)
	}
	return points
}

// Totals sums credit amounts as income and debit amounts as expense.
func Totals(txns []model.Transaction) Summary {
	s := Summary{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Net:     decimal.Zero,
		Count:   len(txns),
	}
	for _, txn := range txns {
		switch txn.Type {
		case model.TypeCredit:
			s.Income = s.Income.Add(txn.Amount)
		case model.TypeDebit:
			s.Expense = s.Expense.Add(txn.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// ByCategory sums amounts per category for transactions of the given
// type, sorted ascending by sum, ties broken by category name.
func ByCategory(txns []model.Transaction, t model.TxnType) []CategorySum {
	sums := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		if txn.Type != t {
			continue
		}
		cur, ok := sums[txn.Category]
		if !ok {
			cur = decimal.Zero
		}
		sums[txn.Category] = cur.Add(txn.Amount)
	}

	out := make([]CategorySum, 0, len(sums))
	for cat, sum := range sums {
		out = append(out, CategorySum{Category: cat, Amount: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Amount.Cmp(out[j].Amount); cmp != 0 {
			return cmp < 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Monthly buckets signed amounts by calendar month, keyed on the first of
// the month. Only months with at least one transaction appear; calendar
// gaps are not synthesized.
func Monthly(txns []model.Transaction) []Point {
	return bucket(txns, func(d time.Time) time.Time {
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	})
}

// Daily buckets signed amounts by calendar day.
func Daily(txns []model.Transaction) []Point {
	return bucket(txns, func(d time.Time) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	})
}

// CountByType counts transactions per type, sorted by descending count,
// ties broken by type name.
func CountByType(txns []model.Transaction) []TypeCount {
	counts := make(map[model.TxnType]int)
	for _, txn := range txns {
		counts[txn.Type]++
	}

	out := make([]TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

func bucket(txns []model.Transaction, key func(time.Time) time.Time) []Point {
	sums := make(map[time.Time]decimal.Decimal)
	for _, txn := range txns {
		k := key(txn.Date)
		cur, ok := sums[k]
		if !ok {
			cur = decimal.Zero
		}
		sums[k] = cur.Add(txn.Signed)
	}

	out := make([]Point, 0, len(sums))
	for k, sum := range sums {
		out = append(out, Point{Date: k, Total: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
