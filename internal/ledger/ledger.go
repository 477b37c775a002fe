// Package ledger builds the canonical transaction table: every valid row
// from the source, normalized, categorized, signed, and sorted by date.
package ledger

import (
	"sort"
	"time"

	"github.com/rosa-dev/rosa/internal/importer"
	"github.com/rosa-dev/rosa/internal/model"
	"github.com/rosa-dev/rosa/internal/normalize"
	"github.com/rosa-dev/rosa/internal/rules"
)

// Snapshot is the canonical table. It is built once per source and must
// not be mutated afterwards; any number of readers may share it.
type Snapshot struct {
	Transactions []model.Transaction
	Stats        importer.Stats
	MinDate      time.Time // zero when the table is empty
	MaxDate      time.Time
}

// Build normalizes, categorizes and signs parsed records, then sorts
// ascending by date (stable, so same-day rows keep input order).
func Build(txns []model.Transaction, stats importer.Stats, table *rules.Table) *Snapshot {
	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		txn.Category = table.Categorize(normalize.Clean(txn.Description))
		txn.Signed = model.SignedAmount(txn.Amount, txn.Type)
		out[i] = txn
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	snap := &Snapshot{Transactions: out, Stats: stats}
	if len(out) > 0 {
		snap.MinDate = out[0].Date
		snap.MaxDate = out[len(out)-1].Date
	}
	return snap
}

// Load reads a source CSV and builds its snapshot.
func Load(path string, table *rules.Table) (*Snapshot, error) {
	txns, stats, err := importer.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(txns, stats, table), nil
}
