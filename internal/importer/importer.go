// Package importer reads raw transaction CSVs into typed records.
//
// A row whose date or amount does not parse is dropped, not reported:
// the feed is treated as a filtered dataset, never a parse failure. Only
// an unreadable source (missing file, broken CSV structure) is an error.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rosa-dev/rosa/internal/model"
)

// ErrSourceUnavailable marks a source that cannot be located or read at
// all, the one fatal condition in the load path.
var ErrSourceUnavailable = errors.New("transaction source unavailable")

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
}

// Column headers recognized in the source CSV, matched case-insensitively.
const (
	headerDate   = "date"
	headerAmount = "amount"
	headerType   = "type"
	headerDesc   = "description"
)

// Stats reports how much of the raw input survived parsing.
type Stats struct {
	Input   int // data rows seen
	Loaded  int // rows that parsed
	Dropped int // rows discarded for a bad date or amount
}

// Parse reads transaction rows from r. The first row must be a header
// naming at least date, amount and type columns; description is optional.
// Rows are returned in input order, uncategorized and unsigned.
func Parse(r io.Reader) ([]model.Transaction, Stats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("reading transaction CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, Stats{}, fmt.Errorf("%w: empty source", ErrSourceUnavailable)
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, Stats{}, err
	}

	var txns []model.Transaction
	stats := Stats{Input: len(records) - 1}
	for _, rec := range records[1:] {
		txn, ok := parseRow(rec, cols)
		if !ok {
			stats.Dropped++
			continue
		}
		txns = append(txns, txn)
	}
	stats.Loaded = len(txns)
	return txns, stats, nil
}

// ReadFile parses the CSV at path. A missing or unreadable file wraps
// ErrSourceUnavailable.
func ReadFile(path string) ([]model.Transaction, Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return Parse(bytes.NewReader(data))
}

type columns struct {
	date, amount, typ, desc int
}

func mapHeader(header []string) (columns, error) {
	cols := columns{date: -1, amount: -1, typ: -1, desc: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case headerDate:
			cols.date = i
		case headerAmount:
			cols.amount = i
		case headerType:
			cols.typ = i
		case headerDesc:
			cols.desc = i
		}
	}
	if cols.date < 0 || cols.amount < 0 || cols.typ < 0 {
		return cols, fmt.Errorf("%w: header missing date, amount or type column", ErrSourceUnavailable)
	}
	return cols, nil
}

func parseRow(rec []string, cols columns) (model.Transaction, bool) {
	need := cols.typ
	if cols.amount > need {
		need = cols.amount
	}
	if cols.date > need {
		need = cols.date
	}
	if len(rec) <= need {
		return model.Transaction{}, false
	}

	date, ok := parseDate(strings.TrimSpace(rec[cols.date]))
	if !ok {
		return model.Transaction{}, false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[cols.amount]))
	if err != nil {
		return model.Transaction{}, false
	}

	desc := ""
	if cols.desc >= 0 && cols.desc < len(rec) {
		desc = rec[cols.desc]
	}

	return model.Transaction{
		Date:        date,
		Amount:      amount,
		Type:        model.TxnType(strings.TrimSpace(rec[cols.typ])),
		Description: desc,
	}, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
