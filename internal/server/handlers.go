package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rosa-dev/rosa/internal/importer"
	"github.com/rosa-dev/rosa/internal/ledger"
	"github.com/rosa-dev/rosa/internal/model"
	"github.com/rosa-dev/rosa/internal/report"
)

const dateFormat = "2006-01-02"

type errorResponse struct {
	Error string `json:"error"`
}

type txnView struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Signed      string `json:"signed"`
}

type pointView struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

type summaryView struct {
	InputRows int    `json:"inputRows"`
	Loaded    int    `json:"loaded"`
	Dropped   int    `json:"dropped"`
	MinDate   string `json:"minDate,omitempty"`
	MaxDate   string `json:"maxDate,omitempty"`
}

type totalsView struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
	Count   int    `json:"count"`
}

type categoryView struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type typeCountView struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	snap, err := s.snapshot(c)
	if err != nil {
		return err
	}
	view := summaryView{
		InputRows: snap.Stats.Input,
		Loaded:    snap.Stats.Loaded,
		Dropped:   snap.Stats.Dropped,
	}
	if !snap.MinDate.IsZero() {
		view.MinDate = snap.MinDate.Format(dateFormat)
		view.MaxDate = snap.MaxDate.Format(dateFormat)
	}
	return c.JSON(view)
}

func (s *Server) handleTransactions(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	views := make([]txnView, len(txns))
	for i, txn := range txns {
		views[i] = txnView{
			Date:        txn.Date.Format(dateFormat),
			Amount:      txn.Amount.String(),
			Type:        string(txn.Type),
			Description: txn.Description,
			Category:    txn.Category,
			Signed:      txn.Signed.String(),
		}
	}
	return c.JSON(views)
}

func (s *Server) handleTotals(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	t := report.Totals(txns)
	return c.JSON(totalsView{
		Income:  t.Income.String(),
		Expense: t.Expense.String(),
		Net:     t.Net.String(),
		Count:   t.Count,
	})
}

func (s *Server) handleNetWorth(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(pointViews(report.NetWorth(txns)))
}

func (s *Server) handleCategories(c *fiber.Ctx) error {
	txnType := model.TxnType(c.Query("type", string(model.TypeDebit)))
	if txnType != model.TypeCredit && txnType != model.TypeDebit {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown type %q", txnType))
	}

	txns, err := s.filtered(c)
	if err != nil {
		return err
	}

	sums := report.ByCategory(txns, txnType)
	views := make([]categoryView, len(sums))
	for i, cs := range sums {
		views[i] = categoryView{Category: cs.Category, Amount: cs.Amount.String()}
	}
	return c.JSON(views)
}

func (s *Server) handleMonthly(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(pointViews(report.Monthly(txns)))
}

func (s *Server) handleDaily(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(pointViews(report.Daily(txns)))
}

func (s *Server) handleTypes(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	counts := report.CountByType(txns)
	views := make([]typeCountView, len(counts))
	for i, tc := range counts {
		views[i] = typeCountView{Type: string(tc.Type), Count: tc.Count}
	}
	return c.JSON(views)
}

// snapshot loads the canonical table, mapping an unavailable source to
// 503, the one failure the API surfaces.
func (s *Server) snapshot(c *fiber.Ctx) (*ledger.Snapshot, error) {
	snap, err := s.cache.Snapshot()
	if err != nil {
		s.log.Error().Err(err).Msg("loading source")
		if errors.Is(err, importer.ErrSourceUnavailable) {
			return nil, fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return snap, nil
}

// filtered loads the canonical table and applies the query filter.
func (s *Server) filtered(c *fiber.Ctx) ([]model.Transaction, error) {
	snap, err := s.snapshot(c)
	if err != nil {
		return nil, err
	}
	f, err := parseFilter(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return report.Apply(snap.Transactions, f), nil
}

// parseFilter reads types, from and to query parameters. Unknown type
// values are kept: they simply match no transactions.
func parseFilter(c *fiber.Ctx) (report.Filter, error) {
	var f report.Filter

	if raw := c.Query("types"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				f.Types = append(f.Types, model.TxnType(part))
			}
		}
	}

	var err error
	if raw := c.Query("from"); raw != "" {
		f.From, err = time.Parse(dateFormat, raw)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q", raw)
		}
	}
	if raw := c.Query("to"); raw != "" {
		f.To, err = time.Parse(dateFormat, raw)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q", raw)
		}
	}
	return f, nil
}

func pointViews(points []report.Point) []pointView {
	views := make([]pointView, len(points))
	for i, p := range points {
		views[i] = pointView{Date: p.Date.Format(dateFormat), Total: p.Total.String()}
	}
	return views
}
