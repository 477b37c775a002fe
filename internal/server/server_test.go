package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosa-dev/rosa/internal/ledger"
	"github.com/rosa-dev/rosa/internal/rules"
)

const fixture = `date,amount,type,description
2024-01-01,100,credit,Salary payment from ACME
2024-01-05,20,debit,Tesco groceries
2024-02-01,100,credit,Salary
bad-date,50,debit,dropped row
`

func newTestServer(t *testing.T, csv string) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	cache := ledger.NewCache(path, rules.DefaultTable())
	return New(cache, zerolog.Nop())
}

func getJSON(t *testing.T, s *Server, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "body: %s", body)

	if out != nil {
		require.NoError(t, json.Unmarshal(body, out))
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, fixture)

	var got map[string]string
	getJSON(t, s, "/api/health", 200, &got)
	assert.Equal(t, "ok", got["status"])
}

func TestSummary(t *testing.T) {
	s := newTestServer(t, fixture)

	var got summaryView
	getJSON(t, s, "/api/summary", 200, &got)

	assert.Equal(t, 4, got.InputRows)
	assert.Equal(t, 3, got.Loaded)
	assert.Equal(t, 1, got.Dropped)
	assert.Equal(t, "2024-01-01", got.MinDate)
	assert.Equal(t, "2024-02-01", got.MaxDate)
}

func TestTransactions(t *testing.T) {
	s := newTestServer(t, fixture)

	var got []txnView
	getJSON(t, s, "/api/transactions", 200, &got)

	require.Len(t, got, 3)
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, "Salary", got[0].Category)
	assert.Equal(t, "Groceries", got[1].Category)
	assert.Equal(t, "-20", got[1].Signed)
}

func TestTotals(t *testing.T) {
	s := newTestServer(t, fixture)

	var got totalsView
	getJSON(t, s, "/api/totals", 200, &got)

	assert.Equal(t, "200", got.Income)
	assert.Equal(t, "20", got.Expense)
	assert.Equal(t, "180", got.Net)
	assert.Equal(t, 3, got.Count)
}

func TestTotalsFiltered(t *testing.T) {
	s := newTestServer(t, fixture)

	var got totalsView
	getJSON(t, s, "/api/totals?types=debit&from=2024-01-01&to=2024-01-31", 200, &got)

	assert.Equal(t, "0", got.Income)
	assert.Equal(t, "20", got.Expense)
	assert.Equal(t, 1, got.Count)
}

func TestNetWorth(t *testing.T) {
	s := newTestServer(t, fixture)

	var got []pointView
	getJSON(t, s, "/api/networth", 200, &got)

	require.Len(t, got, 3)
	assert.Equal(t, pointView{Date: "2024-01-01", Total: "0"}, got[0])
	assert.Equal(t, pointView{Date: "2024-01-05", Total: "-20"}, got[1])
	assert.Equal(t, pointView{Date: "2024-02-01", Total: "80"}, got[2])
}

func TestNetWorthInvertedRangeEmpty(t *testing.T) {
	s := newTestServer(t, fixture)

	var got []pointView
	getJSON(t, s, "/api/networth?from=2024-03-01&to=2024-01-01", 200, &got)
	assert.Empty(t, got)
}

func TestCategoriesDefaultsToDebit(t *testing.T) {
	s := newTestServer(t, fixture)

	var got []categoryView
	getJSON(t, s, "/api/categories", 200, &got)

	require.Len(t, got, 1)
	assert.Equal(t, categoryView{Category: "Groceries", Amount: "20"}, got[0])
}

func TestCategoriesCredit(t *testing.T) {
	s := newTestServer(t, fixture)

	var got []categoryView
	getJSON(t, s, "/api/categories?type=credit", 200, &got)

	require.Len(t, got, 1)
	assert.Equal(t, categoryView{Category: "Salary", Amount: "200"}, got[0])
}

func TestCategoriesUnknownType(t *testing.T) {
	s := newTestServer(t, fixture)

	var got errorResponse
	getJSON(t, s, "/api/categories?type=wire", 400, &got)
	assert.Contains(t, got.Error, "wire")
}

func TestMonthly(t *testing.T) {
	s := newTestServer(t, fixture)

	var got []pointView
	getJSON(t, s, "/api/monthly", 200, &got)

	require.Len(t, got, 2)
	assert.Equal(t, pointView{Date: "2024-01-01", Total: "80"}, got[0])
	assert.Equal(t, pointView{Date: "2024-02-01", Total: "100"}, got[1])
}

func TestTypes(t *testing.T) {
	s := newTestServer(t, fixture)

	var got []typeCountView
	getJSON(t, s, "/api/types", 200, &got)

	require.Len(t, got, 2)
	assert.Equal(t, typeCountView{Type: "credit", Count: 2}, got[0])
	assert.Equal(t, typeCountView{Type: "debit", Count: 1}, got[1])
}

func TestBadDateParam(t *testing.T) {
	s := newTestServer(t, fixture)

	var got errorResponse
	getJSON(t, s, "/api/totals?from=01-2024", 400, &got)
	assert.Contains(t, got.Error, "from")
}

func TestMissingSource(t *testing.T) {
	cache := ledger.NewCache(filepath.Join(t.TempDir(), "gone.csv"), rules.DefaultTable())
	s := New(cache, zerolog.Nop())

	var got errorResponse
	getJSON(t, s, "/api/totals", 503, &got)
	assert.NotEmpty(t, got.Error)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, fixture)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
