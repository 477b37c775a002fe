package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType is the direction of a transaction.
type TxnType string

const (
	TypeCredit TxnType = "credit"
	TypeDebit  TxnType = "debit"
)

// CategoryOther is the fallback category for descriptions no rule matches.
const CategoryOther = "Other"

// Transaction is one parsed row from the source feed, plus the derived
// category and signed amount filled in when the ledger is built.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal // non-negative magnitude
	Type        TxnType
	Description string
	Category    string
	Signed      decimal.Decimal // +amount for credit, -amount for debit
}

// SignedAmount applies the sign convention: debits are negated, everything
// else (credit, or an unrecognized type) keeps the amount as-is.
func SignedAmount(amount decimal.Decimal, t TxnType) decimal.Decimal {
	if t == TypeDebit {
		return amount.Neg()
	}
	return amount
}
