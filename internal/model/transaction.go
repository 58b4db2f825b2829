package model

import "time"

// TransactionType classifies a cash-flow event on an investment.
type TransactionType string

const (
	TxBuy           TransactionType = "Buy"
	TxSell          TransactionType = "Sell"
	TxDividend      TransactionType = "Dividend"
	TxDistribution  TransactionType = "Distribution"
	TxCapitalCall   TransactionType = "Capital Call"
	TxCapitalReturn TransactionType = "Capital Return"
	TxFee           TransactionType = "Fee"
)

// AllTransactionTypes returns every known transaction type.
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TxBuy, TxSell, TxDividend, TxDistribution,
		TxCapitalCall, TxCapitalReturn, TxFee,
	}
}

// IsOutflow reports whether the type represents money leaving the investor
// (negative cash flow in the money-weighted return series).
func (t TransactionType) IsOutflow() bool {
	switch t {
	case TxBuy, TxCapitalCall, TxFee:
		return true
	}
	return false
}

// Transaction is a dated cash-flow event belonging to exactly one
// investment. Amount is recorded unsigned in the transaction's currency;
// the sign convention is applied by the cash-flow builder from Type.
type Transaction struct {
	ID           string          `json:"id"`
	InvestmentID string          `json:"investmentId"`
	Date         time.Time       `json:"date"`
	Type         TransactionType `json:"type"`
	Quantity     float64         `json:"quantity,omitempty"`
	PricePerUnit float64         `json:"pricePerUnit,omitempty"`
	Amount       float64         `json:"amount"`
	Currency     string          `json:"currency"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
}
