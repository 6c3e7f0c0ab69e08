package domain

import "github.com/shopspring/decimal"

// ProposedTrade is one market order the paper rebalancer wants to place.
// Quantity is positive for buys and negative for sells.
type ProposedTrade struct {
	Symbol        string          `json:"symbol"`
	Quantity      decimal.Decimal `json:"quantity"`
	ExpectedPrice decimal.Decimal `json:"expectedPrice"`
}
