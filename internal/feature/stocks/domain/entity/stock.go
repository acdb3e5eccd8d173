// Package entity defines the domain models for the stocks feature.
package entity

import "github.com/shopspring/decimal"

// Stock is a listed security tracked by the broker.
// ID is assigned once at creation and never changes afterwards.
type Stock struct {
	ID          string          // Opaque identifier (UUIDv7 string)
	Symbol      string          // Ticker symbol (e.g., "BB3", "PETR4")
	CompanyName string          // Display name of the issuing company
	Price       decimal.Decimal // Last known price, never negative
}

// StockRequest carries the user-editable fields of a Stock.
// It is never persisted directly; it is turned into a Stock by NewStock or Apply.
type StockRequest struct {
	Symbol      string
	CompanyName string
	Price       decimal.Decimal
}

// NewStock builds a Stock with the given identity from a request.
func NewStock(id string, req StockRequest) Stock {
	return Stock{
		ID:          id,
		Symbol:      req.Symbol,
		CompanyName: req.CompanyName,
		Price:       req.Price,
	}
}

// Apply overwrites the editable fields from req, keeping the identity.
func (s *Stock) Apply(req StockRequest) {
	s.Symbol = req.Symbol
	s.CompanyName = req.CompanyName
	s.Price = req.Price
}
