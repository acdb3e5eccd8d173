// Package dto defines data transfer objects for the stocks HTTP API.
package dto

import (
	"github.com/shopspring/decimal"

	"mandacaru_broker/internal/feature/stocks/domain/entity"
)

// RequestStockDTO is the request body of the create and update endpoints.
type RequestStockDTO struct {
	Symbol      string           `json:"symbol" binding:"required,ticker"`
	CompanyName string           `json:"companyName" binding:"required,max=255"`
	Price       *decimal.Decimal `json:"price" binding:"required,gte=0"`
}

// ToEntity converts the DTO into the domain request. Call it only after binding succeeded.
func (r RequestStockDTO) ToEntity() entity.StockRequest {
	var price decimal.Decimal
	if r.Price != nil {
		price = *r.Price
	}
	return entity.StockRequest{
		Symbol:      r.Symbol,
		CompanyName: r.CompanyName,
		Price:       price,
	}
}

// StockResponse is the public representation of a stock.
type StockResponse struct {
	ID          string          `json:"id"`
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Price       decimal.Decimal `json:"price"`
}

// FromEntity converts a domain stock into its response shape.
func FromEntity(s entity.Stock) StockResponse {
	return StockResponse{
		ID:          s.ID,
		Symbol:      s.Symbol,
		CompanyName: s.CompanyName,
		Price:       s.Price,
	}
}

// ErrorResponse is the body returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
