// Package dto holds Twelve Data wire payloads.
package dto

// PriceResponse is the body of GET /price. Error bodies carry Status "error".
type PriceResponse struct {
	Price   string `json:"price"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}
