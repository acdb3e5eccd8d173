// Package handler provides HTTP handlers for the stocks feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mandacaru_broker/internal/feature/stocks/domain/entity"
	"mandacaru_broker/internal/feature/stocks/transport/http/dto"
	"mandacaru_broker/internal/feature/stocks/usecase"
	"mandacaru_broker/internal/platform/logger"
)

// StockUsecase defines the stock operations the handler depends on.
type StockUsecase interface {
	GetAllStocks(ctx context.Context) ([]entity.Stock, error)
	GetStockByID(ctx context.Context, id string) (entity.Stock, bool, error)
	CreateStock(ctx context.Context, req entity.StockRequest) (entity.Stock, error)
	UpdateStock(ctx context.Context, id string, req entity.StockRequest) (entity.Stock, bool, error)
	DeleteStock(ctx context.Context, id string) error
}

const errStockNotFound = "stock not found"

// StockHandler handles HTTP requests for stocks.
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List handles GET /stocks.
func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.uc.GetAllStocks(c.Request.Context())
	if err != nil {
		h.internalError(c, "list stocks failed", err)
		return
	}
	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.FromEntity(s))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /stocks/:id. An unknown id answers 404 with an error body.
func (h *StockHandler) Get(c *gin.Context) {
	stock, ok, err := h.uc.GetStockByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "get stock failed", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: errStockNotFound})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(stock))
}

// Create handles POST /stocks.
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.RequestStockDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Warnw("create stock validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	stock, err := h.uc.CreateStock(c.Request.Context(), req.ToEntity())
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		h.internalError(c, "create stock failed", err)
		return
	}
	logger.Get().Infow("stock created", "id", stock.ID, "symbol", stock.Symbol)
	c.JSON(http.StatusCreated, dto.FromEntity(stock))
}

// Update handles PUT /stocks/:id. An unknown id answers 404 and creates nothing.
func (h *StockHandler) Update(c *gin.Context) {
	var req dto.RequestStockDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Warnw("update stock validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")
	stock, ok, err := h.uc.UpdateStock(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		h.internalError(c, "update stock failed", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: errStockNotFound})
		return
	}
	logger.Get().Infow("stock updated", "id", stock.ID, "symbol", stock.Symbol)
	c.JSON(http.StatusOK, dto.FromEntity(stock))
}

// Delete handles DELETE /stocks/:id. It answers 204 whether or not the stock existed.
func (h *StockHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.uc.DeleteStock(c.Request.Context(), id); err != nil {
		h.internalError(c, "delete stock failed", err)
		return
	}
	logger.Get().Infow("stock deleted", "id", id)
	c.Status(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, usecase.ErrNegativePrice) || errors.Is(err, usecase.ErrPriceScale)
}

func (h *StockHandler) internalError(c *gin.Context, msg string, err error) {
	logger.Get().Errorw(msg, "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}
