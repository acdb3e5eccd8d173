package adapters

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"mandacaru_broker/internal/feature/stocks/domain/entity"
	"mandacaru_broker/internal/feature/stocks/usecase"
)

// stockMemory is a map-backed StockRepository for tests and the memory store mode.
type stockMemory struct {
	mu     sync.RWMutex
	stocks map[string]entity.Stock
}

var _ usecase.StockRepository = (*stockMemory)(nil)

// NewMemoryStockRepository returns an empty in-memory StockRepository.
func NewMemoryStockRepository() *stockMemory {
	return &stockMemory{stocks: make(map[string]entity.Stock)}
}

// FindAll returns a snapshot of all stocks ordered by symbol, then id.
func (r *stockMemory) FindAll(ctx context.Context) ([]entity.Stock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]entity.Stock, 0, len(r.stocks))
	for _, s := range r.stocks {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stockMemory) FindByID(ctx context.Context, id string) (entity.Stock, bool, error) {
	if err := ctx.Err(); err != nil {
		return entity.Stock{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stocks[id]
	return s, ok, nil
}

func (r *stockMemory) Save(ctx context.Context, stock entity.Stock) (entity.Stock, error) {
	if err := ctx.Err(); err != nil {
		return entity.Stock{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stocks[stock.ID] = stock
	return stock, nil
}

func (r *stockMemory) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stocks, id)
	return nil
}

func (r *stockMemory) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stocks[id]
	if !ok {
		return false, nil
	}
	s.Price = price
	r.stocks[id] = s
	return true, nil
}
