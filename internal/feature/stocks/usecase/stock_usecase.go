package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mandacaru_broker/internal/feature/stocks/domain/entity"
)

// StockRepository abstracts the persistence layer for stocks.
type StockRepository interface {
	// FindAll returns every stored stock.
	FindAll(ctx context.Context) ([]entity.Stock, error)
	// FindByID returns the stock with the given id; ok is false when there is none.
	FindByID(ctx context.Context, id string) (stock entity.Stock, ok bool, err error)
	// Save inserts the stock if its id is unseen, otherwise overwrites the stored record.
	Save(ctx context.Context, stock entity.Stock) (entity.Stock, error)
	// DeleteByID removes the stock if present. Deleting an unknown id is not an error.
	DeleteByID(ctx context.Context, id string) error
	// UpdatePrice sets only the price column of an existing stock; ok is false when there is none.
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (ok bool, err error)
}

// IDGenerator produces identifiers for newly created stocks.
type IDGenerator func() string

// Option configures a StockUsecase.
type Option func(*StockUsecase)

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(u *StockUsecase) {
		if gen != nil {
			u.newID = gen
		}
	}
}

// StockUsecase provides CRUD operations over stocks.
// It holds no state besides the repository and is safe for concurrent use
// as long as the repository is.
type StockUsecase struct {
	repo  StockRepository
	newID IDGenerator
}

// NewStockUsecase creates a new StockUsecase backed by the given repository.
func NewStockUsecase(repo StockRepository, opts ...Option) *StockUsecase {
	u := &StockUsecase{repo: repo, newID: newUUIDv7}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// newUUIDv7 returns a time-ordered UUID, falling back to a random one.
func newUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// PriceScale is the number of decimal places a stored price keeps.
const PriceScale = 4

func validatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return ErrNegativePrice
	}
	if !p.Equal(p.Round(PriceScale)) {
		return ErrPriceScale
	}
	return nil
}

// GetAllStocks returns all stocks exactly as the repository reports them.
func (u *StockUsecase) GetAllStocks(ctx context.Context) ([]entity.Stock, error) {
	return u.repo.FindAll(ctx)
}

// GetStockByID returns the stock with the given id; ok is false when it does not exist.
func (u *StockUsecase) GetStockByID(ctx context.Context, id string) (entity.Stock, bool, error) {
	return u.repo.FindByID(ctx, id)
}

// CreateStock builds a new stock from req with a fresh id and persists it.
func (u *StockUsecase) CreateStock(ctx context.Context, req entity.StockRequest) (entity.Stock, error) {
	if err := validatePrice(req.Price); err != nil {
		return entity.Stock{}, err
	}
	return u.repo.Save(ctx, entity.NewStock(u.newID(), req))
}

// UpdateStock overwrites symbol, company name and price of an existing stock.
// When no stock has the given id it returns ok == false and saves nothing.
func (u *StockUsecase) UpdateStock(ctx context.Context, id string, req entity.StockRequest) (entity.Stock, bool, error) {
	if err := validatePrice(req.Price); err != nil {
		return entity.Stock{}, false, err
	}

	stock, ok, err := u.repo.FindByID(ctx, id)
	if err != nil || !ok {
		return entity.Stock{}, false, err
	}

	stock.Apply(req)
	saved, err := u.repo.Save(ctx, stock)
	if err != nil {
		return entity.Stock{}, false, err
	}
	return saved, true, nil
}

// DeleteStock removes the stock with the given id. Unknown ids are not an error.
func (u *StockUsecase) DeleteStock(ctx context.Context, id string) error {
	return u.repo.DeleteByID(ctx, id)
}
