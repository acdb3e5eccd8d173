// Package adapters provides repository implementations for the stocks feature.
package adapters

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mandacaru_broker/internal/feature/stocks/domain/entity"
	"mandacaru_broker/internal/feature/stocks/usecase"
)

type stockGorm struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockGorm)(nil)

// NewStockRepository returns a GORM-backed StockRepository.
func NewStockRepository(db *gorm.DB) *stockGorm {
	return &stockGorm{db: db}
}

// StockModel is the table layout of a stock row.
type StockModel struct {
	ID          string          `gorm:"primaryKey;size:36"`
	Symbol      string          `gorm:"size:20;not null;index"`
	CompanyName string          `gorm:"size:255;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (StockModel) TableName() string {
	return "stocks"
}

func toModel(e entity.Stock) StockModel {
	return StockModel{
		ID:          e.ID,
		Symbol:      e.Symbol,
		CompanyName: e.CompanyName,
		Price:       e.Price.Round(usecase.PriceScale),
	}
}

func toEntity(m StockModel) entity.Stock {
	return entity.Stock{
		ID:          m.ID,
		Symbol:      m.Symbol,
		CompanyName: m.CompanyName,
		Price:       m.Price,
	}
}

// FindAll returns every stock ordered by symbol.
func (r *stockGorm) FindAll(ctx context.Context) ([]entity.Stock, error) {
	var rows []StockModel
	if err := r.db.WithContext(ctx).
		Order("symbol ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find all stocks")
	}
	out := make([]entity.Stock, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// FindByID looks a stock up by primary key. A missing row is reported with ok == false.
func (r *stockGorm) FindByID(ctx context.Context, id string) (entity.Stock, bool, error) {
	var m StockModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Stock{}, false, nil
		}
		return entity.Stock{}, false, errors.Wrapf(err, "find stock %s", id)
	}
	return toEntity(m), true, nil
}

// Save upserts the stock on its id and returns it with the price at column scale.
func (r *stockGorm) Save(ctx context.Context, stock entity.Stock) (entity.Stock, error) {
	m := toModel(stock)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"symbol", "company_name", "price", "updated_at"}),
	}).Create(&m).Error; err != nil {
		return entity.Stock{}, errors.Wrapf(err, "save stock %s", stock.ID)
	}
	return toEntity(m), nil
}

// UpdatePrice writes only the price and updated_at columns of the row.
func (r *stockGorm) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&StockModel{}).Where("id = ?", id).Update("price", price.Round(usecase.PriceScale))
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "update price of stock %s", id)
	}
	return res.RowsAffected > 0, nil
}

// DeleteByID removes the row if it exists.
func (r *stockGorm) DeleteByID(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&StockModel{}).Error; err != nil {
		return errors.Wrapf(err, "delete stock %s", id)
	}
	return nil
}
