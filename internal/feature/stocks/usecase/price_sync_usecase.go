package usecase

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"mandacaru_broker/internal/platform/logger"
)

// QuoteProvider returns the latest market price of a symbol.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// RateLimiter blocks until the next upstream call is allowed.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// SyncReport summarizes one SyncAll run.
type SyncReport struct {
	Updated   int
	Unchanged int
	Failed    []string
}

// PriceSyncUsecase refreshes stored prices from a market data provider.
type PriceSyncUsecase struct {
	repo    StockRepository
	quotes  QuoteProvider
	limiter RateLimiter
}

// NewPriceSyncUsecase creates a PriceSyncUsecase. limiter may be nil.
func NewPriceSyncUsecase(repo StockRepository, quotes QuoteProvider, limiter RateLimiter) *PriceSyncUsecase {
	return &PriceSyncUsecase{repo: repo, quotes: quotes, limiter: limiter}
}

// SyncAll fetches a quote for every stored stock and writes changed prices.
// Only the price is written, so concurrent edits to other fields survive.
// A failing symbol is recorded in the report and skipped. Only listing the
// store or a done context aborts the run.
func (u *PriceSyncUsecase) SyncAll(ctx context.Context) (SyncReport, error) {
	var report SyncReport

	stocks, err := u.repo.FindAll(ctx)
	if err != nil {
		return report, errors.Wrap(err, "list stocks")
	}

	for _, stock := range stocks {
		if u.limiter != nil {
			if err := u.limiter.Wait(ctx); err != nil {
				return report, err
			}
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		quote, err := u.quotes.GetQuote(ctx, stock.Symbol)
		if err != nil {
			logger.Get().Warnw("quote failed", "symbol", stock.Symbol, "error", err)
			report.Failed = append(report.Failed, stock.Symbol)
			continue
		}
		price := quote.Round(PriceScale)
		if price.IsNegative() {
			logger.Get().Warnw("quote rejected", "symbol", stock.Symbol, "price", price.String())
			report.Failed = append(report.Failed, stock.Symbol)
			continue
		}
		if price.Equal(stock.Price) {
			report.Unchanged++
			continue
		}

		ok, err := u.repo.UpdatePrice(ctx, stock.ID, price)
		if err != nil {
			logger.Get().Errorw("update synced price failed", "id", stock.ID, "symbol", stock.Symbol, "error", err)
			report.Failed = append(report.Failed, stock.Symbol)
			continue
		}
		if !ok {
			logger.Get().Warnw("stock deleted during sync", "id", stock.ID, "symbol", stock.Symbol)
			report.Failed = append(report.Failed, stock.Symbol)
			continue
		}
		report.Updated++
	}

	logger.Get().Infow("price sync finished",
		"updated", report.Updated, "unchanged", report.Unchanged, "failed", len(report.Failed))
	return report, nil
}
