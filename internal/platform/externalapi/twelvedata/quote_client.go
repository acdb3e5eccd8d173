package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"mandacaru_broker/internal/platform/externalapi/twelvedata/dto"
	"mandacaru_broker/internal/platform/logger"
)

// QuoteClient reads the latest traded price of a symbol.
type QuoteClient struct {
	cfg    Config
	client *http.Client
}

// NewQuoteClient creates a QuoteClient using client for transport.
func NewQuoteClient(cfg Config, client *http.Client) *QuoteClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &QuoteClient{cfg: cfg, client: client}
}

// GetQuote returns the latest price for symbol.
func (q *QuoteClient) GetQuote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("apikey", q.cfg.APIKey)
	u := fmt.Sprintf("%s/price?%s", q.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "build quote request")
	}

	res, err := q.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "quote %s", symbol)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			logger.Get().Warnw("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return decimal.Decimal{}, fmt.Errorf("twelvedata http %d for %s", res.StatusCode, symbol)
	}

	var body dto.PriceResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "decode quote %s", symbol)
	}
	if body.Status == "error" {
		return decimal.Decimal{}, fmt.Errorf("twelvedata: %s", body.Message)
	}

	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "parse price %q", body.Price)
	}
	return price, nil
}
