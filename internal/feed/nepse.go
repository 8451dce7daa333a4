package feed

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"NepseSentinel/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// historyDays is the lookback window requested per symbol, sized for the
// 30-close volatility window.
const historyDays = 30

// NepseClient fetches quotes and price history from an unofficial NEPSE
// REST API.
type NepseClient struct {
	baseURL string
	http    *resty.Client
	log     zerolog.Logger
}

// NewNepseClient builds a client for the given API base URL.
func NewNepseClient(baseURL string, timeout time.Duration, log zerolog.Logger) *NepseClient {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; NepseSentinel/1.0)")

	return &NepseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		log:     log.With().Str("component", "feed").Logger(),
	}
}

func (c *NepseClient) Name() string { return "nepse" }

// priceRow is the upstream JSON shape for today's prices.
type priceRow struct {
	Symbol       string  `json:"symbol"`
	ClosingPrice float64 `json:"closingPrice"`
}

// FetchSnapshot returns today's closing prices. Malformed rows are logged
// and skipped; a bad record never fails the batch.
func (c *NepseClient) FetchSnapshot(ctx context.Context) (model.Snapshot, error) {
	var rows []priceRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&rows).
		Get(c.baseURL + "/api/v1/prices/today")
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return model.Snapshot{}, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode())
	}

	quotes := make([]model.Quote, 0, len(rows))
	for _, row := range rows {
		if row.Symbol == "" || row.ClosingPrice <= 0 {
			c.log.Warn().Str("symbol", row.Symbol).Float64("close", row.ClosingPrice).
				Msg("skipping malformed price row")
			continue
		}
		quotes = append(quotes, model.Quote{
			Symbol: row.Symbol,
			Close:  decimal.NewFromFloat(row.ClosingPrice),
		})
	}
	return model.Snapshot{Source: c.Name(), Quotes: quotes}, nil
}

// historyRow is the upstream JSON shape for historical prices.
type historyRow struct {
	ClosingPrice  float64 `json:"closingPrice"`
	TradeQuantity int64   `json:"totalTradeQuantity"`
}

// FetchHistory returns up to historyDays of closes and traded quantities
// for one symbol, oldest first.
func (c *NepseClient) FetchHistory(ctx context.Context, symbol string) (model.SymbolHistory, error) {
	var rows []historyRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"days":   strconv.Itoa(historyDays),
		}).
		SetResult(&rows).
		Get(c.baseURL + "/api/v1/history")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode())
	}

	hist := make(model.SymbolHistory, 0, len(rows))
	for _, row := range rows {
		if row.ClosingPrice <= 0 {
			c.log.Warn().Str("symbol", symbol).Float64("close", row.ClosingPrice).
				Msg("skipping malformed history row")
			continue
		}
		hist = append(hist, model.PricePoint{
			Symbol: symbol,
			Close:  decimal.NewFromFloat(row.ClosingPrice),
			Volume: row.TradeQuantity,
			Seq:    len(hist),
		})
	}
	return hist, nil
}
