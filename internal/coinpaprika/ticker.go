package coinpaprika

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"apiexplorer/internal/fetcher"
)

// ErrEmptyCoin is returned when no coin identifier was given
var ErrEmptyCoin = errors.New("please enter a coin name")

// Quote holds the market figures of a ticker in one currency
type Quote struct {
	Price            float64 `json:"price"`
	Volume24h        float64 `json:"volume_24h"`
	MarketCap        float64 `json:"market_cap"`
	PercentChange1h  float64 `json:"percent_change_1h"`
	PercentChange24h float64 `json:"percent_change_24h"`
	PercentChange7d  float64 `json:"percent_change_7d"`
}

// Ticker represents the CoinPaprika API response for a single coin
type Ticker struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Symbol      string           `json:"symbol"`
	Rank        int              `json:"rank"`
	LastUpdated string           `json:"last_updated"`
	Quotes      map[string]Quote `json:"quotes"`
}

// USD returns the ticker's USD quote
func (t Ticker) USD() Quote {
	return t.Quotes["USD"]
}

// Client fetches coin tickers from CoinPaprika
type Client struct {
	fetcher *fetcher.Fetcher
	baseURL string
}

// NewClient creates a new CoinPaprika client
func NewClient(f *fetcher.Fetcher, baseURL string) *Client {
	return &Client{
		fetcher: f,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Ticker retrieves the current ticker for a provider identifier such as "btc-bitcoin"
func (c *Client) Ticker(ctx context.Context, id string) (*Ticker, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, ErrEmptyCoin
	}

	res := c.fetcher.Get(ctx, c.baseURL+"/tickers/"+url.PathEscape(id), nil)
	if err := res.Require("name", "symbol", "quotes.USD.price"); err != nil {
		return nil, fmt.Errorf("ticker %s: %w", id, err)
	}

	var ticker Ticker
	if err := res.Decode(&ticker); err != nil {
		return nil, fmt.Errorf("failed to parse ticker %s: %w", id, err)
	}
	return &ticker, nil
}

// Top retrieves the first limit tickers ranked by market cap
func (c *Client) Top(ctx context.Context, limit int) ([]Ticker, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be at least 1, got %d", limit)
	}

	res := c.fetcher.Get(ctx, c.baseURL+"/tickers", map[string]string{
		"limit": strconv.Itoa(limit),
	})
	if !res.IsOk() {
		return nil, fmt.Errorf("top tickers: %w", res.Err())
	}
	if !res.Get("@this").IsArray() {
		return nil, fmt.Errorf("top tickers: %w: expected a list", fetcher.ErrUnexpectedShape)
	}

	var tickers []Ticker
	if err := res.Decode(&tickers); err != nil {
		return nil, fmt.Errorf("failed to parse tickers: %w", err)
	}
	for _, t := range tickers {
		if _, ok := t.Quotes["USD"]; !ok {
			return nil, fmt.Errorf("top tickers: %w: %s has no USD quote", fetcher.ErrUnexpectedShape, t.ID)
		}
	}

	if len(tickers) > limit {
		tickers = tickers[:limit]
	}
	return tickers, nil
}
