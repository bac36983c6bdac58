package report

import (
	"fmt"

	"apiexplorer/internal/coinpaprika"
)

// Ticker writes the framed detail report of one coin
func (p *Printer) Ticker(t *coinpaprika.Ticker) {
	usd := t.USD()

	p.Blank()
	p.Banner(fmt.Sprintf("%s (%s)", t.Name, t.Symbol), 40)
	p.Linef("  Price: %s", p.Money(usd.Price, 2))
	p.Linef("  Market Cap: %s", p.Money(usd.MarketCap, 0))
	p.Linef("  24h Volume: %s", p.Money(usd.Volume24h, 0))
	p.Linef("  1h Change:  %s", p.Change(usd.PercentChange1h))
	p.Linef("  24h Change: %s", p.Change(usd.PercentChange24h))
	p.Linef("  7d Change:  %s", p.Change(usd.PercentChange7d))
	p.Rule("=", 40)
}

// TickerBrief writes name, price and 24h change of one coin
func (p *Printer) TickerBrief(t *coinpaprika.Ticker) {
	usd := t.USD()

	p.Blank()
	p.Linef("--- %s (%s) ---", t.Name, t.Symbol)
	p.Linef("Price: %s", p.Money(usd.Price, 2))
	p.Linef("24h Change: %s", p.Change(usd.PercentChange24h))
}

// Comparison writes a side-by-side table of several coins
func (p *Printer) Comparison(tickers []coinpaprika.Ticker) {
	p.ComparisonHeader()
	for i := range tickers {
		p.ComparisonRow(&tickers[i])
	}
	p.ComparisonFooter()
}

// ComparisonHeader opens the comparison table, so rows can follow as they are fetched
func (p *Printer) ComparisonHeader() {
	p.Blank()
	p.Banner("Cryptocurrency Comparison", 60)
	p.Linef("%-15s%12s%15s%20s", "Name", "Price", "24h Change", "Market Cap")
	p.Rule("-", 60)
}

// ComparisonRow writes one coin of the comparison table
func (p *Printer) ComparisonRow(t *coinpaprika.Ticker) {
	usd := t.USD()
	p.Linef("%-15s$%11s%14.2f%%$%19s",
		t.Name,
		p.Number(usd.Price, 2),
		usd.PercentChange24h,
		p.Number(usd.MarketCap, 0))
}

// ComparisonFooter closes the comparison table
func (p *Printer) ComparisonFooter() {
	p.Rule("=", 60)
}

// Top writes the ranked top-N table
func (p *Printer) Top(tickers []coinpaprika.Ticker) {
	p.Blank()
	p.Banner(fmt.Sprintf("Top %d Cryptocurrencies by Market Cap", len(tickers)), 55)
	p.Linef("  %-6s%-15s%-15s%s", "Rank", "Name", "Price", "24h Change")
	p.Linef("  %s", "--------------------------------------------------")
	for _, t := range tickers {
		usd := t.USD()
		p.Linef("  %-6d%-15s$%12s  %s",
			t.Rank,
			t.Name,
			p.Number(usd.Price, 2),
			p.Change(usd.PercentChange24h))
	}
	p.Rule("=", 55)
}
