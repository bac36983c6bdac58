package coinpaprika

import "strings"

// Coins maps friendly coin names to CoinPaprika identifiers.
// It is built once and never mutated.
type Coins struct {
	ids   map[string]string
	names []string
}

// DefaultCoins returns the popular coins offered by the dashboard
func DefaultCoins() *Coins {
	return newCoins([][2]string{
		{"bitcoin", "btc-bitcoin"},
		{"ethereum", "eth-ethereum"},
		{"dogecoin", "doge-dogecoin"},
		{"cardano", "ada-cardano"},
		{"solana", "sol-solana"},
		{"ripple", "xrp-xrp"},
	})
}

func newCoins(pairs [][2]string) *Coins {
	c := &Coins{ids: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		c.ids[p[0]] = p[1]
		c.names = append(c.names, p[0])
	}
	return c
}

// Resolve returns the identifier for name, or the normalised name itself when it is
// not a known alias, so raw identifiers like "btc-bitcoin" pass through.
func (c *Coins) Resolve(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if id, ok := c.ids[name]; ok {
		return id
	}
	return name
}

// Names lists the known coin names in display order
func (c *Coins) Names() []string {
	return append([]string(nil), c.names...)
}
