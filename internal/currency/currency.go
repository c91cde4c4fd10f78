// Package currency resolves asset tickers to one canonical form and ranks
// them so a trade's base side can be picked when the source reports none.
package currency

import (
	"strings"
)

// Ledger-style prefixed codes mapped to their plain tickers. Kraken prefixes
// crypto assets with X and fiat with Z in its exports.
var aliases = map[string]string{
	"XXBT": "XBT",
	"XETH": "ETH",
	"XLTC": "LTC",
	"XETC": "ETC",
	"XICN": "ICN",
	"XMLN": "MLN",
	"XREP": "REP",
	"XXDG": "XDG",
	"XXLM": "XLM",
	"XXMR": "XMR",
	"XXRP": "XRP",
	"XZEC": "ZEC",
	"ZAUD": "AUD",
	"ZCAD": "CAD",
	"ZEUR": "EUR",
	"ZGBP": "GBP",
	"ZJPY": "JPY",
	"ZUSD": "USD",
}

// ranking orders assets for base-side selection: the side ranked earlier is
// the base of a pair. Crypto majors come before stablecoins, stablecoins
// before fiat; anything unlisted ranks last.
var ranking = []string{
	"XBT",
	"BTC",
	"ETH",
	"LTC",
	"BCH",
	"XRP",
	"XLM",
	"XMR",
	"DASH",
	"ZEC",
	"ETC",
	"REP",
	"MLN",
	"XDG",
	"DOGE",
	"ADA",
	"DOT",
	"SOL",
	"ATOM",
	"LINK",
	"USDT",
	"USDC",
	"DAI",
	"EUR",
	"USD",
	"GBP",
	"CHF",
	"CAD",
	"AUD",
	"JPY",
	"SEK",
	"NOK",
	"DKK",
}

var rank = buildRank(ranking)

func buildRank(codes []string) map[string]int {
	m := make(map[string]int, len(codes))
	for i, code := range codes {
		m[code] = i
	}
	return m
}

// Service is a stateless registry: the same code always resolves and ranks
// the same way.
type Service struct{}

func NewService() Service {
	return Service{}
}

// Normalize canonicalizes an asset ticker: whitespace trimmed, upper-cased,
// ledger-style aliases resolved. Codes without an alias pass through as is.
func (Service) Normalize(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if plain, ok := aliases[c]; ok {
		return plain
	}
	return c
}

// Priority returns the asset's position in the base-side ranking. Unlisted
// assets share the lowest priority, one past the last ranked entry.
func (s Service) Priority(code string) int {
	if p, ok := rank[s.Normalize(code)]; ok {
		return p
	}
	return len(ranking)
}
