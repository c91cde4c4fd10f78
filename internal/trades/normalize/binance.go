package normalize

import (
	"fmt"
	"strings"

	"cryptotax/internal/dto"
)

// Binance maps one row of a Binance trade-history export onto a trade. The
// Market column concatenates the pair with the base asset in the trailing
// three characters (ETHBTC is quote ETH, base BTC), and the numeric columns
// use comma digit grouping.
func Binance(rec dto.Record, cur CurrencyService) (dto.Trade, error) {
	market := rec.Get("Market")
	if len(market) < 4 {
		return dto.Trade{}, fmt.Errorf("bad market %q", market)
	}
	base := market[len(market)-3:]
	quote := market[:len(market)-3]

	amount, err := parseAmount(rec.Get("Amount"))
	if err != nil {
		return dto.Trade{}, err
	}
	price, err := parseAmount(rec.Get("Price"))
	if err != nil {
		return dto.Trade{}, err
	}
	fee, err := parseAmount(rec.Get("Fee"))
	if err != nil {
		return dto.Trade{}, err
	}
	ts, err := parseTime(rec.Get("Date(UTC)"))
	if err != nil {
		return dto.Trade{}, err
	}

	return dto.Trade{
		Exchange:    dto.Binance,
		BaseAsset:   cur.Normalize(base),
		QuoteAsset:  cur.Normalize(quote),
		BaseAmount:  amount.Mul(price),
		QuoteAmount: amount,
		Sell:        strings.Contains(rec.Get("Type"), "SELL"),
		Time:        ts,
		FeeAsset:    cur.Normalize(rec.Get("Fee Coin")),
		FeeAmount:   fee,
	}, nil
}
