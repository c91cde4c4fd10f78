package normalize

import (
	"fmt"
	"strings"

	"cryptotax/internal/dto"
)

// Bittrex maps one row of a Bittrex order export onto a trade. The Exchange
// column names the pair as BASE-QUOTE; Limit carries the executed price and
// Quantity the traded amount, so Limit becomes the base amount and Quantity
// the quote amount. The commission is charged in the base asset.
func Bittrex(rec dto.Record, cur CurrencyService) (dto.Trade, error) {
	pair := rec.Get("Exchange")
	base, quote, ok := strings.Cut(pair, "-")
	if !ok || base == "" || quote == "" {
		return dto.Trade{}, fmt.Errorf("bad pair %q", pair)
	}

	quantity, err := parseAmount(rec.Get("Quantity"))
	if err != nil {
		return dto.Trade{}, err
	}
	limit, err := parseAmount(rec.Get("Limit"))
	if err != nil {
		return dto.Trade{}, err
	}
	commission, err := parseAmount(rec.Get("CommissionPaid"))
	if err != nil {
		return dto.Trade{}, err
	}
	ts, err := parseTime(rec.Get("Closed"))
	if err != nil {
		return dto.Trade{}, err
	}

	baseAsset := cur.Normalize(base)
	return dto.Trade{
		Exchange:    dto.Bittrex,
		BaseAsset:   baseAsset,
		QuoteAsset:  cur.Normalize(quote),
		BaseAmount:  limit,
		QuoteAmount: quantity,
		Sell:        strings.Contains(rec.Get("Type"), "SELL"),
		Time:        ts,
		FeeAsset:    baseAsset,
		FeeAmount:   commission,
	}, nil
}
