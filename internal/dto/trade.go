package dto

import (
	"github.com/shopspring/decimal"
)

// Exchange identifies a supported trade source.
type Exchange string

const (
	Binance Exchange = "Binance"
	Bittrex Exchange = "Bittrex"
	Kraken  Exchange = "Kraken"
)

func (e Exchange) String() string {
	return string(e)
}

// Trade is the canonical form of one executed trade, whichever exchange
// reported it. Amounts are unsigned; Sell carries the direction. Time is a
// Unix timestamp in milliseconds. Value and Fee stay nil until a valuation
// stage prices the trade in fiat; the import pipeline never sets them.
type Trade struct {
	Exchange    Exchange         `json:"exchange"`
	BaseAsset   string           `json:"base_asset"`
	QuoteAsset  string           `json:"quote_asset"`
	BaseAmount  decimal.Decimal  `json:"base_amount"`
	QuoteAmount decimal.Decimal  `json:"quote_amount"`
	Sell        bool             `json:"sell"`
	Time        int64            `json:"time"`
	FeeAsset    string           `json:"fee_asset"`
	FeeAmount   decimal.Decimal  `json:"fee_amount"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Fee         *decimal.Decimal `json:"fee,omitempty"`
}

// Pair returns the BASE-QUOTE form used as the stream key.
func (t Trade) Pair() string {
	return t.BaseAsset + "-" + t.QuoteAsset
}
