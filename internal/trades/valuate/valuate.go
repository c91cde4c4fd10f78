// Package valuate prices normalized trades in a reporting fiat currency.
package valuate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cryptotax/internal/dto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RateSource answers the price of one unit of an asset in the reporting
// fiat at a given time, in unix milliseconds.
type RateSource interface {
	Rate(asset string, at int64) (decimal.Decimal, bool)
}

// Table is a RateSource backed by a flat asset to rate map. It quotes the
// same rate regardless of time, and the reporting fiat itself always rates
// at one.
type Table struct {
	fiat  string
	rates map[string]decimal.Decimal
}

func NewTable(fiat string) *Table {
	return &Table{
		fiat:  strings.ToUpper(fiat),
		rates: make(map[string]decimal.Decimal),
	}
}

func (t *Table) Fiat() string { return t.fiat }

func (t *Table) Set(asset string, rate decimal.Decimal) {
	t.rates[strings.ToUpper(asset)] = rate
}

func (t *Table) Rate(asset string, _ int64) (decimal.Decimal, bool) {
	asset = strings.ToUpper(asset)
	if asset == t.fiat {
		return decimal.NewFromInt(1), true
	}
	rate, ok := t.rates[asset]
	return rate, ok
}

type tableFile struct {
	Fiat  string                     `json:"fiat"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// LoadTable reads a rate table from a JSON file of the form
// {"fiat": "EUR", "rates": {"XBT": "30000", "ETH": "1200.5"}}.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rate table: %w", err)
	}
	defer f.Close()

	var file tableFile
	if err := json.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode rate table %s: %w", path, err)
	}
	if file.Fiat == "" {
		return nil, fmt.Errorf("rate table %s names no fiat currency", path)
	}
	table := NewTable(file.Fiat)
	for asset, rate := range file.Rates {
		table.Set(asset, rate)
	}
	return table, nil
}

// Valuator fills Value and Fee on passing trades. Trades whose assets the
// source cannot price pass through unvalued, with one warning per asset.
type Valuator struct {
	src     RateSource
	logger  zerolog.Logger
	missing *hashset.Set
}

func New(src RateSource, logger zerolog.Logger) *Valuator {
	return &Valuator{src: src, logger: logger, missing: hashset.New()}
}

// Apply values a single trade in place.
func (v *Valuator) Apply(trade *dto.Trade) {
	if rate, ok := v.rate(trade.BaseAsset, trade.Time); ok {
		value := trade.BaseAmount.Mul(rate)
		trade.Value = &value
	}
	if trade.FeeAsset == "" {
		return
	}
	if rate, ok := v.rate(trade.FeeAsset, trade.Time); ok {
		fee := trade.FeeAmount.Mul(rate)
		trade.Fee = &fee
	}
}

func (v *Valuator) rate(asset string, at int64) (decimal.Decimal, bool) {
	rate, ok := v.src.Rate(asset, at)
	if !ok && !v.missing.Contains(asset) {
		v.missing.Add(asset)
		v.logger.Warn().Str("asset", asset).Msg("no rate for asset, leaving trades unvalued")
	}
	return rate, ok
}

// Run passes trades from in to out in order, valuing each on the way.
func (v *Valuator) Run(ctx context.Context, in <-chan dto.Trade, out chan<- dto.Trade) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case trade, ok := <-in:
			if !ok {
				return nil
			}
			v.Apply(&trade)
			select {
			case out <- trade:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
