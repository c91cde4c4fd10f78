package main

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"cryptotax/internal/dto"
)

// report accumulates the closing aggregate. Fiat totals are only tracked
// when a reporting fiat is set.
type report struct {
	fiat     string
	trades   int
	buys     int
	sells    int
	value    decimal.Decimal
	fees     decimal.Decimal
	unvalued int
}

func newReport(fiat string) *report {
	return &report{fiat: fiat}
}

func (r *report) add(trade dto.Trade) {
	r.trades++
	if trade.Sell {
		r.sells++
	} else {
		r.buys++
	}
	if r.fiat == "" {
		return
	}
	if trade.Value != nil {
		r.value = r.value.Add(*trade.Value)
	} else {
		r.unvalued++
	}
	if trade.Fee != nil {
		r.fees = r.fees.Add(*trade.Fee)
	}
}

func (r *report) write(w io.Writer) {
	fmt.Fprintf(w, "\ntrades: %d (%d buys, %d sells)\n", r.trades, r.buys, r.sells)
	if r.fiat == "" {
		return
	}
	fmt.Fprintf(w, "total value: %s %s\n", r.value, r.fiat)
	fmt.Fprintf(w, "total fees: %s %s\n", r.fees, r.fiat)
	if r.unvalued > 0 {
		fmt.Fprintf(w, "unvalued trades: %d\n", r.unvalued)
	}
}

func printTrade(w io.Writer, trade dto.Trade, fiat string) {
	action := "buy"
	if trade.Sell {
		action = "sell"
	}
	ts := time.UnixMilli(trade.Time).UTC().Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "%s  %-8s %-4s %-11s %s %s / %s %s",
		ts, trade.Exchange, action, trade.Pair(),
		trade.BaseAmount, trade.BaseAsset, trade.QuoteAmount, trade.QuoteAsset)
	if trade.Value != nil {
		fmt.Fprintf(w, "  value %s %s", trade.Value, fiat)
	}
	fmt.Fprintln(w)
}
