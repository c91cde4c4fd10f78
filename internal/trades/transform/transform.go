// Package transform drives raw csv records through format detection and
// normalization, turning mixed exchange exports into a single trade stream.
package transform

import (
	"context"
	"fmt"
	"time"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/rs/zerolog"

	"cryptotax/internal/dto"
	"cryptotax/internal/trades/format"
	"cryptotax/internal/trades/normalize"
)

// Transform consumes csv records and emits normalized trades. Rows whose
// column signature matches no known exchange are dropped, with one warning
// per distinct signature. A Transform is bound to one record stream: the
// Kraken pairer inside it carries state across consecutive rows.
type Transform struct {
	cur     normalize.CurrencyService
	pairer  *normalize.LedgerPairer
	unknown *hashset.Set
	logger  zerolog.Logger
	verbose bool
}

func New(cur normalize.CurrencyService, logger zerolog.Logger, verbose bool) *Transform {
	return &Transform{
		cur:     cur,
		pairer:  normalize.NewLedgerPairer(cur),
		unknown: hashset.New(),
		logger:  logger,
		verbose: verbose,
	}
}

// Run pumps records from in to trades on out until in closes or ctx ends.
// A malformed row aborts the run with an error naming its file and row.
func (t *Transform) Run(ctx context.Context, in <-chan dto.Record, out chan<- dto.Trade) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rec, ok := <-in:
			if !ok {
				t.pairer.Reset()
				return nil
			}
			trade, emit, err := t.process(rec)
			if err != nil {
				return fmt.Errorf("%s row %s: %w", rec.File(), rec.Row(), err)
			}
			if !emit {
				continue
			}
			if t.verbose {
				t.announce(trade)
			}
			select {
			case out <- trade:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (t *Transform) process(rec dto.Record) (dto.Trade, bool, error) {
	switch format.Detect(rec.Fields()) {
	case format.Binance:
		trade, err := normalize.Binance(rec, t.cur)
		if err != nil {
			return dto.Trade{}, false, err
		}
		return trade, true, nil
	case format.Bittrex:
		trade, err := normalize.Bittrex(rec, t.cur)
		if err != nil {
			return dto.Trade{}, false, err
		}
		return trade, true, nil
	case format.Kraken:
		trade, warnings, err := t.pairer.Push(rec)
		for _, warn := range warnings {
			t.logger.Warn().Str("file", rec.File()).Str("row", rec.Row()).Msg(warn)
		}
		if err != nil {
			return dto.Trade{}, false, err
		}
		if trade == nil {
			return dto.Trade{}, false, nil
		}
		return *trade, true, nil
	default:
		t.skip(rec)
		return dto.Trade{}, false, nil
	}
}

// skip drops a record nothing can normalize. The first sighting of a
// signature is logged, later rows with the same columns go quietly.
func (t *Transform) skip(rec dto.Record) {
	sig := format.Signature(rec.Fields())
	if t.unknown.Contains(sig) {
		return
	}
	t.unknown.Add(sig)
	t.logger.Warn().
		Str("file", rec.File()).
		Str("signature", sig).
		Msg("unrecognized csv columns, skipping")
}

func (t *Transform) announce(trade dto.Trade) {
	action := "buy"
	if trade.Sell {
		action = "sell"
	}
	t.logger.Info().
		Str("exchange", trade.Exchange.String()).
		Str("pair", trade.Pair()).
		Str("time", time.UnixMilli(trade.Time).Local().Format("2006-01-02 15:04:05")).
		Msg(action)
}
