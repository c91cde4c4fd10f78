package normalize

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cryptotax/internal/dto"
)

// Kraken ledger exports spread one trade over two consecutive rows, one per
// asset moved, marked type=trade. Rows of any other ledger type (deposit,
// withdrawal, transfer, ...) carry no trade data.
const ledgerTrade = "trade"

type ledgerLeg struct {
	asset  string
	amount decimal.Decimal
	fee    decimal.Decimal
	time   int64
}

// LedgerPairer rebuilds trades from a Kraken ledger stream. It buffers trade
// legs until it holds two, then folds them into one trade. Legs pair only
// when adjacent: a row of any other ledger type arriving on top of a
// half-collected pair drops that pair. One pairer owns one stream.
type LedgerPairer struct {
	cur     CurrencyService
	pending []ledgerLeg
}

func NewLedgerPairer(cur CurrencyService) *LedgerPairer {
	return &LedgerPairer{cur: cur}
}

// Reset drops any half-collected pair, e.g. at end of stream.
func (p *LedgerPairer) Reset() {
	p.pending = p.pending[:0]
}

// Push feeds one ledger row through the pairer. A completed pair comes back
// as a trade, anomalies come back as warnings, and only a malformed field of
// a trade leg is an error.
func (p *LedgerPairer) Push(rec dto.Record) (*dto.Trade, []string, error) {
	rowType := rec.Get("type")
	if rowType != ledgerTrade {
		if len(p.pending) > 0 {
			warn := fmt.Sprintf("dropping unpaired %s trade leg: %q ledger row arrived before its counterpart", p.pending[0].asset, rowType)
			p.Reset()
			return nil, []string{warn}, nil
		}
		return nil, nil, nil
	}

	leg, err := p.parseLeg(rec)
	if err != nil {
		return nil, nil, err
	}
	p.pending = append(p.pending, leg)
	if len(p.pending) < 2 {
		return nil, nil, nil
	}

	trade, warnings := p.fold()
	return &trade, warnings, nil
}

func (p *LedgerPairer) parseLeg(rec dto.Record) (ledgerLeg, error) {
	amount, err := parseAmount(rec.Get("amount"))
	if err != nil {
		return ledgerLeg{}, err
	}
	fee, err := parseAmount(rec.Get("fee"))
	if err != nil {
		return ledgerLeg{}, err
	}
	ts, err := parseTime(rec.Get("time"))
	if err != nil {
		return ledgerLeg{}, err
	}
	return ledgerLeg{
		asset:  p.cur.Normalize(rec.Get("asset")),
		amount: amount,
		fee:    fee,
		time:   ts,
	}, nil
}

// fold collapses the two buffered legs into one trade and clears the buffer.
// Legs should share a timestamp; when they do not, the first leg's timestamp
// wins and the mismatch is reported. The leg ranked earlier by the currency
// service is the base side. On a rank tie the second-buffered leg is the
// base; that falls out of how ledger rows happen to be ordered rather than
// any exchange rule.
func (p *LedgerPairer) fold() (dto.Trade, []string) {
	first, second := p.pending[0], p.pending[1]
	p.Reset()

	var warnings []string
	if first.time != second.time {
		warnings = append(warnings, fmt.Sprintf("trade legs %s/%s disagree on timestamp (%d vs %d), keeping the first", first.asset, second.asset, first.time, second.time))
	}

	base, quote := second, first
	if p.cur.Priority(first.asset) < p.cur.Priority(second.asset) {
		base, quote = first, second
	}

	return dto.Trade{
		Exchange:    dto.Kraken,
		BaseAsset:   base.asset,
		QuoteAsset:  quote.asset,
		BaseAmount:  base.amount.Abs(),
		QuoteAmount: quote.amount.Abs(),
		Sell:        base.amount.IsPositive(),
		Time:        first.time,
		FeeAsset:    base.asset,
		FeeAmount:   base.fee,
	}, warnings
}
