// Package format identifies which exchange export a record came from by its
// field-name signature alone.
package format

import (
	"strings"
)

// Format is the detected source format of a record.
type Format int

const (
	Unknown Format = iota
	Binance
	Bittrex
	Kraken
)

func (f Format) String() string {
	switch f {
	case Binance:
		return "Binance"
	case Bittrex:
		return "Bittrex"
	case Kraken:
		return "Kraken"
	default:
		return "Unknown"
	}
}

// Known export signatures: field names joined by | in source column order.
const (
	binanceSignature = "Date(UTC)|Market|Type|Price|Amount|Total|Fee|Fee Coin"
	bittrexSignature = "OrderUuid|Exchange|Type|Quantity|Limit|CommissionPaid|Price|Opened|Closed"
	krakenSignature  = "txid|refid|time|type|aclass|asset|amount|fee|balance"
)

var formats = map[string]Format{
	binanceSignature: Binance,
	bittrexSignature: Bittrex,
	krakenSignature:  Kraken,
}

// Signature flattens field names into the lookup string for their format.
func Signature(fields []string) string {
	return strings.Join(fields, "|")
}

// Detect reports the format matching the given field names. Column order
// matters: exports write their columns in a fixed order, and a reordered
// header is not a known format. Callers pass names with any reader-injected
// bookkeeping fields already stripped.
func Detect(fields []string) Format {
	return formats[Signature(fields)]
}
