package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseAmount converts an export's decimal string into a Decimal. Exports
// write numbers for humans, with commas as digit grouping; those are dropped
// before parsing.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("bad amount %q: %w", s, err)
	}
	return d, nil
}

// Timestamp layouts seen across the supported exports. Zoneless layouts
// parse as UTC, and a trailing fractional-seconds field is accepted even
// where the layout has none.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"1/2/2006 3:04:05 PM",
	"2006-01-02",
}

// parseTime converts an export timestamp into Unix milliseconds.
func parseTime(s string) (int64, error) {
	v := strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("bad timestamp %q", s)
}
