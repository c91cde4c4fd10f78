package valuate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptotax/internal/dto"
)

func TestTableRate(t *testing.T) {
	table := NewTable("eur")
	table.Set("xbt", decimal.RequireFromString("30000"))

	rate, ok := table.Rate("XBT", 0)
	assert.True(t, ok)
	assert.Equal(t, "30000", rate.String())

	rate, ok = table.Rate("EUR", 0)
	assert.True(t, ok)
	assert.Equal(t, "1", rate.String())

	_, ok = table.Rate("DOGE", 0)
	assert.False(t, ok)

	assert.Equal(t, "EUR", table.Fiat())
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fiat":"EUR","rates":{"XBT":"30000","ETH":1200.5}}`), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", table.Fiat())

	rate, ok := table.Rate("ETH", 0)
	assert.True(t, ok)
	assert.Equal(t, "1200.5", rate.String())
}

func TestLoadTableErrors(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "nofiat.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rates":{}}`), 0o644))
	_, err = LoadTable(path)
	assert.ErrorContains(t, err, "fiat")
}

func TestValuatorApply(t *testing.T) {
	table := NewTable("EUR")
	table.Set("XBT", decimal.RequireFromString("30000"))

	v := New(table, zerolog.Nop())
	trade := dto.Trade{
		Exchange:    dto.Kraken,
		BaseAsset:   "XBT",
		QuoteAsset:  "EUR",
		BaseAmount:  decimal.RequireFromString("0.5"),
		QuoteAmount: decimal.RequireFromString("15000"),
		FeeAsset:    "XBT",
		FeeAmount:   decimal.RequireFromString("0.001"),
	}
	v.Apply(&trade)

	require.NotNil(t, trade.Value)
	assert.Equal(t, "15000", trade.Value.String())
	require.NotNil(t, trade.Fee)
	assert.Equal(t, "30", trade.Fee.String())
}

func TestValuatorWarnsOncePerMissingAsset(t *testing.T) {
	var buf bytes.Buffer
	v := New(NewTable("EUR"), zerolog.New(&buf))

	for i := 0; i < 3; i++ {
		trade := dto.Trade{
			BaseAsset:  "DOGE",
			BaseAmount: decimal.RequireFromString("100"),
			FeeAsset:   "DOGE",
		}
		v.Apply(&trade)
		assert.Nil(t, trade.Value)
		assert.Nil(t, trade.Fee)
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "no rate"))
}

func TestValuatorRun(t *testing.T) {
	table := NewTable("EUR")
	table.Set("XBT", decimal.RequireFromString("30000"))
	v := New(table, zerolog.Nop())

	in := make(chan dto.Trade, 4)
	out := make(chan dto.Trade, 4)
	in <- dto.Trade{BaseAsset: "XBT", BaseAmount: decimal.RequireFromString("2"), FeeAsset: "XBT"}
	in <- dto.Trade{BaseAsset: "AAA", BaseAmount: decimal.RequireFromString("5"), FeeAsset: "AAA"}
	close(in)

	err := v.Run(context.Background(), in, out)
	assert.NoError(t, err)

	first, second := <-out, <-out
	require.NotNil(t, first.Value)
	assert.Equal(t, "60000", first.Value.String())
	assert.Nil(t, second.Value)
}

func TestValuatorRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := New(NewTable("EUR"), zerolog.Nop())
	err := v.Run(ctx, make(chan dto.Trade), make(chan dto.Trade))
	assert.ErrorIs(t, err, context.Canceled)
}
