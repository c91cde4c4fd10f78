package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		code     string
		expected string
	}{
		{name: "Plain ticker passes through", code: "BTC", expected: "BTC"},
		{name: "Short ledger code stays", code: "XBT", expected: "XBT"},
		{name: "Prefixed crypto code", code: "XXBT", expected: "XBT"},
		{name: "Prefixed fiat code", code: "ZEUR", expected: "EUR"},
		{name: "Lower case folds", code: "xeth", expected: "ETH"},
		{name: "Whitespace trimmed", code: " eur ", expected: "EUR"},
		{name: "Unknown ticker passes through", code: "WAT", expected: "WAT"},
	}

	svc := NewService()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, svc.Normalize(tc.code))
		})
	}
}

func TestPriorityOrdersCryptoBeforeFiat(t *testing.T) {
	svc := NewService()

	assert.Less(t, svc.Priority("XBT"), svc.Priority("EUR"))
	assert.Less(t, svc.Priority("ETH"), svc.Priority("USDT"))
	assert.Less(t, svc.Priority("USDT"), svc.Priority("USD"))
}

func TestPriorityResolvesAliases(t *testing.T) {
	svc := NewService()

	assert.Equal(t, svc.Priority("XBT"), svc.Priority("XXBT"))
	assert.Equal(t, svc.Priority("EUR"), svc.Priority("zeur"))
}

func TestPriorityUnknownRanksLast(t *testing.T) {
	svc := NewService()

	assert.Equal(t, svc.Priority("WAT"), svc.Priority("HUH"))
	assert.Greater(t, svc.Priority("WAT"), svc.Priority("DKK"))
}
