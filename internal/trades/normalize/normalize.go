// Package normalize maps exchange-specific export rows onto canonical trades.
// Each exchange has its own mapper; all of them lean on a currency service
// for ticker canonicalization, and the Kraken mapper additionally uses its
// priority ranking to tell the base leg from the quote leg.
package normalize

// CurrencyService canonicalizes asset tickers and ranks them for base-side
// selection. Both calls must be pure: one code, one answer.
type CurrencyService interface {
	Normalize(code string) string
	Priority(code string) int
}
