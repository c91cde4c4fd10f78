package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "1.5", want: "1.5"},
		{name: "thousands separators", in: "1,234.56", want: "1234.56"},
		{name: "surrounding whitespace", in: " 42 ", want: "42"},
		{name: "negative", in: "-0.1", want: "-0.1"},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "n/a", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseAmount(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestParseTime(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "rfc3339", in: "2021-01-02T00:00:00Z", want: 1609545600000},
		{name: "ledger style", in: "2021-03-01 10:00:00", want: 1614592800000},
		{name: "ledger style with fraction", in: "2021-03-01 10:00:00.1234", want: 1614592800123},
		{name: "us style", in: "1/2/2021 3:04:05 PM", want: 1609599845000},
		{name: "date only", in: "2021-01-01", want: 1609459200000},
		{name: "garbage", in: "yesterday", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseTime(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
