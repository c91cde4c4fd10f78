// Package export reads and writes trades as JSON Lines, the on-disk and
// on-wire form shared by the import and report services.
package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"cryptotax/internal/dto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode renders one trade as a single JSONL payload, without the newline.
func Encode(trade dto.Trade) ([]byte, error) {
	return json.Marshal(trade)
}

// Decode parses one JSONL payload, e.g. a Kafka message value.
func Decode(payload []byte) (dto.Trade, error) {
	var trade dto.Trade
	if err := json.Unmarshal(payload, &trade); err != nil {
		return dto.Trade{}, fmt.Errorf("decode trade: %w", err)
	}
	return trade, nil
}

// Writer encodes trades to an underlying stream, one JSON object per line.
type Writer struct {
	buf   *bufio.Writer
	enc   *jsoniter.Encoder
	count int
}

func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	return &Writer{buf: buf, enc: json.NewEncoder(buf)}
}

// Write appends one trade as a single line.
func (w *Writer) Write(trade dto.Trade) error {
	if err := w.enc.Encode(trade); err != nil {
		return fmt.Errorf("encode trade: %w", err)
	}
	w.count++
	return nil
}

// Count reports how many trades have been written so far.
func (w *Writer) Count() int { return w.count }

// Flush pushes buffered lines to the underlying stream.
func (w *Writer) Flush() error { return w.buf.Flush() }

// Run drains in to the stream until it closes or ctx ends, then flushes.
func (w *Writer) Run(ctx context.Context, in <-chan dto.Trade) error {
	for {
		select {
		case <-ctx.Done():
			_ = w.Flush()
			return ctx.Err()
		case trade, ok := <-in:
			if !ok {
				return w.Flush()
			}
			if err := w.Write(trade); err != nil {
				return err
			}
		}
	}
}

// ReadAll loads every trade from a JSON Lines file written by Writer.
func ReadAll(path string) ([]dto.Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trades: %w", err)
	}
	defer f.Close()

	var trades []dto.Trade
	dec := json.NewDecoder(f)
	for {
		var trade dto.Trade
		if err := dec.Decode(&trade); err != nil {
			if errors.Is(err, io.EOF) {
				return trades, nil
			}
			return nil, fmt.Errorf("decode trades %s: %w", path, err)
		}
		trades = append(trades, trade)
	}
}
