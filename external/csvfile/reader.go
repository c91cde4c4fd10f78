// Package csvfile streams rows of exchange csv exports as generic records.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cryptotax/internal/dto"
)

// Reader walks one or more csv files and hands every data row downstream as
// a dto.Record tagged with its origin file and line.
type Reader struct {
	paths []string
}

func NewReader(paths ...string) *Reader {
	return &Reader{paths: paths}
}

// Stream sends all rows of all files to out, file order first, row order
// within a file. It does not close out.
func (r *Reader) Stream(ctx context.Context, out chan<- dto.Record) error {
	for _, path := range r.paths {
		if err := streamFile(ctx, path, out); err != nil {
			return err
		}
	}
	return nil
}

func streamFile(ctx context.Context, path string, out chan<- dto.Record) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read csv header %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv %s: %w", path, err)
		}
		if blank(cells) {
			continue
		}
		line, _ := cr.FieldPos(0)
		rec := dto.NewRecord(header, cells)
		rec.Set(dto.MetaFile, path)
		rec.Set(dto.MetaRow, strconv.Itoa(line))
		select {
		case out <- rec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
