package dto

import (
	"strings"
)

// Bookkeeping fields the reading layer injects into records for diagnostics.
// They are not part of the source file and must never reach format detection.
const (
	MetaFile = "__file"
	MetaRow  = "__row"

	metaPrefix = "__"
)

// Record is one header-mapped row of a delimited export. Field names keep
// their source column order; that order identifies the file format.
type Record struct {
	names  []string
	values map[string]string
}

// NewRecord pairs a header with one data row. Rows shorter than the header
// leave the trailing fields empty; surplus row values are dropped.
func NewRecord(header, row []string) Record {
	values := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(row) {
			values[name] = row[i]
		} else {
			values[name] = ""
		}
	}
	return Record{
		names:  append([]string(nil), header...),
		values: values,
	}
}

// Get returns the value of the named field, or "" if the record has none.
func (r Record) Get(name string) string {
	return r.values[name]
}

// Set adds or replaces a field. A new name goes to the end of the field order.
func (r *Record) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string, 1)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Fields returns the source field names in column order, with injected
// bookkeeping fields stripped.
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r.names))
	for _, name := range r.names {
		if strings.HasPrefix(name, metaPrefix) {
			continue
		}
		fields = append(fields, name)
	}
	return fields
}

// File reports which file the record came from, when the reader said so.
func (r Record) File() string {
	return r.values[MetaFile]
}

// Row reports the record's line number within its file, when known.
func (r Record) Row() string {
	return r.values[MetaRow]
}
