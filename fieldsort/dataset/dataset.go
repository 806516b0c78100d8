// Package dataset holds rows loaded from a record file and sorts them with
// the attribute names found in the file.
package dataset

import (
	"path/filepath"

	"github.com/arthur-debert/fieldsort/formats"
	"github.com/google/uuid"
)

// Row is one record of a file, tagged with an identity that survives
// reordering
type Row struct {
	ID     uuid.UUID
	Fields formats.Record
}

// Dataset is the content of one record file
type Dataset struct {
	Path   string
	Format *formats.RecordFormat
	Rows   []*Row
}

// FromRecords wraps records in rows, each with a fresh random ID
func FromRecords(records []formats.Record) []*Row {
	rows := make([]*Row, len(records))
	for i, rec := range records {
		rows[i] = &Row{ID: uuid.New(), Fields: rec}
	}
	return rows
}

// Records returns the rows' records in row order
func Records(rows []*Row) []formats.Record {
	records := make([]formats.Record, len(rows))
	for i, row := range rows {
		records[i] = row.Fields
	}
	return records
}

// Name is the file's base name, used as the row type name in reports
func (d *Dataset) Name() string {
	return filepath.Base(d.Path)
}

// Accessor builds an accessor over the dataset's rows
func (d *Dataset) Accessor() *Accessor {
	return NewAccessor(d.Name(), d.Rows)
}
