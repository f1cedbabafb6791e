// Package export renders the item collection as downloadable tables.
package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/talkincode/inventory/internal/domain"
)

const (
	CSVFilename  = "inventory_export.csv"
	XLSXFilename = "inventory_export.xlsx"

	CSVContentType  = "text/csv; charset=utf-8"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Row is the exported shape of an item. The csv tags give the header names.
type Row struct {
	ID          int64  `csv:"id"`
	Name        string `csv:"name"`
	Category    string `csv:"category"`
	Quantity    int    `csv:"quantity"`
	Price       string `csv:"price"`
	Status      string `csv:"status"`
	Supplier    string `csv:"supplier"`
	LastUpdated string `csv:"lastUpdated"`
	SKU         string `csv:"sku"`
	Description string `csv:"description"`
}

// Header lists the exported column names in order
var Header = []string{"id", "name", "category", "quantity", "price", "status", "supplier", "lastUpdated", "sku", "description"}

// quoted marks the text columns; numeric columns are written bare
var quoted = map[string]bool{
	"name": true, "category": true, "status": true, "supplier": true,
	"lastUpdated": true, "sku": true, "description": true,
}

func toRows(items []domain.InventoryItem) []*Row {
	rows := make([]*Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, &Row{
			ID:          it.ID,
			Name:        it.Name,
			Category:    it.Category,
			Quantity:    it.Quantity,
			Price:       it.Price.String(),
			Status:      string(it.Status),
			Supplier:    it.Supplier,
			LastUpdated: it.LastUpdated.String(),
			SKU:         it.SKU,
			Description: it.Description,
		})
	}
	return rows
}

// WriteCSV writes items as CSV: a bare header row, then one row per item
// with text fields always quoted ("" escapes a quote) and numbers bare.
// Rows are separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, items []domain.InventoryItem) error {
	cw := newQuotingWriter(w)
	if len(items) == 0 {
		if err := cw.Write(Header); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}
	if err := gocsv.MarshalCSV(toRows(items), cw); err != nil {
		return errors.Wrap(err, "marshal csv")
	}
	cw.Flush()
	return cw.Error()
}

// quotingWriter implements gocsv.CSVWriter. The first row written is the
// header and decides which columns are quoted.
type quotingWriter struct {
	w     *bufio.Writer
	quote []bool
	rows  int
	err   error
}

var _ gocsv.CSVWriter = (*quotingWriter)(nil)

func newQuotingWriter(w io.Writer) *quotingWriter {
	return &quotingWriter{w: bufio.NewWriter(w)}
}

func (q *quotingWriter) Write(row []string) error {
	if q.err != nil {
		return q.err
	}
	if q.rows > 0 {
		q.err = q.w.WriteByte('\n')
	}
	for i, cell := range row {
		if q.err != nil {
			break
		}
		if i > 0 {
			q.err = q.w.WriteByte(',')
			if q.err != nil {
				break
			}
		}
		if q.rows > 0 && i < len(q.quote) && q.quote[i] {
			cell = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		_, q.err = q.w.WriteString(cell)
	}
	if q.rows == 0 {
		q.quote = make([]bool, len(row))
		for i, name := range row {
			q.quote[i] = quoted[name]
		}
	}
	q.rows++
	return q.err
}

func (q *quotingWriter) Flush() {
	if q.err == nil {
		q.err = q.w.Flush()
	}
}

func (q *quotingWriter) Error() error {
	return q.err
}
