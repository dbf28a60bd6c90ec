package core

// csvfile.go reads the input file into typed records.
//
// The file is decoded as UTF-8 first, tolerating a leading byte-order mark
// from Windows exports. When the bytes are not valid UTF-8 the whole file is
// re-decoded as ISO 8859-1 — the single supported fallback, not a general
// charset detector. The CSV reader treats every cell as text; missing cells
// become empty strings.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ericwinler854485/shopline-bulk/internal/order"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Expected column names. The header row must use these names; unknown
// columns are ignored and absent columns read as empty.
const (
	colCustomerEmail     = "customer_email"
	colCustomerFirstName = "customer_first_name"
	colCustomerLastName  = "customer_last_name"
	colShippingAddress1  = "shipping_address1"
	colShippingCity      = "shipping_city"
	colShippingState     = "shipping_state"
	colShippingCountry   = "shipping_country"
	colShippingZip       = "shipping_zip"
	colPaymentMethod     = "payment_method"
)

// ReadRecords loads every data row of the file at path, in file order.
// Fully empty rows are skipped. Any error here is fatal to the batch; there
// is no row-level recovery for an unreadable file.
func ReadRecords(path string) ([]order.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode input file: %w", err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := makeHeaderIndex(rows[0])

	var records []order.Record
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		records = append(records, rowToRecord(row, idx))
	}
	return records, nil
}

// makeHeaderIndex maps lowercased, trimmed column names to their position.
func makeHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		idx[key] = i
	}
	return idx
}

func rowToRecord(row []string, idx map[string]int) order.Record {
	rec := order.Record{
		CustomerEmail:     field(row, idx, colCustomerEmail),
		CustomerFirstName: field(row, idx, colCustomerFirstName),
		CustomerLastName:  field(row, idx, colCustomerLastName),
		ShippingAddress1:  field(row, idx, colShippingAddress1),
		ShippingCity:      field(row, idx, colShippingCity),
		ShippingState:     field(row, idx, colShippingState),
		ShippingCountry:   field(row, idx, colShippingCountry),
		ShippingZip:       field(row, idx, colShippingZip),
		PaymentMethod:     field(row, idx, colPaymentMethod),
	}
	for i := 0; i < order.ProductSlots; i++ {
		rec.Products[i] = order.ProductSlot{
			Name:     field(row, idx, fmt.Sprintf("product_%d_name", i+1)),
			Price:    field(row, idx, fmt.Sprintf("product_%d_price", i+1)),
			Quantity: field(row, idx, fmt.Sprintf("product_%d_quantity", i+1)),
		}
	}
	return rec
}

// field returns the cell for the named column, or "" when the column is
// missing from the header or the row is short.
func field(row []string, idx map[string]int, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
