package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidQuantity is returned when a product slot's quantity is present
// but does not parse as an integer. This is the only normalization failure:
// defaulting a garbled quantity would silently corrupt the order.
var ErrInvalidQuantity = errors.New("invalid quantity")

// DefaultCountry is substituted when the shipping country field is absent.
const DefaultCountry = "United States"

// financialStatuses maps the uppercased payment_method column to the API's
// financial_status enum. Unknown values fall back to unpaid.
var financialStatuses = map[string]string{
	"COD":  "unpaid",
	"PAID": "paid",
}

// Normalize builds an order payload from one raw row.
//
// Field coercion is best-effort: values are trimmed, and blank values or the
// textual placeholders "nan" and "null" (any case) count as absent and take
// the field's default. Line items are collected from the five fixed product
// slots in slot order; a slot contributes only when both its name and price
// are present. A payload with zero line items is still built — the API's own
// validation decides its fate downstream.
func Normalize(rec Record) (Payload, error) {
	items := make([]LineItem, 0, ProductSlots)
	for i, slot := range rec.Products {
		name := clean(slot.Name, "")
		price := clean(slot.Price, "")
		if name == "" || price == "" {
			continue
		}
		qty, err := strconv.Atoi(clean(slot.Quantity, "1"))
		if err != nil {
			return Payload{}, fmt.Errorf("product %d: %w: %q", i+1, ErrInvalidQuantity, strings.TrimSpace(slot.Quantity))
		}
		items = append(items, LineItem{
			Title:            name,
			Price:            price,
			Quantity:         qty,
			RequiresShipping: true,
			Taxable:          true,
		})
	}

	method := strings.ToUpper(clean(rec.PaymentMethod, "COD"))
	status, ok := financialStatuses[method]
	if !ok {
		status = "unpaid"
	}

	return Payload{
		Customer: Customer{
			Email:     clean(rec.CustomerEmail, ""),
			FirstName: clean(rec.CustomerFirstName, ""),
			LastName:  clean(rec.CustomerLastName, ""),
		},
		ShippingAddress: ShippingAddress{
			Address1: clean(rec.ShippingAddress1, ""),
			City:     clean(rec.ShippingCity, ""),
			Province: clean(rec.ShippingState, ""),
			Country:  clean(rec.ShippingCountry, DefaultCountry),
			Zip:      clean(rec.ShippingZip, ""),
		},
		LineItems:         items,
		FinancialStatus:   status,
		FulfillmentStatus: "unshipped",
		SendReceipt:       true,
	}, nil
}

// clean trims a raw cell value and substitutes def when the result is empty
// or one of the textual empty markers left behind by spreadsheet exports.
func clean(v, def string) string {
	s := strings.TrimSpace(v)
	switch strings.ToLower(s) {
	case "", "nan", "null":
		return def
	}
	return s
}
