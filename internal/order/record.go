// Package order converts raw CSV rows into Shopline order payloads.
// This package has no I/O dependencies and can be used by any frontend.
package order

// ProductSlots is the number of fixed product columns in the input file
// (product_1_* through product_5_*).
const ProductSlots = 5

// ProductSlot holds the raw text values of one product column group.
type ProductSlot struct {
	Name     string
	Price    string
	Quantity string
}

// Record is one raw input row with named fields. All values are unprocessed
// text exactly as read from the file; missing cells are empty strings.
// Presence/absence is decided during normalization, never by callers.
type Record struct {
	CustomerEmail     string
	CustomerFirstName string
	CustomerLastName  string
	ShippingAddress1  string
	ShippingCity      string
	ShippingState     string
	ShippingCountry   string
	ShippingZip       string
	PaymentMethod     string
	Products          [ProductSlots]ProductSlot
}

// Customer identifies the buyer on an order.
type Customer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ShippingAddress is the delivery address on an order.
type ShippingAddress struct {
	Address1 string `json:"address1"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
}

// LineItem is one purchasable line on an order. Price stays a decimal string;
// the API owns its interpretation.
type LineItem struct {
	Title            string `json:"title"`
	Price            string `json:"price"`
	Quantity         int    `json:"quantity"`
	RequiresShipping bool   `json:"requires_shipping"`
	Taxable          bool   `json:"taxable"`
}

// Payload is the order representation sent to the Shopline Admin API as the
// "order" body field of a create-order request.
type Payload struct {
	Customer          Customer        `json:"customer"`
	ShippingAddress   ShippingAddress `json:"shipping_address"`
	LineItems         []LineItem      `json:"line_items"`
	FinancialStatus   string          `json:"financial_status"`
	FulfillmentStatus string          `json:"fulfillment_status"`
	SendReceipt       bool            `json:"send_receipt"`
}
