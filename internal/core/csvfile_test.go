package core

import (
	"os"
	"path/filepath"
	"testing"
)

const testHeader = "customer_email,customer_first_name,customer_last_name," +
	"shipping_address1,shipping_city,shipping_state,shipping_country,shipping_zip," +
	"payment_method,product_1_name,product_1_price,product_1_quantity"

func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestReadRecords_UTF8(t *testing.T) {
	data := []byte(testHeader + "\n" +
		"a@example.com,Ann,Lee,1 Main St,Austin,TX,,78701,PAID,Widget,9.99,2\n" +
		"b@example.com,Bob,Ray,2 Oak Ave,Dallas,TX,Canada,75201,COD,Gadget,5.00,\n")

	records, err := ReadRecords(writeTestFile(t, data))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	first := records[0]
	if first.CustomerEmail != "a@example.com" {
		t.Errorf("email = %q", first.CustomerEmail)
	}
	if first.ShippingCountry != "" {
		t.Errorf("country = %q, want empty (defaulting happens later)", first.ShippingCountry)
	}
	if first.Products[0].Name != "Widget" || first.Products[0].Quantity != "2" {
		t.Errorf("product slot 1 = %+v", first.Products[0])
	}
	if records[1].Products[0].Quantity != "" {
		t.Errorf("missing quantity should read as empty, got %q", records[1].Products[0].Quantity)
	}
}

func TestReadRecords_BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(testHeader+"\n"+
		"a@example.com,Ann,Lee,1 Main St,Austin,TX,,78701,PAID,Widget,9.99,1\n")...)

	records, err := ReadRecords(writeTestFile(t, data))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	// BOM must not contaminate the first column name
	if records[0].CustomerEmail != "a@example.com" {
		t.Errorf("email = %q, BOM likely broke the header", records[0].CustomerEmail)
	}
}

func TestReadRecords_Latin1Fallback(t *testing.T) {
	// "Caf\xe9" is ISO 8859-1 for Café and invalid UTF-8
	data := []byte(testHeader + "\n" +
		"a@example.com,Ren\xe9,Lee,1 Main St,Austin,TX,,78701,PAID,Caf\xe9 Mug,9.99,1\n")

	records, err := ReadRecords(writeTestFile(t, data))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].CustomerFirstName != "René" {
		t.Errorf("first name = %q, want %q", records[0].CustomerFirstName, "René")
	}
	if records[0].Products[0].Name != "Café Mug" {
		t.Errorf("product name = %q, want %q", records[0].Products[0].Name, "Café Mug")
	}
}

func TestReadRecords_SkipsEmptyRows(t *testing.T) {
	data := []byte(testHeader + "\n" +
		"a@example.com,Ann,Lee,1 Main St,Austin,TX,,78701,PAID,Widget,9.99,1\n" +
		",,,,,,,,,,,\n" +
		"b@example.com,Bob,Ray,2 Oak Ave,Dallas,TX,,75201,COD,Gadget,5.00,1\n")

	records, err := ReadRecords(writeTestFile(t, data))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2 (blank row skipped)", len(records))
	}
}

func TestReadRecords_ShortRows(t *testing.T) {
	data := []byte(testHeader + "\n" + "a@example.com,Ann\n")

	records, err := ReadRecords(writeTestFile(t, data))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].CustomerLastName != "" || records[0].PaymentMethod != "" {
		t.Errorf("short row cells should read as empty, got %+v", records[0])
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("ReadRecords() expected error for missing file")
	}
}

func TestReadRecords_EmptyFile(t *testing.T) {
	records, err := ReadRecords(writeTestFile(t, nil))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}
