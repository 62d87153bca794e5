package schema_test

import (
	"testing"

	"nl2sql/internal/schema"
)

func TestAnalyzeMeaning(t *testing.T) {
	tests := []struct {
		col     string
		comment string
		want    string
	}{
		{"Email", "", "email"},
		{"CustomerId", "", "customer id"},
		{"cust_nm", "", "customer name"},
		{"HTTPStatus", "", "http status"},
		{"tel_no", "", "phone number"},
		{"Col1", "Mobile phone of the contact", "phone"},
		{"x", "Unit price incl. VAT", "price"},
		{"BillingAddress", "", "billing address"},
	}
	for _, tt := range tests {
		if got := schema.AnalyzeMeaning(tt.col, tt.comment); got != tt.want {
			t.Errorf("AnalyzeMeaning(%q, %q) = %q, want %q", tt.col, tt.comment, got, tt.want)
		}
	}
}
