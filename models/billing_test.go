package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeriveInvoiceGross(t *testing.T) {
	tests := []struct {
		name   string
		net    string
		gst    string
		expect string
	}{
		{"standard rate", "100000", "18", "118000.00"},
		{"zero rate is identity", "5000.50", "0", "5000.50"},
		{"zero net", "0", "18", "0"},
		{"rounds to currency precision", "999.99", "18", "1179.99"},
		{"fractional rate", "1000", "12.5", "1125.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveInvoiceGross(dec(tt.net), dec(tt.gst))
			assert.True(t, got.Equal(dec(tt.expect)), "got %s, want %s", got, tt.expect)
		})
	}
}

func TestDeriveInvoiceGrossPure(t *testing.T) {
	net, gst := dec("12345.67"), dec("18")
	first := DeriveInvoiceGross(net, gst)
	second := DeriveInvoiceGross(net, gst)
	assert.True(t, first.Equal(second), "repeated derivation must not drift")
	assert.True(t, net.Equal(dec("12345.67")), "inputs must not be mutated")
}

func invoiceWithGross(no, gross string) Invoice {
	return Invoice{InvoiceNo: no, AmountWithTax: dec(gross)}
}

func receiptWith(received, tds string) Receipt {
	return Receipt{AmountReceived: dec(received), TdsAmount: dec(tds)}
}

func TestComputeBillingSummary(t *testing.T) {
	invoices := []Invoice{
		invoiceWithGross("INV-1", "11800.00"),
		invoiceWithGross("INV-2", "5900.00"),
	}
	receipts := []Receipt{
		receiptWith("11800", "0"),
		receiptWith("2000", "590"),
	}

	s := ComputeBillingSummary(invoices, receipts)
	assert.True(t, s.TotalInvoiced.Equal(dec("17700")), "invoiced: %s", s.TotalInvoiced)
	assert.True(t, s.TotalCollected.Equal(dec("13800")), "collected: %s", s.TotalCollected)
	assert.True(t, s.TotalTDS.Equal(dec("590")), "tds: %s", s.TotalTDS)
	assert.True(t, s.Outstanding.Equal(dec("3900")), "outstanding: %s", s.Outstanding)
}

func TestComputeBillingSummaryOrderIndependent(t *testing.T) {
	invoices := []Invoice{
		invoiceWithGross("A", "100.10"),
		invoiceWithGross("B", "200.20"),
		invoiceWithGross("C", "300.30"),
	}
	receipts := []Receipt{
		receiptWith("50", "1"),
		receiptWith("75.25", "2"),
	}

	forward := ComputeBillingSummary(invoices, receipts)

	reversedInvoices := []Invoice{invoices[2], invoices[1], invoices[0]}
	reversedReceipts := []Receipt{receipts[1], receipts[0]}
	backward := ComputeBillingSummary(reversedInvoices, reversedReceipts)

	assert.True(t, forward.TotalInvoiced.Equal(backward.TotalInvoiced))
	assert.True(t, forward.TotalCollected.Equal(backward.TotalCollected))
	assert.True(t, forward.Outstanding.Equal(backward.Outstanding))
}

func TestComputeBillingSummaryEmpty(t *testing.T) {
	s := ComputeBillingSummary(nil, nil)
	assert.True(t, s.TotalInvoiced.IsZero())
	assert.True(t, s.TotalCollected.IsZero())
	assert.True(t, s.Outstanding.IsZero(), "empty sets must report zero outstanding, not an error")
}

func TestComputeBillingSummaryOverCollected(t *testing.T) {
	invoices := []Invoice{invoiceWithGross("INV-1", "1000")}
	receipts := []Receipt{receiptWith("1500", "0")}

	s := ComputeBillingSummary(invoices, receipts)
	require.True(t, s.Outstanding.IsNegative(), "over-collection must report a signed negative figure")
	assert.True(t, s.Outstanding.Equal(dec("-500")))
}

func TestEndToEndAggregates(t *testing.T) {
	// Invoice of 10000 at 18% GST, fully collected.
	gross := DeriveInvoiceGross(dec("10000"), dec("18"))
	require.True(t, gross.Equal(dec("11800.00")))

	s := ComputeBillingSummary(
		[]Invoice{{InvoiceNo: "I1", AmountWithTax: gross}},
		[]Receipt{{InvoiceNo: "I1", AmountReceived: dec("11800")}},
	)
	assert.True(t, s.TotalInvoiced.Equal(dec("11800")))
	assert.True(t, s.TotalCollected.Equal(dec("11800")))
	assert.True(t, s.Outstanding.IsZero())
}
