package models

import "github.com/shopspring/decimal"

// DefaultGSTPct is applied when an invoice is created without a tax rate.
var DefaultGSTPct = decimal.RequireFromString("18.00")

// DeriveInvoiceGross computes the gross invoice amount from the net amount
// and the GST percentage, rounded to currency precision. It is a pure
// function and must be re-invoked whenever either input changes; the result
// is never stored as independent truth.
func DeriveInvoiceGross(amountBeforeTax, gstPct decimal.Decimal) decimal.Decimal {
	rate := decimal.NewFromInt(1).Add(gstPct.Div(decimal.NewFromInt(100)))
	return amountBeforeTax.Mul(rate).Round(2)
}

// BillingSummary holds the derived receivables aggregates. Outstanding is
// signed: over-collection reports a negative figure, it is never clamped.
type BillingSummary struct {
	TotalInvoiced  decimal.Decimal `json:"total_invoiced"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalTDS       decimal.Decimal `json:"total_tds"`
	Outstanding    decimal.Decimal `json:"outstanding"`
}

// ComputeBillingSummary rescans the full invoice and receipt sets and sums
// gross invoiced versus collected amounts. TDS withheld by payers is totalled
// separately and does not reduce outstanding.
func ComputeBillingSummary(invoices []Invoice, receipts []Receipt) BillingSummary {
	var s BillingSummary
	for _, inv := range invoices {
		s.TotalInvoiced = s.TotalInvoiced.Add(inv.AmountWithTax)
	}
	for _, rec := range receipts {
		s.TotalCollected = s.TotalCollected.Add(rec.AmountReceived)
		s.TotalTDS = s.TotalTDS.Add(rec.TdsAmount)
	}
	s.Outstanding = s.TotalInvoiced.Sub(s.TotalCollected)
	return s
}
