package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents a bill raised against an assignment. AmountWithTax is
// always derived from AmountBeforeTax and GstPct, never written directly.
type Invoice struct {
	InvoiceNo       string          `json:"invoice_no"`
	AssignmentCode  string          `json:"assignment_code"`
	InvoiceDate     *string         `json:"invoice_date"`
	AmountBeforeTax decimal.Decimal `json:"amount_before_tax"`
	GstPct          decimal.Decimal `json:"gst_pct"`
	AmountWithTax   decimal.Decimal `json:"amount_with_tax"`
	DueDate         *string         `json:"due_date"`
	Status          string          `json:"status"` // Issued, Paid, Overdue, Cancelled
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by"`
}

// InvoiceInput is used for creating invoices. GstPct defaults to 18.00 when
// the caller leaves it out.
type InvoiceInput struct {
	InvoiceNo       string           `json:"invoice_no"`
	AssignmentCode  string           `json:"assignment_code"`
	InvoiceDate     *string          `json:"invoice_date"`
	AmountBeforeTax decimal.Decimal  `json:"amount_before_tax"`
	GstPct          *decimal.Decimal `json:"gst_pct"`
	DueDate         *string          `json:"due_date"`
	Status          string           `json:"status"`
}

func (i *InvoiceInput) Validate() string {
	if i.InvoiceNo == "" {
		return "invoice_no is required"
	}
	if i.AssignmentCode == "" {
		return "assignment_code is required"
	}
	if i.AmountBeforeTax.IsNegative() {
		return "amount_before_tax must be non-negative"
	}
	if i.GstPct != nil && i.GstPct.IsNegative() {
		return "gst_pct must be non-negative"
	}
	if i.GstPct == nil {
		d := DefaultGSTPct
		i.GstPct = &d
	}
	switch i.Status {
	case "", StatusInvoiceIssued, StatusInvoicePaid, StatusInvoiceOverdue, StatusInvoiceCancelled:
	default:
		return "status must be one of: Issued, Paid, Overdue, Cancelled"
	}
	if i.Status == "" {
		i.Status = StatusInvoiceIssued
	}
	return ""
}

// InvoiceUpdate carries partial edits to an invoice. Changing either amount
// input forces a recomputation of AmountWithTax.
type InvoiceUpdate struct {
	InvoiceDate     *string          `json:"invoice_date"`
	AmountBeforeTax *decimal.Decimal `json:"amount_before_tax"`
	GstPct          *decimal.Decimal `json:"gst_pct"`
	DueDate         *string          `json:"due_date"`
	Status          *string          `json:"status"`
}

func (i *InvoiceUpdate) Validate() string {
	if i.AmountBeforeTax != nil && i.AmountBeforeTax.IsNegative() {
		return "amount_before_tax must be non-negative"
	}
	if i.GstPct != nil && i.GstPct.IsNegative() {
		return "gst_pct must be non-negative"
	}
	if i.Status != nil {
		switch *i.Status {
		case StatusInvoiceIssued, StatusInvoicePaid, StatusInvoiceOverdue, StatusInvoiceCancelled:
		default:
			return "status must be one of: Issued, Paid, Overdue, Cancelled"
		}
	}
	return ""
}
