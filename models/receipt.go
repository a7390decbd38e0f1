package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt records money collected against an invoice. Receipts are
// append-only: there is no edit or delete path once recorded.
type Receipt struct {
	ReceiptID      int             `json:"receipt_id"`
	InvoiceNo      string          `json:"invoice_no"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	TdsAmount      decimal.Decimal `json:"tds_amount"`
	ReceiptDate    *string         `json:"receipt_date"`
	Mode           string          `json:"mode"` // NEFT, Cheque, UPI, Cash
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

// ReceiptInput is used for recording receipts. When AmountReceived is left
// out, the linked invoice's gross amount is pre-filled.
type ReceiptInput struct {
	InvoiceNo      string           `json:"invoice_no"`
	AmountReceived *decimal.Decimal `json:"amount_received"`
	TdsAmount      decimal.Decimal  `json:"tds_amount"`
	ReceiptDate    *string          `json:"receipt_date"`
	Mode           string           `json:"mode"`
}

func (r *ReceiptInput) Validate() string {
	if r.InvoiceNo == "" {
		return "invoice_no is required"
	}
	if r.AmountReceived != nil && r.AmountReceived.IsNegative() {
		return "amount_received must be non-negative"
	}
	if r.TdsAmount.IsNegative() {
		return "tds_amount must be non-negative"
	}
	switch r.Mode {
	case ModeNEFT, ModeCheque, ModeUPI, ModeCash:
	default:
		return "mode must be one of: NEFT, Cheque, UPI, Cash"
	}
	return ""
}

// Payment modes accepted on receipts.
const (
	ModeNEFT   = "NEFT"
	ModeCheque = "Cheque"
	ModeUPI    = "UPI"
	ModeCash   = "Cash"
)
