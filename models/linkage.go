package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaterializeAssignmentFromProposal pre-fills a new assignment from an
// accepted proposal: client code, service line and estimated fees are copied
// down once at creation time, and a default title is synthesized. Later edits
// to the proposal do not propagate.
func MaterializeAssignmentFromProposal(p Proposal) AssignmentInput {
	line := "Service"
	if p.ServiceLine != nil && *p.ServiceLine != "" {
		line = *p.ServiceLine
	}
	id := p.ProposalID
	return AssignmentInput{
		ClientCode:    p.ClientCode,
		ProposalID:    &id,
		ServiceLine:   p.ServiceLine,
		ContractedFee: p.EstimatedFees,
		Title:         fmt.Sprintf("%s for %s", line, p.ClientCode),
		Status:        StatusAssignmentPlanned,
	}
}

// MaterializeReceiptDefaultFromInvoice suggests the full gross amount as the
// receipt value. The operator may override it before posting.
func MaterializeReceiptDefaultFromInvoice(inv Invoice) decimal.Decimal {
	return inv.AmountWithTax
}
