package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proposal represents an offer of services to a client. The store assigns
// the numeric proposal_id.
type Proposal struct {
	ProposalID    int             `json:"proposal_id"`
	ClientCode    string          `json:"client_code"`
	ServiceLine   *string         `json:"service_line"`
	ScopeSummary  *string         `json:"scope_summary"`
	EstimatedFees decimal.Decimal `json:"estimated_fees"`
	IssuedDate    *string         `json:"issued_date"`
	Status        string          `json:"status"` // Draft, Issued, Accepted, Rejected
	OutcomeReason *string         `json:"outcome_reason"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// ProposalInput is used for creating/updating proposals.
type ProposalInput struct {
	ClientCode    string          `json:"client_code"`
	ServiceLine   *string         `json:"service_line"`
	ScopeSummary  *string         `json:"scope_summary"`
	EstimatedFees decimal.Decimal `json:"estimated_fees"`
	IssuedDate    *string         `json:"issued_date"`
	Status        string          `json:"status"`
	OutcomeReason *string         `json:"outcome_reason"`
}

func (p *ProposalInput) Validate() string {
	if p.ClientCode == "" {
		return "client_code is required"
	}
	if p.EstimatedFees.IsNegative() {
		return "estimated_fees must be non-negative"
	}
	switch p.Status {
	case "", StatusProposalDraft, StatusProposalIssued, StatusProposalAccepted, StatusProposalRejected:
	default:
		return "status must be one of: Draft, Issued, Accepted, Rejected"
	}
	if p.Status == "" {
		p.Status = StatusProposalDraft
	}
	return ""
}

// ProposalUpdate carries partial edits to a proposal. Absent fields are left
// unchanged. ClientCode is not editable.
type ProposalUpdate struct {
	ServiceLine   *string          `json:"service_line"`
	ScopeSummary  *string          `json:"scope_summary"`
	EstimatedFees *decimal.Decimal `json:"estimated_fees"`
	IssuedDate    *string          `json:"issued_date"`
	Status        *string          `json:"status"`
	OutcomeReason *string          `json:"outcome_reason"`
}

func (p *ProposalUpdate) Validate() string {
	if p.EstimatedFees != nil && p.EstimatedFees.IsNegative() {
		return "estimated_fees must be non-negative"
	}
	if p.Status != nil {
		switch *p.Status {
		case StatusProposalDraft, StatusProposalIssued, StatusProposalAccepted, StatusProposalRejected:
		default:
			return "status must be one of: Draft, Issued, Accepted, Rejected"
		}
	}
	return ""
}
