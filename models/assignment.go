package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment represents a contracted engagement, optionally converted from an
// accepted proposal. The caller supplies the unique assignment_code.
type Assignment struct {
	AssignmentCode string          `json:"assignment_code"`
	ClientCode     string          `json:"client_code"`
	ProposalID     *int            `json:"proposal_id"`
	Title          string          `json:"title"`
	ServiceLine    *string         `json:"service_line"`
	StartDate      *string         `json:"start_date"`
	EndDate        *string         `json:"end_date"`
	PartnerLead    *string         `json:"partner_lead"`
	Director       *string         `json:"director"`
	Manager        *string         `json:"manager"`
	ContractedFee  decimal.Decimal `json:"contracted_fee"`
	Status         string          `json:"status"` // Planned, Ongoing, On Hold, Completed
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

// AssignmentInput is used for creating assignments. When ProposalID is set
// and ClientCode is empty, fields are pre-filled from the linked proposal.
type AssignmentInput struct {
	AssignmentCode string          `json:"assignment_code"`
	ClientCode     string          `json:"client_code"`
	ProposalID     *int            `json:"proposal_id"`
	Title          string          `json:"title"`
	ServiceLine    *string         `json:"service_line"`
	StartDate      *string         `json:"start_date"`
	EndDate        *string         `json:"end_date"`
	PartnerLead    *string         `json:"partner_lead"`
	Director       *string         `json:"director"`
	Manager        *string         `json:"manager"`
	ContractedFee  decimal.Decimal `json:"contracted_fee"`
	Status         string          `json:"status"`
}

func (a *AssignmentInput) Validate() string {
	if a.AssignmentCode == "" {
		return "assignment_code is required"
	}
	if a.ClientCode == "" && a.ProposalID == nil {
		return "client_code is required"
	}
	if a.Title == "" && a.ProposalID == nil {
		return "title is required"
	}
	if a.ContractedFee.IsNegative() {
		return "contracted_fee must be non-negative"
	}
	if a.StartDate != nil && a.EndDate != nil && *a.EndDate != "" && *a.EndDate < *a.StartDate {
		return "end_date must be on or after start_date"
	}
	switch a.Status {
	case "", StatusAssignmentPlanned, StatusAssignmentOngoing, StatusAssignmentOnHold, StatusAssignmentCompleted:
	default:
		return "status must be one of: Planned, Ongoing, On Hold, Completed"
	}
	if a.Status == "" {
		a.Status = StatusAssignmentPlanned
	}
	return ""
}

// AssignmentUpdate is used for updating assignments. ClientCode is absent on
// purpose: once created (and in particular once linked to a proposal) an
// assignment's client may not change.
type AssignmentUpdate struct {
	Title         *string          `json:"title"`
	ServiceLine   *string          `json:"service_line"`
	StartDate     *string          `json:"start_date"`
	EndDate       *string          `json:"end_date"`
	PartnerLead   *string          `json:"partner_lead"`
	Director      *string          `json:"director"`
	Manager       *string          `json:"manager"`
	ContractedFee *decimal.Decimal `json:"contracted_fee"`
	Status        *string          `json:"status"`
}

func (a *AssignmentUpdate) Validate() string {
	if a.ContractedFee != nil && a.ContractedFee.IsNegative() {
		return "contracted_fee must be non-negative"
	}
	if a.Status != nil {
		switch *a.Status {
		case StatusAssignmentPlanned, StatusAssignmentOngoing, StatusAssignmentOnHold, StatusAssignmentCompleted:
		default:
			return "status must be one of: Planned, Ongoing, On Hold, Completed"
		}
	}
	return ""
}
