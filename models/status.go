package models

import "fmt"

// EntityKind identifies which lifecycle graph governs a status change.
type EntityKind string

const (
	KindProposal   EntityKind = "proposal"
	KindAssignment EntityKind = "assignment"
	KindInvoice    EntityKind = "invoice"
)

// Proposal statuses.
const (
	StatusProposalDraft    = "Draft"
	StatusProposalIssued   = "Issued"
	StatusProposalAccepted = "Accepted"
	StatusProposalRejected = "Rejected"
)

// Assignment statuses.
const (
	StatusAssignmentPlanned   = "Planned"
	StatusAssignmentOngoing   = "Ongoing"
	StatusAssignmentOnHold    = "On Hold"
	StatusAssignmentCompleted = "Completed"
)

// Invoice statuses.
const (
	StatusInvoiceIssued    = "Issued"
	StatusInvoicePaid      = "Paid"
	StatusInvoiceOverdue   = "Overdue"
	StatusInvoiceCancelled = "Cancelled"
)

// Client statuses.
const (
	StatusClientActive   = "Active"
	StatusClientInactive = "Inactive"
)

// InvalidStateTransition reports a status change that the lifecycle graph
// does not allow. Terminal statuses have no outgoing edges.
type InvalidStateTransition struct {
	Entity EntityKind
	From   string
	To     string
}

func (e *InvalidStateTransition) Error() string {
	return fmt.Sprintf("%s status cannot change from %s to %s", e.Entity, e.From, e.To)
}

// transitions holds the allowed outgoing edges per entity kind. A status
// missing from its map is terminal.
var transitions = map[EntityKind]map[string][]string{
	KindProposal: {
		StatusProposalDraft:  {StatusProposalIssued},
		StatusProposalIssued: {StatusProposalAccepted, StatusProposalRejected},
	},
	KindAssignment: {
		StatusAssignmentPlanned: {StatusAssignmentOngoing},
		StatusAssignmentOngoing: {StatusAssignmentOnHold, StatusAssignmentCompleted},
		StatusAssignmentOnHold:  {StatusAssignmentOngoing},
	},
	KindInvoice: {
		StatusInvoiceIssued:  {StatusInvoicePaid, StatusInvoiceOverdue, StatusInvoiceCancelled},
		StatusInvoiceOverdue: {StatusInvoicePaid},
	},
}

// ValidateTransition checks whether an entity of the given kind may move from
// one status to another. Keeping the current status is always allowed.
func ValidateTransition(kind EntityKind, from, to string) error {
	if from == to {
		return nil
	}
	for _, next := range transitions[kind][from] {
		if next == to {
			return nil
		}
	}
	return &InvalidStateTransition{Entity: kind, From: from, To: to}
}
