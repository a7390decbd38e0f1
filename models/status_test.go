package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransitionAllowed(t *testing.T) {
	allowed := []struct {
		kind     EntityKind
		from, to string
	}{
		{KindProposal, StatusProposalDraft, StatusProposalIssued},
		{KindProposal, StatusProposalIssued, StatusProposalAccepted},
		{KindProposal, StatusProposalIssued, StatusProposalRejected},
		{KindAssignment, StatusAssignmentPlanned, StatusAssignmentOngoing},
		{KindAssignment, StatusAssignmentOngoing, StatusAssignmentOnHold},
		{KindAssignment, StatusAssignmentOngoing, StatusAssignmentCompleted},
		{KindAssignment, StatusAssignmentOnHold, StatusAssignmentOngoing},
		{KindInvoice, StatusInvoiceIssued, StatusInvoicePaid},
		{KindInvoice, StatusInvoiceIssued, StatusInvoiceOverdue},
		{KindInvoice, StatusInvoiceIssued, StatusInvoiceCancelled},
		{KindInvoice, StatusInvoiceOverdue, StatusInvoicePaid},
	}
	for _, tt := range allowed {
		assert.NoError(t, ValidateTransition(tt.kind, tt.from, tt.to),
			"%s %s -> %s should be allowed", tt.kind, tt.from, tt.to)
	}
}

func TestValidateTransitionRejected(t *testing.T) {
	rejected := []struct {
		kind     EntityKind
		from, to string
	}{
		{KindProposal, StatusProposalDraft, StatusProposalAccepted},
		{KindProposal, StatusProposalAccepted, StatusProposalDraft},
		{KindProposal, StatusProposalRejected, StatusProposalIssued},
		{KindAssignment, StatusAssignmentCompleted, StatusAssignmentPlanned},
		{KindAssignment, StatusAssignmentPlanned, StatusAssignmentCompleted},
		{KindAssignment, StatusAssignmentPlanned, StatusAssignmentOnHold},
		{KindInvoice, StatusInvoicePaid, StatusInvoiceIssued},
		{KindInvoice, StatusInvoiceCancelled, StatusInvoicePaid},
		{KindInvoice, StatusInvoiceOverdue, StatusInvoiceCancelled},
	}
	for _, tt := range rejected {
		err := ValidateTransition(tt.kind, tt.from, tt.to)
		require.Error(t, err, "%s %s -> %s should be rejected", tt.kind, tt.from, tt.to)

		var ist *InvalidStateTransition
		require.ErrorAs(t, err, &ist)
		assert.Equal(t, tt.kind, ist.Entity)
		assert.Equal(t, tt.from, ist.From)
		assert.Equal(t, tt.to, ist.To)
	}
}

func TestValidateTransitionNoChange(t *testing.T) {
	// Updates that keep the current status must always pass, including on
	// terminal statuses.
	assert.NoError(t, ValidateTransition(KindProposal, StatusProposalAccepted, StatusProposalAccepted))
	assert.NoError(t, ValidateTransition(KindAssignment, StatusAssignmentCompleted, StatusAssignmentCompleted))
	assert.NoError(t, ValidateTransition(KindInvoice, StatusInvoiceCancelled, StatusInvoiceCancelled))
}

func TestInvalidStateTransitionMessage(t *testing.T) {
	err := ValidateTransition(KindAssignment, StatusAssignmentCompleted, StatusAssignmentPlanned)
	require.Error(t, err)
	assert.Equal(t, "assignment status cannot change from Completed to Planned", err.Error())
}
