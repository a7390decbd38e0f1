package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeAssignmentFromProposal(t *testing.T) {
	line := "Audit"
	p := Proposal{
		ProposalID:    7,
		ClientCode:    "ACME001",
		ServiceLine:   &line,
		EstimatedFees: dec("50000"),
		Status:        StatusProposalAccepted,
	}

	seed := MaterializeAssignmentFromProposal(p)
	assert.Equal(t, "ACME001", seed.ClientCode)
	require.NotNil(t, seed.ProposalID)
	assert.Equal(t, 7, *seed.ProposalID)
	require.NotNil(t, seed.ServiceLine)
	assert.Equal(t, "Audit", *seed.ServiceLine)
	assert.True(t, seed.ContractedFee.Equal(dec("50000")))
	assert.Equal(t, "Audit for ACME001", seed.Title)
	assert.Equal(t, StatusAssignmentPlanned, seed.Status)
}

func TestMaterializeAssignmentDefaultTitle(t *testing.T) {
	p := Proposal{ProposalID: 1, ClientCode: "GLOB002", Status: StatusProposalAccepted}
	seed := MaterializeAssignmentFromProposal(p)
	assert.Equal(t, "Service for GLOB002", seed.Title, "missing service line falls back to 'Service'")

	empty := ""
	p.ServiceLine = &empty
	seed = MaterializeAssignmentFromProposal(p)
	assert.Equal(t, "Service for GLOB002", seed.Title)
}

func TestMaterializeAssignmentIsOneTimeCopy(t *testing.T) {
	line := "Tax"
	p := Proposal{ProposalID: 3, ClientCode: "C1", ServiceLine: &line, EstimatedFees: dec("100")}
	seed := MaterializeAssignmentFromProposal(p)

	// Later edits to the source proposal must not reach the copy.
	p.EstimatedFees = dec("999")
	p.ClientCode = "C2"
	assert.True(t, seed.ContractedFee.Equal(dec("100")))
	assert.Equal(t, "C1", seed.ClientCode)
}

func TestMaterializeReceiptDefaultFromInvoice(t *testing.T) {
	inv := Invoice{InvoiceNo: "INV-9", AmountWithTax: dec("11800.00")}
	got := MaterializeReceiptDefaultFromInvoice(inv)
	assert.True(t, got.Equal(dec("11800.00")), "suggested receipt amount is the full gross")
}
