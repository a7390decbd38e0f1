package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RolePartner, ParseRole("PARTNER"))
	assert.Equal(t, RoleDirector, ParseRole("DIRECTOR"))
	assert.Equal(t, RoleManager, ParseRole("MANAGER"))

	// Unknown or absent claims fall back to the least-privileged role.
	assert.Equal(t, RoleManager, ParseRole(""))
	assert.Equal(t, RoleManager, ParseRole("ADMIN"))
	assert.Equal(t, RoleManager, ParseRole("partner"))
}

func TestCanAccessRoleGates(t *testing.T) {
	tests := []struct {
		role     Role
		resource Resource
		want     bool
	}{
		{RolePartner, ResourceUsersUpdateRole, true},
		{RoleDirector, ResourceUsersUpdateRole, false},
		{RoleManager, ResourceUsersUpdateRole, false},
		{RolePartner, ResourceUsersRead, true},
		{RoleManager, ResourceUsersRead, false},
		{RolePartner, ResourceReportsBilling, true},
		{RoleDirector, ResourceReportsBilling, true},
		{RoleManager, ResourceReportsBilling, false},
		{RoleDirector, ResourceAuditLogs, true},
		{RoleManager, ResourceAuditLogs, false},
		{RoleDirector, ResourceInvoicesNew, true},
		{RoleManager, ResourceInvoicesNew, false},
		{RoleManager, ResourceReceiptsNew, false},
		{RoleManager, ResourceAssignmentsNew, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanAccess(tt.role, tt.resource),
			"%s on %s", tt.role, tt.resource)
	}
}

func TestCanAccessUngatedResources(t *testing.T) {
	// Resources without a policy entry are open to any authenticated role.
	for _, role := range []Role{RolePartner, RoleDirector, RoleManager} {
		assert.True(t, CanAccess(role, Resource("clients.read")))
		assert.True(t, CanAccess(role, Resource("proposals.create")))
	}
}
