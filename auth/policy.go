package auth

// Role is the portal-wide privilege level carried in the session claims.
type Role string

const (
	RolePartner  Role = "PARTNER"
	RoleDirector Role = "DIRECTOR"
	RoleManager  Role = "MANAGER"
)

// ParseRole maps a role claim to a known role. Unknown or absent claims
// default to MANAGER, the least-privileged role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RolePartner, RoleDirector, RoleManager:
		return Role(s)
	default:
		return RoleManager
	}
}

// Resource names an action gated by the access policy.
type Resource string

const (
	ResourceUsersRead       Resource = "users.read"
	ResourceUsersUpdateRole Resource = "users.update_role"
	ResourceReportsBilling  Resource = "reports.billing"
	ResourceReportsAging    Resource = "reports.aging"
	ResourceAuditLogs       Resource = "audit_logs.read"
	ResourceAssignmentsNew  Resource = "assignments.create"
	ResourceInvoicesNew     Resource = "invoices.create"
	ResourceReceiptsNew     Resource = "receipts.create"
)

// policy lists the roles allowed per gated resource. Resources not listed
// are open to any authenticated role.
var policy = map[Resource][]Role{
	ResourceUsersRead:       {RolePartner},
	ResourceUsersUpdateRole: {RolePartner},
	ResourceReportsBilling:  {RolePartner, RoleDirector},
	ResourceReportsAging:    {RolePartner, RoleDirector},
	ResourceAuditLogs:       {RolePartner, RoleDirector},
	ResourceAssignmentsNew:  {RolePartner, RoleDirector},
	ResourceInvoicesNew:     {RolePartner, RoleDirector},
	ResourceReceiptsNew:     {RolePartner, RoleDirector},
}

// CanAccess reports whether a role may act on a resource. The check runs
// locally before any store work so denied calls never reach the database.
func CanAccess(role Role, resource Resource) bool {
	allowed, gated := policy[resource]
	if !gated {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
