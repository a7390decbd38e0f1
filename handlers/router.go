package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kpca/portal/auth"
)

// Router builds the /api route tree. Every route except the health check
// requires a bearer session; role-gated resources additionally pass the
// access policy before any handler runs.
func Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "version": "1.0.0"})
	})

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth)

		// Clients
		r.Get("/clients", ListClients)
		r.Post("/clients", CreateClient)
		r.Get("/clients/{code}", GetClient)
		r.Put("/clients/{code}", UpdateClient)

		// Proposals
		r.Get("/proposals", ListProposals)
		r.Post("/proposals", CreateProposal)
		r.Get("/proposals/{id}", GetProposal)
		r.Put("/proposals/{id}", UpdateProposal)

		// Assignments
		r.Get("/assignments", ListAssignments)
		r.With(requireAccess(auth.ResourceAssignmentsNew)).Post("/assignments", CreateAssignment)
		r.Get("/assignments/{code}", GetAssignment)
		r.Put("/assignments/{code}", UpdateAssignment)

		// Billing & collections
		r.Get("/invoices", ListInvoices)
		r.With(requireAccess(auth.ResourceInvoicesNew)).Post("/invoices", CreateInvoice)
		r.Get("/invoices/{no}", GetInvoice)
		r.Put("/invoices/{no}", UpdateInvoice)

		// Receipts are append-only: no update or delete routes
		r.Get("/receipts", ListReceipts)
		r.With(requireAccess(auth.ResourceReceiptsNew)).Post("/receipts", CreateReceipt)
		r.Get("/receipts/{id}", GetReceipt)

		// Reports
		r.With(requireAccess(auth.ResourceReportsBilling)).Get("/reports/billing", GetBillingSummary)
		r.With(requireAccess(auth.ResourceReportsAging)).Get("/reports/aging", GetARAging)
		r.Get("/reports/proposals", GetProposalStats)

		// Audit trail
		r.With(requireAccess(auth.ResourceAuditLogs)).Get("/audit-logs", GetAuditLogs)

		// User management
		r.With(requireAccess(auth.ResourceUsersRead)).Get("/users", ListUsers)
		r.With(requireAccess(auth.ResourceUsersUpdateRole)).Put("/users/{id}/role", UpdateUserRole)

		// Import/export
		r.Get("/export/{entity}", ExportEntity)
		r.Post("/upload/{entity}", UploadEntity)
	})

	return r
}
