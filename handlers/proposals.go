package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kpca/portal/models"
)

const proposalSelectQuery = `SELECT proposal_id, client_code, service_line, scope_summary, estimated_fees,
	issued_date, status, outcome_reason, created_at, created_by
	FROM proposals`

func scanProposal(scanner interface{ Scan(...any) error }) (models.Proposal, error) {
	var p models.Proposal
	err := scanner.Scan(&p.ProposalID, &p.ClientCode, &p.ServiceLine, &p.ScopeSummary, &p.EstimatedFees,
		&p.IssuedDate, &p.Status, &p.OutcomeReason, &p.CreatedAt, &p.CreatedBy)
	return p, err
}

func getProposalByID(id int) (models.Proposal, error) {
	return scanProposal(DB.QueryRow(proposalSelectQuery+" WHERE proposal_id = ?", id))
}

// ListProposals lists all proposals
// @Summary      List proposals
// @Tags         proposals
// @Produce      json
// @Param        status       query     string  false  "Filter by status"
// @Param        client_code  query     string  false  "Filter by client"
// @Success      200          {object}  Response{data=[]models.Proposal}
// @Router       /proposals [get]
// @Security     BearerAuth
func ListProposals(w http.ResponseWriter, r *http.Request) {
	query := proposalSelectQuery
	var conditions []string
	var args []any

	if s := r.URL.Query().Get("status"); s != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, s)
	}
	if cc := r.URL.Query().Get("client_code"); cc != "" {
		conditions = append(conditions, "client_code = ?")
		args = append(args, cc)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		proposals = append(proposals, p)
	}
	if proposals == nil {
		proposals = []models.Proposal{}
	}
	writeJSON(w, http.StatusOK, proposals)
}

// GetProposal retrieves a single proposal by id
// @Summary      Get proposal
// @Tags         proposals
// @Produce      json
// @Param        id   path      int  true  "Proposal ID"
// @Success      200  {object}  Response{data=models.Proposal}
// @Failure      404  {object}  Response{error=string}
// @Router       /proposals/{id} [get]
// @Security     BearerAuth
func GetProposal(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	p, err := getProposalByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "proposal not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProposal creates a new proposal
// @Summary      Create proposal
// @Description  Create a proposal for an existing client.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        proposal  body      models.ProposalInput  true  "Proposal contents"
// @Success      201       {object}  Response{data=models.Proposal}
// @Failure      400       {object}  Response{error=string}
// @Router       /proposals [post]
// @Security     BearerAuth
func CreateProposal(w http.ResponseWriter, r *http.Request) {
	var input models.ProposalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if _, err := getClientByCode(input.ClientCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusBadRequest, "client_code does not reference an existing client")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO proposals (client_code, service_line, scope_summary, estimated_fees,
		issued_date, status, outcome_reason, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING proposal_id`,
		input.ClientCode, input.ServiceLine, input.ScopeSummary, input.EstimatedFees,
		input.IssuedDate, input.Status, input.OutcomeReason, session(r).UserID).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logAction(session(r).UserID, "CREATE", "proposal", strconv.Itoa(id), "Created proposal for client: "+input.ClientCode)
	p, err := getProposalByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created proposal: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProposal updates an existing proposal
// @Summary      Update proposal
// @Description  Update proposal details. Status changes must follow the proposal lifecycle: Draft to Issued, Issued to Accepted or Rejected.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id        path      int                    true  "Proposal ID"
// @Param        proposal  body      models.ProposalUpdate  true  "Fields to update"
// @Success      200       {object}  Response{data=models.Proposal}
// @Failure      400       {object}  Response{error=string}
// @Failure      404       {object}  Response{error=string}
// @Failure      409       {object}  Response{error=string}
// @Router       /proposals/{id} [put]
// @Security     BearerAuth
func UpdateProposal(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.ProposalUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	current, err := getProposalByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "proposal not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	status := current.Status
	if input.Status != nil {
		if err := models.ValidateTransition(models.KindProposal, current.Status, *input.Status); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		status = *input.Status
	}

	serviceLine := coalesce(input.ServiceLine, current.ServiceLine)
	scopeSummary := coalesce(input.ScopeSummary, current.ScopeSummary)
	fees := current.EstimatedFees
	if input.EstimatedFees != nil {
		fees = *input.EstimatedFees
	}
	issuedDate := coalesce(input.IssuedDate, current.IssuedDate)
	outcomeReason := coalesce(input.OutcomeReason, current.OutcomeReason)

	_, err = DB.Exec(`UPDATE proposals SET service_line = ?, scope_summary = ?, estimated_fees = ?,
		issued_date = ?, status = ?, outcome_reason = ? WHERE proposal_id = ?`,
		serviceLine, scopeSummary, fees, issuedDate, status, outcomeReason, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logAction(session(r).UserID, "UPDATE", "proposal", strconv.Itoa(id),
		fmt.Sprintf("Updated proposal %d (status %s)", id, status))
	p, err := getProposalByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated proposal: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// coalesce returns the override when present, the current value otherwise.
func coalesce(override, current *string) *string {
	if override != nil {
		return override
	}
	return current
}
