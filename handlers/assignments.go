package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kpca/portal/models"
)

const assignmentSelectQuery = `SELECT assignment_code, client_code, proposal_id, title, service_line,
	start_date, end_date, partner_lead, director, manager, contracted_fee, status, created_at, created_by
	FROM assignments`

func scanAssignment(scanner interface{ Scan(...any) error }) (models.Assignment, error) {
	var a models.Assignment
	err := scanner.Scan(&a.AssignmentCode, &a.ClientCode, &a.ProposalID, &a.Title, &a.ServiceLine,
		&a.StartDate, &a.EndDate, &a.PartnerLead, &a.Director, &a.Manager, &a.ContractedFee,
		&a.Status, &a.CreatedAt, &a.CreatedBy)
	return a, err
}

func getAssignmentByCode(code string) (models.Assignment, error) {
	return scanAssignment(DB.QueryRow(assignmentSelectQuery+" WHERE assignment_code = ?", code))
}

// ListAssignments lists all assignments
// @Summary      List assignments
// @Tags         assignments
// @Produce      json
// @Param        status       query     string  false  "Filter by status"
// @Param        client_code  query     string  false  "Filter by client"
// @Success      200          {object}  Response{data=[]models.Assignment}
// @Router       /assignments [get]
// @Security     BearerAuth
func ListAssignments(w http.ResponseWriter, r *http.Request) {
	query := assignmentSelectQuery
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

	var assignments []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		assignments = append(assignments, a)
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

// GetAssignment retrieves a single assignment by code
// @Summary      Get assignment
// @Tags         assignments
// @Produce      json
// @Param        code  path      string  true  "Assignment code"
// @Success      200   {object}  Response{data=models.Assignment}
// @Failure      404   {object}  Response{error=string}
// @Router       /assignments/{code} [get]
// @Security     BearerAuth
func GetAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := getAssignmentByCode(chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "assignment not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// CreateAssignment creates a new assignment
// @Summary      Create assignment
// @Description  Create an engagement, optionally converted from an accepted proposal. When proposal_id is given, client code, service line, fee and a default title are copied down from the proposal; a supplied client_code must match the proposal's.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        assignment  body      models.AssignmentInput  true  "Assignment contents"
// @Success      201         {object}  Response{data=models.Assignment}
// @Failure      400         {object}  Response{error=string}
// @Failure      403         {object}  Response{error=string}
// @Router       /assignments [post]
// @Security     BearerAuth
func CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var input models.AssignmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if input.ProposalID != nil {
		source, err := getProposalByID(*input.ProposalID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusBadRequest, "proposal_id does not reference an existing proposal")
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		if source.Status != models.StatusProposalAccepted {
			writeError(w, http.StatusBadRequest, "linked proposal must be Accepted")
			return
		}
		if input.ClientCode != "" && input.ClientCode != source.ClientCode {
			writeError(w, http.StatusBadRequest, "client_code must match the linked proposal's client")
			return
		}

		// Copy-down from the proposal for fields the caller left blank
		seed := models.MaterializeAssignmentFromProposal(source)
		if input.ClientCode == "" {
			input.ClientCode = seed.ClientCode
		}
		if input.Title == "" {
			input.Title = seed.Title
		}
		if input.ServiceLine == nil {
			input.ServiceLine = seed.ServiceLine
		}
		if input.ContractedFee.IsZero() {
			input.ContractedFee = seed.ContractedFee
		}
	}

	if _, err := getClientByCode(input.ClientCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusBadRequest, "client_code does not reference an existing client")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	_, err := DB.Exec(`INSERT INTO assignments (assignment_code, client_code, proposal_id, title,
		service_line, start_date, end_date, partner_lead, director, manager, contracted_fee, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.AssignmentCode, input.ClientCode, input.ProposalID, input.Title,
		input.ServiceLine, input.StartDate, input.EndDate, input.PartnerLead, input.Director,
		input.Manager, input.ContractedFee, input.Status, session(r).UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logAction(session(r).UserID, "CREATE", "assignment", input.AssignmentCode, "Created assignment: "+input.Title)
	a, err := getAssignmentByCode(input.AssignmentCode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created assignment: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// UpdateAssignment updates an existing assignment
// @Summary      Update assignment
// @Description  Update engagement details. The client code is fixed at creation. Status changes must follow the assignment lifecycle: Planned to Ongoing, Ongoing to On Hold or Completed, On Hold back to Ongoing.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        code        path      string                   true  "Assignment code"
// @Param        assignment  body      models.AssignmentUpdate  true  "Fields to update"
// @Success      200         {object}  Response{data=models.Assignment}
// @Failure      400         {object}  Response{error=string}
// @Failure      404         {object}  Response{error=string}
// @Failure      409         {object}  Response{error=string}
// @Router       /assignments/{code} [put]
// @Security     BearerAuth
func UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var input models.AssignmentUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	current, err := getAssignmentByCode(code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "assignment not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	status := current.Status
	if input.Status != nil {
		if err := models.ValidateTransition(models.KindAssignment, current.Status, *input.Status); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		status = *input.Status
	}

	title := current.Title
	if input.Title != nil {
		title = *input.Title
	}
	fee := current.ContractedFee
	if input.ContractedFee != nil {
		fee = *input.ContractedFee
	}
	serviceLine := coalesce(input.ServiceLine, current.ServiceLine)
	startDate := coalesce(input.StartDate, current.StartDate)
	endDate := coalesce(input.EndDate, current.EndDate)
	partnerLead := coalesce(input.PartnerLead, current.PartnerLead)
	director := coalesce(input.Director, current.Director)
	manager := coalesce(input.Manager, current.Manager)

	if startDate != nil && endDate != nil && *endDate != "" && *endDate < *startDate {
		writeError(w, http.StatusBadRequest, "end_date must be on or after start_date")
		return
	}

	_, err = DB.Exec(`UPDATE assignments SET title = ?, service_line = ?, start_date = ?, end_date = ?,
		partner_lead = ?, director = ?, manager = ?, contracted_fee = ?, status = ?
		WHERE assignment_code = ?`,
		title, serviceLine, startDate, endDate, partnerLead, director, manager, fee, status, code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logAction(session(r).UserID, "UPDATE", "assignment", code,
		fmt.Sprintf("Updated assignment %s (status %s)", code, status))
	a, err := getAssignmentByCode(code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated assignment: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}
