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

const clientSelectQuery = `SELECT client_code, client_name, group_name, industry, relationship_partner,
	primary_contact_name, primary_contact_email, status, created_at, created_by
	FROM clients`

func scanClient(scanner interface{ Scan(...any) error }) (models.Client, error) {
	var c models.Client
	err := scanner.Scan(&c.ClientCode, &c.ClientName, &c.GroupName, &c.Industry, &c.RelationshipPartner,
		&c.PrimaryContactName, &c.PrimaryContactEmail, &c.Status, &c.CreatedAt, &c.CreatedBy)
	return c, err
}

func getClientByCode(code string) (models.Client, error) {
	return scanClient(DB.QueryRow(clientSelectQuery+" WHERE client_code = ?", code))
}

var errClientCodeExists = errors.New("client_code already exists")

// insertClient creates a client row, generating a client code when the input
// leaves it blank. Shared with bulk upload.
func insertClient(input models.ClientInput, createdBy string) (models.Client, error) {
	code := input.ClientCode
	if code == "" {
		var err error
		if code, err = nextClientCode(); err != nil {
			return models.Client{}, err
		}
	} else {
		var taken int
		if err := DB.QueryRow("SELECT COUNT(*) FROM clients WHERE client_code = ?", code).Scan(&taken); err != nil {
			return models.Client{}, err
		}
		if taken > 0 {
			return models.Client{}, errClientCodeExists
		}
	}
	_, err := DB.Exec(`INSERT INTO clients (client_code, client_name, group_name, industry,
		relationship_partner, primary_contact_name, primary_contact_email, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		code, input.ClientName, input.GroupName, input.Industry,
		input.RelationshipPartner, input.PrimaryContactName, input.PrimaryContactEmail, input.Status, createdBy)
	if err != nil {
		return models.Client{}, err
	}

	logAction(createdBy, "CREATE", "client", code, "Created client: "+input.ClientName)
	return getClientByCode(code)
}

// nextClientCode derives a fresh CLnnnn code from the row count, skipping over
// any codes the callers have already taken for themselves.
func nextClientCode() (string, error) {
	var n int
	if err := DB.QueryRow("SELECT COUNT(*) FROM clients").Scan(&n); err != nil {
		return "", err
	}
	for {
		n++
		code := fmt.Sprintf("CL%04d", n)
		var taken int
		if err := DB.QueryRow("SELECT COUNT(*) FROM clients WHERE client_code = ?", code).Scan(&taken); err != nil {
			return "", err
		}
		if taken == 0 {
			return code, nil
		}
	}
}

// ListClients lists all clients
// @Summary      List clients
// @Description  Get a list of all clients.
// @Tags         clients
// @Produce      json
// @Param        status  query     string  false  "Filter by status (Active/Inactive)"
// @Param        search  query     string  false  "Search by code, name, or group"
// @Success      200     {object}  Response{data=[]models.Client}
// @Router       /clients [get]
// @Security     BearerAuth
func ListClients(w http.ResponseWriter, r *http.Request) {
	query := clientSelectQuery
	var conditions []string
	var args []any

	if s := r.URL.Query().Get("status"); s != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, s)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "(client_code LIKE ? OR client_name LIKE ? OR group_name LIKE ?)")
		s := "%" + search + "%"
		args = append(args, s, s, s)
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

	var clients []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		clients = append(clients, c)
	}
	if clients == nil {
		clients = []models.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

// GetClient retrieves a single client by code
// @Summary      Get client
// @Tags         clients
// @Produce      json
// @Param        code  path      string  true  "Client code"
// @Success      200   {object}  Response{data=models.Client}
// @Failure      404   {object}  Response{error=string}
// @Router       /clients/{code} [get]
// @Security     BearerAuth
func GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := getClientByCode(chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "client not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateClient creates a new client
// @Summary      Create client
// @Description  Create a new client. A client code is generated when omitted.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        client  body      models.ClientInput  true  "Client contents"
// @Success      201     {object}  Response{data=models.Client}
// @Failure      400     {object}  Response{error=string}
// @Failure      409     {object}  Response{error=string}
// @Router       /clients [post]
// @Security     BearerAuth
func CreateClient(w http.ResponseWriter, r *http.Request) {
	var input models.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := insertClient(input, session(r).UserID)
	if err != nil {
		if errors.Is(err, errClientCodeExists) {
			writeError(w, http.StatusConflict, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateClient updates an existing client
// @Summary      Update client
// @Description  Update client details. The client code itself is fixed.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        code    path      string              true  "Client code"
// @Param        client  body      models.ClientInput  true  "Updated client contents"
// @Success      200     {object}  Response{data=models.Client}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /clients/{code} [put]
// @Security     BearerAuth
func UpdateClient(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var input models.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE clients SET client_name = ?, group_name = ?, industry = ?,
		relationship_partner = ?, primary_contact_name = ?, primary_contact_email = ?, status = ?
		WHERE client_code = ?`,
		input.ClientName, input.GroupName, input.Industry,
		input.RelationshipPartner, input.PrimaryContactName, input.PrimaryContactEmail, input.Status, code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}

	logAction(session(r).UserID, "UPDATE", "client", code, "Updated client: "+input.ClientName)
	c, err := getClientByCode(code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated client: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}
