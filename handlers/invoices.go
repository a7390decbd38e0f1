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

const invoiceSelectQuery = `SELECT invoice_no, assignment_code, invoice_date, amount_before_tax,
	gst_pct, amount_with_tax, due_date, status, created_at, created_by
	FROM invoices`

func scanInvoice(scanner interface{ Scan(...any) error }) (models.Invoice, error) {
	var inv models.Invoice
	err := scanner.Scan(&inv.InvoiceNo, &inv.AssignmentCode, &inv.InvoiceDate, &inv.AmountBeforeTax,
		&inv.GstPct, &inv.AmountWithTax, &inv.DueDate, &inv.Status, &inv.CreatedAt, &inv.CreatedBy)
	return inv, err
}

func getInvoiceByNo(no string) (models.Invoice, error) {
	return scanInvoice(DB.QueryRow(invoiceSelectQuery+" WHERE invoice_no = ?", no))
}

// ListInvoices lists all invoices
// @Summary      List invoices
// @Description  Get a list of all invoices with derived gross amounts.
// @Tags         invoices
// @Produce      json
// @Param        status           query     string  false  "Filter by status"
// @Param        assignment_code  query     string  false  "Filter by assignment"
// @Success      200              {object}  Response{data=[]models.Invoice}
// @Router       /invoices [get]
// @Security     BearerAuth
func ListInvoices(w http.ResponseWriter, r *http.Request) {
	query := invoiceSelectQuery
	var conditions []string
	var args []any

	if s := r.URL.Query().Get("status"); s != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, s)
	}
	if ac := r.URL.Query().Get("assignment_code"); ac != "" {
		conditions = append(conditions, "assignment_code = ?")
		args = append(args, ac)
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

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		invoices = append(invoices, inv)
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	writeJSON(w, http.StatusOK, invoices)
}

// GetInvoice retrieves a single invoice by number
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        no   path      string  true  "Invoice number"
// @Success      200  {object}  Response{data=models.Invoice}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{no} [get]
// @Security     BearerAuth
func GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := getInvoiceByNo(chi.URLParam(r, "no"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "invoice not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CreateInvoice creates a new invoice
// @Summary      Create invoice
// @Description  Raise an invoice against an existing assignment. The gross amount is derived from the net amount and GST rate (default 18%). PARTNER and DIRECTOR only.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      models.InvoiceInput  true  "Invoice contents"
// @Success      201      {object}  Response{data=models.Invoice}
// @Failure      400      {object}  Response{error=string}
// @Failure      403      {object}  Response{error=string}
// @Router       /invoices [post]
// @Security     BearerAuth
func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if _, err := getAssignmentByCode(input.AssignmentCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusBadRequest, "assignment_code does not reference an existing assignment")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	gross := models.DeriveInvoiceGross(input.AmountBeforeTax, *input.GstPct)
	_, err := DB.Exec(`INSERT INTO invoices (invoice_no, assignment_code, invoice_date, amount_before_tax,
		gst_pct, amount_with_tax, due_date, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.InvoiceNo, input.AssignmentCode, input.InvoiceDate, input.AmountBeforeTax,
		input.GstPct, gross, input.DueDate, input.Status, session(r).UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logAction(session(r).UserID, "CREATE", "invoice", input.InvoiceNo,
		"Generated invoice for assignment: "+input.AssignmentCode)
	inv, err := getInvoiceByNo(input.InvoiceNo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created invoice: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// UpdateInvoice updates an existing invoice
// @Summary      Update invoice
// @Description  Update invoice details. The gross amount is recomputed whenever the net amount or GST rate changes. Status changes must follow the invoice lifecycle: Issued to Paid, Overdue or Cancelled; Overdue to Paid.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        no       path      string                true  "Invoice number"
// @Param        invoice  body      models.InvoiceUpdate  true  "Fields to update"
// @Success      200      {object}  Response{data=models.Invoice}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Failure      409      {object}  Response{error=string}
// @Router       /invoices/{no} [put]
// @Security     BearerAuth
func UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	no := chi.URLParam(r, "no")
	var input models.InvoiceUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	current, err := getInvoiceByNo(no)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "invoice not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	status := current.Status
	if input.Status != nil {
		if err := models.ValidateTransition(models.KindInvoice, current.Status, *input.Status); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		status = *input.Status
	}

	net := current.AmountBeforeTax
	if input.AmountBeforeTax != nil {
		net = *input.AmountBeforeTax
	}
	gstPct := current.GstPct
	if input.GstPct != nil {
		gstPct = *input.GstPct
	}
	invoiceDate := coalesce(input.InvoiceDate, current.InvoiceDate)
	dueDate := coalesce(input.DueDate, current.DueDate)

	// Gross is never trusted from storage across an amount change
	gross := models.DeriveInvoiceGross(net, gstPct)

	_, err = DB.Exec(`UPDATE invoices SET invoice_date = ?, amount_before_tax = ?, gst_pct = ?,
		amount_with_tax = ?, due_date = ?, status = ? WHERE invoice_no = ?`,
		invoiceDate, net, gstPct, gross, dueDate, status, no)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logAction(session(r).UserID, "UPDATE", "invoice", no,
		fmt.Sprintf("Updated invoice %s (status %s)", no, status))
	inv, err := getInvoiceByNo(no)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated invoice: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
