package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kpca/portal/models"
)

const receiptSelectQuery = `SELECT receipt_id, invoice_no, amount_received, tds_amount, receipt_date,
	mode, created_at, created_by
	FROM receipts`

func scanReceipt(scanner interface{ Scan(...any) error }) (models.Receipt, error) {
	var rec models.Receipt
	err := scanner.Scan(&rec.ReceiptID, &rec.InvoiceNo, &rec.AmountReceived, &rec.TdsAmount,
		&rec.ReceiptDate, &rec.Mode, &rec.CreatedAt, &rec.CreatedBy)
	return rec, err
}

func getReceiptByID(id int) (models.Receipt, error) {
	return scanReceipt(DB.QueryRow(receiptSelectQuery+" WHERE receipt_id = ?", id))
}

// ListReceipts lists all receipts
// @Summary      List receipts
// @Tags         receipts
// @Produce      json
// @Param        invoice_no  query     string  false  "Filter by invoice"
// @Param        mode        query     string  false  "Filter by payment mode"
// @Success      200         {object}  Response{data=[]models.Receipt}
// @Router       /receipts [get]
// @Security     BearerAuth
func ListReceipts(w http.ResponseWriter, r *http.Request) {
	query := receiptSelectQuery
	var conditions []string
	var args []any

	if no := r.URL.Query().Get("invoice_no"); no != "" {
		conditions = append(conditions, "invoice_no = ?")
		args = append(args, no)
	}
	if m := r.URL.Query().Get("mode"); m != "" {
		conditions = append(conditions, "mode = ?")
		args = append(args, m)
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

	var receipts []models.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		receipts = append(receipts, rec)
	}
	if receipts == nil {
		receipts = []models.Receipt{}
	}
	writeJSON(w, http.StatusOK, receipts)
}

// GetReceipt retrieves a single receipt by id
// @Summary      Get receipt
// @Tags         receipts
// @Produce      json
// @Param        id   path      int  true  "Receipt ID"
// @Success      200  {object}  Response{data=models.Receipt}
// @Failure      404  {object}  Response{error=string}
// @Router       /receipts/{id} [get]
// @Security     BearerAuth
func GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	rec, err := getReceiptByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "receipt not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CreateReceipt records a receipt against an invoice
// @Summary      Record receipt
// @Description  Record money collected against an existing invoice. When amount_received is omitted, the invoice's full gross amount is used. Receipts are immutable once recorded. PARTNER and DIRECTOR only.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        receipt  body      models.ReceiptInput  true  "Receipt contents"
// @Success      201      {object}  Response{data=models.Receipt}
// @Failure      400      {object}  Response{error=string}
// @Failure      403      {object}  Response{error=string}
// @Router       /receipts [post]
// @Security     BearerAuth
func CreateReceipt(w http.ResponseWriter, r *http.Request) {
	var input models.ReceiptInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	inv, err := getInvoiceByNo(input.InvoiceNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusBadRequest, "invoice_no does not reference an existing invoice")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	amount := models.MaterializeReceiptDefaultFromInvoice(inv)
	if input.AmountReceived != nil {
		amount = *input.AmountReceived
	}

	var id int
	err = DB.QueryRow(`INSERT INTO receipts (invoice_no, amount_received, tds_amount, receipt_date, mode, created_by)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING receipt_id`,
		input.InvoiceNo, amount, input.TdsAmount, input.ReceiptDate, input.Mode, session(r).UserID).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logAction(session(r).UserID, "CREATE", "receipt", strconv.Itoa(id),
		"Recorded receipt for invoice: "+input.InvoiceNo)
	rec, err := getReceiptByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created receipt: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
