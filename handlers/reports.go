package handlers

import (
	"net/http"
	"time"

	"github.com/kpca/portal/models"
	"github.com/shopspring/decimal"
)

// GetBillingSummary reports total invoiced, collected and outstanding AR
// @Summary      Billing summary
// @Description  Get total invoiced, total collected, TDS withheld, and outstanding receivables. Outstanding is signed and may be negative when over-collected. PARTNER and DIRECTOR only.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  Response{data=models.BillingSummary}
// @Failure      403  {object}  Response{error=string}
// @Router       /reports/billing [get]
// @Security     BearerAuth
func GetBillingSummary(w http.ResponseWriter, r *http.Request) {
	// Aggregates are recomputed from the full current sets on every request;
	// nothing is cached between reads.
	invoices, err := listAllInvoices()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	receipts, err := listAllReceipts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.ComputeBillingSummary(invoices, receipts))
}

func listAllInvoices() ([]models.Invoice, error) {
	rows, err := DB.Query(invoiceSelectQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func listAllReceipts() ([]models.Receipt, error) {
	rows, err := DB.Query(receiptSelectQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []models.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}
	return receipts, rows.Err()
}

type agingReport struct {
	Bucket0To30  decimal.Decimal `json:"0-30"`
	Bucket31To60 decimal.Decimal `json:"31-60"`
	Bucket61To90 decimal.Decimal `json:"61-90"`
	Bucket90Plus decimal.Decimal `json:"90+"`
}

// GetARAging buckets outstanding issued invoices by age
// @Summary      AR aging
// @Description  Bucket gross amounts of Issued invoices by days since the invoice date: 0-30, 31-60, 61-90, 90+. PARTNER and DIRECTOR only.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  Response{data=agingReport}
// @Failure      403  {object}  Response{error=string}
// @Router       /reports/aging [get]
// @Security     BearerAuth
func GetARAging(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(invoiceSelectQuery + " WHERE status = 'Issued'")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var report agingReport
	today := time.Now()
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		// Undated invoices land in the freshest bucket
		var age int
		if inv.InvoiceDate != nil {
			if issued, err := time.Parse("2006-01-02", *inv.InvoiceDate); err == nil {
				age = int(today.Sub(issued).Hours() / 24)
			}
		}
		switch {
		case age <= 30:
			report.Bucket0To30 = report.Bucket0To30.Add(inv.AmountWithTax)
		case age <= 60:
			report.Bucket31To60 = report.Bucket31To60.Add(inv.AmountWithTax)
		case age <= 90:
			report.Bucket61To90 = report.Bucket61To90.Add(inv.AmountWithTax)
		default:
			report.Bucket90Plus = report.Bucket90Plus.Add(inv.AmountWithTax)
		}
	}
	writeJSON(w, http.StatusOK, report)
}

// GetProposalStats counts proposals by status
// @Summary      Proposal stats
// @Description  Get the number of proposals in each status.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  Response{data=map[string]int}
// @Router       /reports/proposals [get]
// @Security     BearerAuth
func GetProposalStats(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query("SELECT status, COUNT(*) FROM proposals GROUP BY status")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	stats := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		stats[status] = n
	}
	writeJSON(w, http.StatusOK, stats)
}
