package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

// exportableTables whitelists the entities that can be exported, keyed by the
// URL segment.
var exportableTables = map[string]string{
	"clients":     "clients",
	"proposals":   "proposals",
	"assignments": "assignments",
	"invoices":    "invoices",
	"receipts":    "receipts",
}

// ExportEntity streams an entity table as an XLSX or CSV download
// @Summary      Export entity
// @Description  Download all rows of an entity as a spreadsheet. Supported entities: clients, proposals, assignments, invoices, receipts.
// @Tags         export
// @Produce      application/octet-stream
// @Param        entity  path      string  true   "Entity name"
// @Param        format  query     string  false  "xlsx (default) or csv"
// @Success      200     {file}    file
// @Failure      400     {object}  Response{error=string}
// @Router       /export/{entity} [get]
// @Security     BearerAuth
func ExportEntity(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	table, ok := exportableTables[entity]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid entity")
		return
	}

	headers, records, err := dumpTable(table)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entity+".csv"))
		cw := csv.NewWriter(w)
		cw.Write(headers)
		for _, rec := range records {
			cw.Write(rec)
		}
		cw.Flush()
	case "", "xlsx":
		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)
		row := make([]any, len(headers))
		for i, h := range headers {
			row[i] = h
		}
		f.SetSheetRow(sheet, "A1", &row)
		for n, rec := range records {
			row = make([]any, len(rec))
			for i, v := range rec {
				row[i] = v
			}
			cell, _ := excelize.CoordinatesToCellName(1, n+2)
			f.SetSheetRow(sheet, cell, &row)
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entity+".xlsx"))
		f.Write(w)
	default:
		writeError(w, http.StatusBadRequest, "format must be xlsx or csv")
	}
}

// dumpTable reads a whole table as display strings, columns as headers.
func dumpTable(table string) ([]string, [][]string, error) {
	rows, err := DB.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var records [][]string
	for rows.Next() {
		vals := make([]any, len(headers))
		ptrs := make([]any, len(headers))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		rec := make([]string, len(headers))
		for i, v := range vals {
			rec[i] = formatCell(v)
		}
		records = append(records, rec)
	}
	return headers, records, rows.Err()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
