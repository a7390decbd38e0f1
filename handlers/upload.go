package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kpca/portal/models"
	"github.com/xuri/excelize/v2"
)

const maxUploadSize = 10 << 20 // 10 MiB

// UploadEntity bulk-creates records from a CSV or XLSX file
// @Summary      Bulk upload
// @Description  Upload a CSV or XLSX file of records. Only clients are supported; every row is validated before anything is written.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        entity  path      string  true  "Entity name"
// @Param        file    formData  file    true  "CSV or XLSX file"
// @Success      200     {object}  Response{data=map[string]string}
// @Failure      400     {object}  Response{error=string}
// @Router       /upload/{entity} [post]
// @Security     BearerAuth
func UploadEntity(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "entity") != "clients" {
		writeError(w, http.StatusBadRequest, "bulk upload for this entity is not yet implemented")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	records, err := parseUploadFile(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inputs, err := validateClientRows(records)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := session(r).UserID
	for _, input := range inputs {
		if _, err := insertClient(input, userID); err != nil {
			if errors.Is(err, errClientCodeExists) {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("client_code %s already exists", input.ClientCode))
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully uploaded %d clients", len(inputs)),
	})
}

// parseUploadFile reads a CSV or XLSX upload into raw rows, first row being
// the header.
func parseUploadFile(file io.Reader, filename string) ([][]string, error) {
	switch {
	case strings.HasSuffix(filename, ".csv"):
		records, err := csv.NewReader(file).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("parsing CSV: %w", err)
		}
		return records, nil
	case strings.HasSuffix(filename, ".xlsx"), strings.HasSuffix(filename, ".xls"):
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("parsing spreadsheet: %w", err)
		}
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, fmt.Errorf("reading spreadsheet rows: %w", err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported file format, upload a CSV or Excel file")
	}
}

// validateClientRows maps header names to ClientInput fields and validates
// every data row, reporting failures by row number.
func validateClientRows(records [][]string) ([]models.ClientInput, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("file contains no data rows")
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	optional := func(row []string, name string) *string {
		if v := field(row, name); v != "" {
			return &v
		}
		return nil
	}

	var inputs []models.ClientInput
	var problems []string
	for n, row := range records[1:] {
		input := models.ClientInput{
			ClientCode:          field(row, "client_code"),
			ClientName:          field(row, "client_name"),
			GroupName:           optional(row, "group_name"),
			Industry:            optional(row, "industry"),
			RelationshipPartner: optional(row, "relationship_partner"),
			PrimaryContactName:  optional(row, "primary_contact_name"),
			PrimaryContactEmail: optional(row, "primary_contact_email"),
			Status:              field(row, "status"),
		}
		if msg := input.Validate(); msg != "" {
			problems = append(problems, fmt.Sprintf("row %d: %s", n+1, msg))
			continue
		}
		inputs = append(inputs, input)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(problems, "\n"))
	}
	return inputs, nil
}
