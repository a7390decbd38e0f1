package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kpca/portal/models"
)

// logAction appends an audit row. Audit failures are logged and swallowed so
// they never abort the action being recorded.
func logAction(userID, action, entityType, entityID, details string) {
	_, err := DB.Exec(`INSERT INTO audit_logs (user_id, action, entity_type, entity_id, details)
		VALUES (?, ?, ?, ?, ?)`, userID, action, entityType, entityID, details)
	if err != nil {
		slog.Warn("audit log write failed", "action", action, "entity_type", entityType, "error", err)
	}
}

// GetAuditLogs lists recent audit log entries
// @Summary      List audit logs
// @Description  Get the 100 most recent audit log entries. PARTNER and DIRECTOR only.
// @Tags         audit
// @Produce      json
// @Success      200  {object}  Response{data=[]models.AuditLog}
// @Failure      403  {object}  Response{error=string}
// @Router       /audit-logs [get]
// @Security     BearerAuth
func GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(`SELECT id, user_id, action, entity_type, entity_id, details, created_at
		FROM audit_logs ORDER BY created_at DESC, id DESC LIMIT 100`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID, &l.Details, &l.CreatedAt); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		logs = append(logs, l)
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
