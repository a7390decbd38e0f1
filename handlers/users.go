package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kpca/portal/models"
)

// ListUsers lists all portal users
// @Summary      List users
// @Description  Get all user profiles and their roles. PARTNER only.
// @Tags         users
// @Produce      json
// @Success      200  {object}  Response{data=[]models.User}
// @Failure      403  {object}  Response{error=string}
// @Router       /users [get]
// @Security     BearerAuth
func ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query("SELECT id, email, full_name, role, created_at FROM users ORDER BY created_at")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.CreatedAt); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		users = append(users, u)
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// UpdateUserRole changes a user's role
// @Summary      Update user role
// @Description  Assign a new role to a user. PARTNER only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        role  body      models.RoleUpdate  true  "New role"
// @Success      200   {object}  Response{data=models.User}
// @Failure      400   {object}  Response{error=string}
// @Failure      403   {object}  Response{error=string}
// @Failure      404   {object}  Response{error=string}
// @Router       /users/{id}/role [put]
// @Security     BearerAuth
func UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var input models.RoleUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec("UPDATE users SET role = ? WHERE id = ?", input.Role, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	logAction(session(r).UserID, "UPDATE_ROLE", "user", id, "Changed role to "+input.Role)

	var u models.User
	err = DB.QueryRow("SELECT id, email, full_name, role, created_at FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.CreatedAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated user: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, u)
}
