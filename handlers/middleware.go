package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kpca/portal/auth"
)

// Response is the standard JSON envelope for all API responses.
type Response struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// DB is the shared database connection used by all handlers.
var DB *sql.DB

type ctxKey int

const sessionKey ctxKey = iota

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Data: data})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: msg})
}

// BearerAuth verifies the Authorization header and stores the caller's
// session in the request context. Requests with no usable token never reach
// a handler.
func BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		sess, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

// session returns the caller's session stored by BearerAuth.
func session(r *http.Request) auth.Session {
	sess, _ := r.Context().Value(sessionKey).(auth.Session)
	return sess
}

// requireAccess short-circuits with 403 when the caller's role is not
// allowed the resource, before any store work happens.
func requireAccess(resource auth.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session(r)
			if !auth.CanAccess(sess.Role, resource) {
				writeError(w, http.StatusForbidden, "role "+string(sess.Role)+" does not have access to this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
