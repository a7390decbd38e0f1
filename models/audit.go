package models

import "time"

// AuditLog is an append-only record of a mutating action.
type AuditLog struct {
	ID         int       `json:"id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"` // CREATE, UPDATE, UPDATE_ROLE
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Details    *string   `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}
