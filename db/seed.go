package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// SeedUsers creates an initial PARTNER profile when the users table is empty,
// so a fresh install always has someone who can manage roles. The email is
// taken from SEED_PARTNER_EMAIL when set.
func SeedUsers(db *sql.DB) error {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if n > 0 {
		return nil
	}

	id := uuid.NewString()
	email := os.Getenv("SEED_PARTNER_EMAIL")
	if email == "" {
		email = "partner@example.com"
	}
	_, err := db.Exec("INSERT INTO users (id, email, full_name, role) VALUES (?, ?, ?, 'PARTNER')",
		id, email, "Founding Partner")
	if err != nil {
		return fmt.Errorf("seeding initial partner: %w", err)
	}

	slog.Info("seeded initial partner user", "id", id, "email", email)
	return nil
}
