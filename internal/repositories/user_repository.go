package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "safariops/internal/config"
	"safariops/internal/domain"
	"safariops/internal/domain/models"
)

// UserRepository handles staff accounts.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByIdentity looks a user up by email or username.
func (r UserRepository) GetByIdentity(identity string) (models.User, error) {
	db := r.db()
	var u models.User
	if db == nil {
		return u, fmt.Errorf("db not available for users")
	}

	identity = strings.TrimSpace(identity)
	err := db.QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(username,''), COALESCE(email,''),
			   COALESCE(password_hash,''), COALESCE(role,'user'), COALESCE(status,'active')
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1`, identity, identity).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.NotFoundError{Resource: "user"}
		}
		return u, err
	}
	return u, nil
}

// Exists reports whether email or username is already taken.
func (r UserRepository) Exists(email, username string) (bool, error) {
	db := r.db()
	if db == nil {
		return false, fmt.Errorf("db not available for users")
	}

	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM users WHERE email = ? OR username = ?`,
		strings.TrimSpace(email), strings.TrimSpace(username),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a staff account with an already-hashed password.
func (r UserRepository) Create(u models.User) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("db not available for users")
	}

	role := strings.TrimSpace(u.Role)
	if role == "" {
		role = "user"
	}

	res, err := db.Exec(`
		INSERT INTO users (name, username, email, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'active', NOW(), NOW())`,
		strings.TrimSpace(u.Name),
		strings.TrimSpace(u.Username),
		strings.TrimSpace(u.Email),
		u.PasswordHash,
		role,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
