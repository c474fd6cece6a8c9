package admins

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

type pgRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a Postgres-backed admins repo.
func NewPGRepo(db *sql.DB) *pgRepo {
	return &pgRepo{DB: db}
}

func (r *pgRepo) GetByUsername(ctx context.Context, username string) (AdminUser, error) {
	var u AdminUser
	var lastLogin sql.NullTime
	row := r.DB.QueryRowContext(ctx, `
SELECT id, username, password_hash, COALESCE(email, ''), role, created_at, last_login, is_active
FROM admin_users
WHERE username = $1`, username)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role,
		&u.CreatedAt, &lastLogin, &u.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AdminUser{}, ErrNotFound
		}
		return AdminUser{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

func (r *pgRepo) Create(ctx context.Context, user AdminUser) error {
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO admin_users (username, password_hash, email, role, created_at, is_active)
VALUES ($1, $2, $3, $4, $5, TRUE)`,
		user.Username, user.PasswordHash, user.Email, user.Role, time.Now().UTC())
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrUsernameTaken
	}
	return err
}

func (r *pgRepo) List(ctx context.Context) ([]AdminUser, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, username, COALESCE(email, ''), role, created_at, last_login, is_active
FROM admin_users
ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AdminUser
	for rows.Next() {
		var u AdminUser
		var lastLogin sql.NullTime
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role,
			&u.CreatedAt, &lastLogin, &u.IsActive); err != nil {
			return nil, err
		}
		if lastLogin.Valid {
			t := lastLogin.Time
			u.LastLogin = &t
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *pgRepo) TouchLogin(ctx context.Context, username string) error {
	_, err := r.DB.ExecContext(ctx, `
UPDATE admin_users SET last_login = $1 WHERE username = $2`, time.Now().UTC(), username)
	return err
}

func (r *pgRepo) InsertAudit(ctx context.Context, entry AuditEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO admin_audit_log (admin_username, action, details, ip_address, timestamp)
VALUES ($1, $2, $3, $4, $5)`,
		entry.AdminUsername, entry.Action, entry.Details, entry.IPAddress, ts)
	return err
}

func (r *pgRepo) AuditLog(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, admin_username, action, COALESCE(details, ''), COALESCE(ip_address, ''), timestamp
FROM admin_audit_log
ORDER BY timestamp DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.AdminUsername, &e.Action, &e.Details,
			&e.IPAddress, &e.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
