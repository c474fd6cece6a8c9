package admins

import "time"

// AdminUser is a dashboard operator account. PasswordHash never leaves the
// process.
type AdminUser struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `json:"is_active"`
	PasswordHash string     `json:"-"`
}

// AuditEntry is one recorded admin action.
type AuditEntry struct {
	ID            int64     `json:"id"`
	AdminUsername string    `json:"admin_username"`
	Action        string    `json:"action"`
	Details       string    `json:"details,omitempty"`
	IPAddress     string    `json:"ip_address,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

const DefaultRole = "admin"
