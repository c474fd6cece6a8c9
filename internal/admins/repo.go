package admins

import "context"

// Repo persists admin accounts and the audit trail.
type Repo interface {
	GetByUsername(ctx context.Context, username string) (AdminUser, error)
	Create(ctx context.Context, user AdminUser) error
	List(ctx context.Context) ([]AdminUser, error)
	TouchLogin(ctx context.Context, username string) error
	InsertAudit(ctx context.Context, entry AuditEntry) error
	AuditLog(ctx context.Context, limit int) ([]AuditEntry, error)
}
