package admins

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"inboxqualify-backend/internal/shared/telemetry"
)

// Service authenticates admins and records their actions. When no database
// account matches, a single operator account from the environment still
// works, so a fresh deployment is reachable before any user is created.
type Service struct {
	Repo             Repo
	FallbackUsername string
	FallbackPassword string
}

// NewService constructs an admins service. Repo may be nil when running
// without a database; only the fallback credentials work then.
func NewService(repo Repo, fallbackUsername, fallbackPassword string) *Service {
	return &Service{
		Repo:             repo,
		FallbackUsername: fallbackUsername,
		FallbackPassword: fallbackPassword,
	}
}

// Authenticate verifies credentials against stored accounts first, then the
// environment fallback. It returns ErrInvalidCredentials for every failure
// mode so callers cannot distinguish unknown users from wrong passwords.
func (s *Service) Authenticate(ctx context.Context, username, password string) (AdminUser, error) {
	if s.Repo != nil {
		user, err := s.Repo.GetByUsername(ctx, username)
		switch {
		case err == nil:
			if !user.IsActive {
				return AdminUser{}, ErrInvalidCredentials
			}
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
				if err := s.Repo.TouchLogin(ctx, username); err != nil {
					telemetry.Error("admins.touch_login.failed", map[string]any{
						"err": err.Error(),
					})
				}
				return user, nil
			}
		case errors.Is(err, ErrNotFound):
			// fall through to the environment account
		default:
			telemetry.Error("admins.lookup.failed", map[string]any{
				"err": err.Error(),
			})
		}
	}

	if s.fallbackMatches(username, password) {
		return AdminUser{Username: username, Role: DefaultRole, IsActive: true}, nil
	}
	return AdminUser{}, ErrInvalidCredentials
}

func (s *Service) fallbackMatches(username, password string) bool {
	if s.FallbackUsername == "" || s.FallbackPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.FallbackUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.FallbackPassword)) == 1
	return userOK && passOK
}

// CreateUser stores a new admin account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password, email, role string) (AdminUser, error) {
	if s.Repo == nil {
		return AdminUser{}, fmt.Errorf("admin accounts require a database")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return AdminUser{}, fmt.Errorf("username is required")
	}
	if len(password) < 8 {
		return AdminUser{}, fmt.Errorf("password must be at least 8 characters")
	}
	if role == "" {
		role = DefaultRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AdminUser{}, fmt.Errorf("hash password: %w", err)
	}
	user := AdminUser{
		Username:     username,
		Email:        email,
		Role:         role,
		IsActive:     true,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return AdminUser{}, err
	}
	return s.Repo.GetByUsername(ctx, username)
}

// Users lists all admin accounts.
func (s *Service) Users(ctx context.Context) ([]AdminUser, error) {
	if s.Repo == nil {
		return nil, nil
	}
	return s.Repo.List(ctx)
}

// Audit records an admin action. Failures are logged and swallowed; auditing
// must never fail the action itself.
func (s *Service) Audit(ctx context.Context, username, action, details, ip string) {
	if s.Repo == nil {
		return
	}
	err := s.Repo.InsertAudit(ctx, AuditEntry{
		AdminUsername: username,
		Action:        action,
		Details:       details,
		IPAddress:     ip,
	})
	if err != nil {
		telemetry.Error("admins.audit.failed", map[string]any{
			"action": action,
			"err":    err.Error(),
		})
	}
}

// AuditLog returns the newest audit entries.
func (s *Service) AuditLog(ctx context.Context, limit int) ([]AuditEntry, error) {
	if s.Repo == nil {
		return nil, nil
	}
	if limit < 1 || limit > 1000 {
		limit = 100
	}
	return s.Repo.AuditLog(ctx, limit)
}
