package admins

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]AdminUser
	audit  []AuditEntry
}

// NewMemoryRepo constructs an in-memory admins repo.
func NewMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, users: map[string]AdminUser{}}
}

func (r *memoryRepo) GetByUsername(ctx context.Context, username string) (AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return AdminUser{}, ErrNotFound
	}
	return u, nil
}

func (r *memoryRepo) Create(ctx context.Context, user AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return ErrUsernameTaken
	}
	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.IsActive = true
	r.users[user.Username] = user
	return nil
}

func (r *memoryRepo) List(ctx context.Context) ([]AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]AdminUser, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *memoryRepo) TouchLogin(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	u.LastLogin = &now
	r.users[username] = u
	return nil
}

func (r *memoryRepo) InsertAudit(ctx context.Context, entry AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	r.audit = append(r.audit, entry)
	return nil
}

func (r *memoryRepo) AuditLog(ctx context.Context, limit int) ([]AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]AuditEntry, len(r.audit))
	copy(out, r.audit)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
