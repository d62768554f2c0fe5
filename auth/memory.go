package auth

import (
	"context"
	"sync"

	"github.com/darshan87986/CommunityHub/models"
)

// MemoryDirectory is the in-process user directory used when no database is
// configured, and by tests.
type MemoryDirectory struct {
	mu    sync.Mutex
	users map[string]models.StoredUser // keyed by email
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]models.StoredUser)}
}

func (d *MemoryDirectory) FindByEmail(_ context.Context, email string) (models.StoredUser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.users[email]
	if !ok {
		return models.StoredUser{}, ErrNoUser
	}
	return rec, nil
}

func (d *MemoryDirectory) Insert(_ context.Context, user models.StoredUser) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.Email] = user
	return nil
}
