package store

import (
	"context"

	"github.com/darshan87986/CommunityHub/models"
)

// AuthResult is what the identity collaborator returns on success: an opaque
// token plus the authenticated user's profile.
type AuthResult struct {
	Token string
	User  models.User
}

// Authenticator is the identity collaborator. Create must return
// ErrDuplicateEmail when the directory already holds the email.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (AuthResult, error)
	Create(ctx context.Context, name, email, password, role string) (AuthResult, error)
}

// Persistence is the single event persistence port. The store treats it as
// write-through: in-memory state stays authoritative within the process.
type Persistence interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, ev models.Event) error
	UpdateEvent(ctx context.Context, ev models.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// SessionRecord is the persisted session: the current user's profile and
// auth token, survivable across process restarts.
type SessionRecord struct {
	Token string      `bson:"token" json:"token"`
	User  models.User `bson:"user" json:"user"`
}

// SessionRecords stores at most one session record.
type SessionRecords interface {
	Save(ctx context.Context, rec SessionRecord) error
	Load(ctx context.Context) (SessionRecord, bool, error)
	Clear(ctx context.Context) error
}
