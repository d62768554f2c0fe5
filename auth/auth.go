package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/darshan87986/CommunityHub/models"
	"github.com/darshan87986/CommunityHub/store"
)

// ErrNoUser is returned by a Directory when the email resolves to nothing.
var ErrNoUser = errors.New("no such user")

// ErrBadCredentials is the login failure surfaced to callers. Deliberately
// the same for unknown email and wrong password.
var ErrBadCredentials = errors.New("invalid email or password")

// Directory is the user record store behind the auth service.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (models.StoredUser, error)
	Insert(ctx context.Context, user models.StoredUser) error
}

// Service implements the store's Authenticator port: password verification
// against the directory plus JWT issuing.
type Service struct {
	users  Directory
	secret []byte
	ttl    time.Duration
}

func NewService(users Directory, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{users: users, secret: []byte(secret), ttl: ttl}
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (store.AuthResult, error) {
	rec, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrNoUser) {
		return store.AuthResult{}, ErrBadCredentials
	}
	if err != nil {
		return store.AuthResult{}, fmt.Errorf("looking up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return store.AuthResult{}, ErrBadCredentials
	}
	token, err := s.issueToken(rec.User)
	if err != nil {
		return store.AuthResult{}, err
	}
	return store.AuthResult{Token: token, User: rec.User}, nil
}

func (s *Service) Create(ctx context.Context, name, email, password, role string) (store.AuthResult, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return store.AuthResult{}, store.ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNoUser) {
		return store.AuthResult{}, fmt.Errorf("looking up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return store.AuthResult{}, fmt.Errorf("hashing password: %w", err)
	}
	rec := models.StoredUser{
		User: models.User{
			ID:     uuid.NewString(),
			Name:   name,
			Email:  email,
			Role:   role,
			Avatar: store.AvatarURL(name),
		},
		PasswordHash: string(hash),
	}
	if err := s.users.Insert(ctx, rec); err != nil {
		return store.AuthResult{}, fmt.Errorf("creating user: %w", err)
	}
	token, err := s.issueToken(rec.User)
	if err != nil {
		return store.AuthResult{}, err
	}
	return store.AuthResult{Token: token, User: rec.User}, nil
}

func (s *Service) issueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
