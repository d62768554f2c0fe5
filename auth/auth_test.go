package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darshan87986/CommunityHub/auth"
	"github.com/darshan87986/CommunityHub/models"
	"github.com/darshan87986/CommunityHub/store"
)

func TestCreateAndAuthenticate(t *testing.T) {
	svc := auth.NewService(auth.NewMemoryDirectory(), "test-secret", time.Hour)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Jane", "jane@x.com", "pw", models.RoleAttendee)
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)
	assert.NotEmpty(t, created.User.ID)
	assert.Equal(t, models.RoleAttendee, created.User.Role)
	assert.Contains(t, created.User.Avatar, "ui-avatars.com")

	res, err := svc.Authenticate(ctx, "jane@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, res.User.ID)

	_, err = svc.Authenticate(ctx, "jane@x.com", "nope")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)

	_, err = svc.Authenticate(ctx, "nobody@x.com", "pw")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := auth.NewService(auth.NewMemoryDirectory(), "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Jane", "jane@x.com", "pw", models.RoleAttendee)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Impostor", "jane@x.com", "pw2", models.RoleOrganizer)
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestTokenCarriesIdentityClaims(t *testing.T) {
	svc := auth.NewService(auth.NewMemoryDirectory(), "test-secret", time.Hour)

	res, err := svc.Create(context.Background(), "John", "john@x.com", "pw", models.RoleOrganizer)
	require.NoError(t, err)

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, res.User.ID, claims["user_id"])
	assert.Equal(t, models.RoleOrganizer, claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))
}
