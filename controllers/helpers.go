package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshan87986/CommunityHub/auth"
	"github.com/darshan87986/CommunityHub/store"
)

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrUnauthenticated), errors.Is(err, auth.ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrRoleNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyAttending),
		errors.Is(err, store.ErrAlreadyVolunteering),
		errors.Is(err, store.ErrSoldOut),
		errors.Is(err, store.ErrRoleFull),
		errors.Is(err, store.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, store.ErrEmptyContent),
		errors.Is(err, store.ErrInvalidDraft),
		errors.Is(err, store.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
