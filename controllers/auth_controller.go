package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshan87986/CommunityHub/store"
	"github.com/darshan87986/CommunityHub/utils"
)

// ---------------- REGISTER ----------------
func Register(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
			Role     string `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := st.Register(c.Request.Context(), input.Name, input.Email, input.Password, input.Role)
		if err != nil {
			fail(c, err)
			return
		}

		// Welcome mail is best-effort, never blocks registration.
		go func(name, email string) {
			body := fmt.Sprintf("<p>Hi %s,</p><p>Welcome to CommunityHub! Browse upcoming events and get involved.</p>", name)
			_ = utils.SendEmail(email, name, "Welcome to CommunityHub", body)
		}(user.Name, user.Email)

		c.JSON(http.StatusCreated, gin.H{
			"token": st.Token(),
			"user":  user,
		})
	}
}

// ---------------- LOGIN ----------------
func Login(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := st.Login(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": st.Token(),
			"user":  user,
		})
	}
}

// ---------------- LOGOUT ----------------
func Logout(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Logout(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// ---------------- ME ----------------
func Me(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := st.CurrentUser()
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": store.ErrUnauthenticated.Error()})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
