package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/darshan87986/CommunityHub/config"
	controllers "github.com/darshan87986/CommunityHub/controllers"
	middleware "github.com/darshan87986/CommunityHub/middleware"
	"github.com/darshan87986/CommunityHub/store"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, st *store.Store) {
	// public
	r.POST("/auth/register", controllers.Register(st))
	r.POST("/auth/login", controllers.Login(st))

	// protected
	auth := middleware.AuthMiddleware(cfg)

	session := r.Group("/auth")
	session.Use(auth)
	{
		session.POST("/logout", controllers.Logout(st))
		session.GET("/me", controllers.Me(st))
	}

	events := r.Group("/events")
	events.Use(auth)
	{
		events.POST("", controllers.CreateEvent(st))
		events.GET("", controllers.ListEvents(st))
		events.GET("/:id", controllers.GetEvent(st))
		events.PATCH("/:id", controllers.UpdateEvent(st))
		events.DELETE("/:id", controllers.DeleteEvent(st))
		events.POST("/:id/join", controllers.JoinEvent(st))
		events.POST("/:id/volunteer", controllers.VolunteerForRole(st))
		events.POST("/:id/comments", controllers.AddComment(st))
	}
}
