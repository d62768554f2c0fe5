package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/darshan87986/CommunityHub/auth"
	"github.com/darshan87986/CommunityHub/config"
	"github.com/darshan87986/CommunityHub/routes"
	"github.com/darshan87986/CommunityHub/storage"
	"github.com/darshan87986/CommunityHub/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		users    auth.Directory
		persist  store.Persistence
		sessions store.SessionRecords
	)
	if cfg.MongoClient != nil {
		db := cfg.MongoClient.Database(cfg.DBName)
		users = auth.NewMongoDirectory(db)
		mongoStorage := storage.NewMongo(db)
		persist = mongoStorage
		sessions = mongoStorage
	} else {
		log.Println("MONGODB_URI not set, running with in-memory storage")
		users = auth.NewMemoryDirectory()
		mem := storage.NewMemory()
		persist = mem
		sessions = mem
	}

	st := store.New(store.Options{
		Auth:        auth.NewService(users, cfg.JWTSecret, cfg.TokenTTL),
		Persistence: persist,
		Sessions:    sessions,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := st.Start(ctx); err != nil {
		log.Fatalf("store: %v", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "If-None-Match"},
		ExposeHeaders:    []string{"ETag", "Last-Modified"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, cfg, st)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
