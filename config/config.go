package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	Port        string
	DBName      string
	JWTSecret   string
	TokenTTL    time.Duration
	MongoClient *mongo.Client // nil when MONGODB_URI is unset
}

// Load reads .env (when present) and the environment. A missing MONGODB_URI
// is not fatal: the app falls back to in-memory storage.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBName:    getEnv("DB_NAME", "community_hub"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  24 * time.Hour,
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if hours := os.Getenv("TOKEN_TTL_HOURS"); hours != "" {
		d, err := time.ParseDuration(hours + "h")
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %w", err)
		}
		cfg.TokenTTL = d
	}

	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return nil, fmt.Errorf("pinging mongo: %w", err)
		}
		cfg.MongoClient = client
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
