package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/darshan87986/CommunityHub/models"
)

// MongoDirectory stores user records in a Mongo collection.
type MongoDirectory struct {
	col *mongo.Collection
}

func NewMongoDirectory(db *mongo.Database) *MongoDirectory {
	return &MongoDirectory{col: db.Collection("users")}
}

func (d *MongoDirectory) FindByEmail(ctx context.Context, email string) (models.StoredUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.StoredUser
	err := d.col.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StoredUser{}, ErrNoUser
	}
	if err != nil {
		return models.StoredUser{}, err
	}
	return rec, nil
}

func (d *MongoDirectory) Insert(ctx context.Context, user models.StoredUser) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := d.col.InsertOne(ctx, user)
	return err
}
