package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/darshan87986/CommunityHub/models"
	"github.com/darshan87986/CommunityHub/store"
)

// sessionKey is the _id of the single persisted session record, the same
// single-slot shape a client keeps in local storage.
const sessionKey = "current"

// Mongo implements the store's Persistence and SessionRecords ports against
// an events collection and a sessions collection.
type Mongo struct {
	events   *mongo.Collection
	sessions *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		events:   db.Collection("events"),
		sessions: db.Collection("sessions"),
	}
}

func (m *Mongo) ListEvents(ctx context.Context) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := m.events.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (m *Mongo) CreateEvent(ctx context.Context, ev models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.events.InsertOne(ctx, ev)
	return err
}

func (m *Mongo) UpdateEvent(ctx context.Context, ev models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := m.events.ReplaceOne(ctx, bson.M{"_id": ev.ID}, ev, opts)
	return err
}

func (m *Mongo) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.events.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

type sessionDoc struct {
	ID     string              `bson:"_id"`
	Record store.SessionRecord `bson:"record"`
}

func (m *Mongo) Save(ctx context.Context, rec store.SessionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := m.sessions.ReplaceOne(ctx, bson.M{"_id": sessionKey}, sessionDoc{ID: sessionKey, Record: rec}, opts)
	return err
}

func (m *Mongo) Load(ctx context.Context) (store.SessionRecord, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc sessionDoc
	err := m.sessions.FindOne(ctx, bson.M{"_id": sessionKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.SessionRecord{}, false, nil
	}
	if err != nil {
		return store.SessionRecord{}, false, err
	}
	return doc.Record, true, nil
}

func (m *Mongo) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.sessions.DeleteOne(ctx, bson.M{"_id": sessionKey})
	return err
}
