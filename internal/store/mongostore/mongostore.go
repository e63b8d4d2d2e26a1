// Package mongostore keeps accounts and events in MongoDB. The collection
// and field names match the database written by the original Node service,
// so an existing University_Club_Aggregator database can be served as is.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clubhub/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	DefaultDatabase  = "University_Club_Aggregator"
	usersCollection  = "logins"
	eventsCollection = "events"
	connectTimeout   = 10 * time.Second
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	users  *UserStore
	events *EventStore
}

var _ store.Store = (*Store)(nil)

// Open connects to uri and pings the server. An empty database name falls
// back to the one in the URI path, then to DefaultDatabase.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	if database == "" {
		if cs, err := connstring.ParseAndValidate(uri); err == nil && cs.Database != "" {
			database = cs.Database
		} else {
			database = DefaultDatabase
		}
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := New(client.Database(database))
	s.client = client
	if err := s.EnsureIndexes(ctx); err != nil {
		slog.Warn("mongo ensure indexes", "error", err)
	}
	return s, nil
}

// New wraps an already connected database. Close is a no-op for stores
// built this way.
func New(db *mongo.Database) *Store {
	return &Store{
		db:     db,
		users:  &UserStore{col: db.Collection(usersCollection)},
		events: &EventStore{col: db.Collection(eventsCollection)},
	}
}

func (s *Store) Users() store.UserStore   { return s.users }
func (s *Store) Events() store.EventStore { return s.events }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the uniqueness indexes the credential store relies
// on. Default index names are kept so an index already created by mongoose
// (email_1) is recognised instead of conflicting.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"username": bson.M{"$exists": true}}),
		},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = s.events.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "dateTime", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("events indexes: %w", err)
	}
	return nil
}
