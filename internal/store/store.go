// Package store defines the persistence contracts shared by the document
// (mongostore) and relational (sqlstore) backends.
package store

import (
	"context"
	"errors"

	"clubhub/internal/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserStore persists club and student accounts in one keyspace so that
// email uniqueness holds across both variants.
type UserStore interface {
	CreateClub(ctx context.Context, c *domain.Club) error
	CreateStudent(ctx context.Context, s *domain.Student) error
	ClubByUsername(ctx context.Context, username string) (*domain.Club, error)
	StudentByEmail(ctx context.Context, email string) (*domain.Student, error)
	ByID(ctx context.Context, id string) (domain.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]domain.Account, error)
}

type EventStore interface {
	Create(ctx context.Context, e *domain.Event) error
	// List returns every event, latest date-time first.
	List(ctx context.Context) ([]*domain.Event, error)
}

// Store is a connected backend.
type Store interface {
	Users() UserStore
	Events() EventStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
