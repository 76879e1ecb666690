package store

import (
	"context"
	"errors"

	"waterBuddyAPI/internal/user"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("username already exists")
)

// Repository is the persistence boundary injected into the services: one
// record per user, loaded and saved whole. There are no ambient globals and
// no partial updates; every mutation is a load-modify-save of the document.
type Repository interface {
	Create(ctx context.Context, record *user.Record) error
	Load(ctx context.Context, username string) (*user.Record, error)
	Save(ctx context.Context, record *user.Record) error
	Exists(ctx context.Context, username string) (bool, error)
}
