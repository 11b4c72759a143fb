// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/personauth/internal/domain/model"
)

// Sentinel errors returned by PersonStore implementations.
var (
	// ErrPersonNotFound indicates no stored person has the requested id.
	ErrPersonNotFound = errors.New("person not found")

	// ErrLoginTaken indicates the storage engine rejected a duplicate login.
	ErrLoginTaken = errors.New("login already exists")
)

// PersonStore defines the driven port for credential persistence.
// FindByID and FindByLogin return (nil, nil) when nothing matches.
// Save inserts when ID is zero and replaces the stored row otherwise;
// replacing an unknown id returns ErrPersonNotFound.
// Delete returns ErrPersonNotFound if the id does not exist.
type PersonStore interface {
	FindAll(ctx context.Context) ([]model.Person, error)
	FindByID(ctx context.Context, id int64) (*model.Person, error)
	FindByLogin(ctx context.Context, login string) (*model.Person, error)
	Save(ctx context.Context, person model.Person) (model.Person, error)
	Delete(ctx context.Context, id int64) error
}
