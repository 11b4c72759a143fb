// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/personauth/internal/domain/model"
	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// PersonService enforces credential constraints, hashes passwords on sign-up
// and merges partial updates before handing records to the store.
type PersonService struct {
	store  driven.PersonStore
	hasher driven.PasswordHasher
	logger *slog.Logger
}

// NewPersonService creates a PersonService with the required dependencies.
func NewPersonService(store driven.PersonStore, hasher driven.PasswordHasher, logger *slog.Logger) *PersonService {
	return &PersonService{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// SignUp validates candidate, replaces its plaintext password with a one-way
// hash and persists it. Validation failures never reach the store.
func (s *PersonService) SignUp(ctx context.Context, candidate model.Person) (model.Person, error) {
	if err := validateSignUp(candidate); err != nil {
		return model.Person{}, err
	}

	hash, err := s.hasher.Hash(candidate.Password)
	if err != nil {
		return model.Person{}, fmt.Errorf("hash password: %w", err)
	}

	saved, err := s.store.Save(ctx, model.Person{Login: candidate.Login, Password: hash})
	if err != nil {
		return model.Person{}, err
	}

	s.logger.InfoContext(ctx, "person signed up", "id", saved.ID, "login", saved.Login)
	return saved, nil
}

// Create persists candidate as-is. The password is stored without hashing,
// unlike SignUp.
func (s *PersonService) Create(ctx context.Context, candidate model.Person) (model.Person, error) {
	if err := validateCreate(candidate); err != nil {
		return model.Person{}, err
	}

	// TODO(security): raw create stores the password unhashed; decide whether to
	// reject inputs the hasher cannot verify once clients migrate to sign-up.
	s.logger.WarnContext(ctx, "person created without password hashing", "login", candidate.Login)

	return s.store.Save(ctx, model.Person{Login: candidate.Login, Password: candidate.Password})
}

// FindAll returns every stored person unmodified.
func (s *PersonService) FindAll(ctx context.Context) ([]model.Person, error) {
	return s.store.FindAll(ctx)
}

// FindByID returns the person with id, or nil when absent.
func (s *PersonService) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	if id <= 0 {
		return nil, nil
	}
	return s.store.FindByID(ctx, id)
}

// FindByLogin returns the person whose login equals login, or nil.
func (s *PersonService) FindByLogin(ctx context.Context, login string) (*model.Person, error) {
	return s.store.FindByLogin(ctx, login)
}

// Update replaces the stored record that has candidate.ID.
func (s *PersonService) Update(ctx context.Context, candidate model.Person) error {
	if _, err := s.mustFind(ctx, candidate.ID); err != nil {
		return err
	}

	if _, err := s.store.Save(ctx, candidate); err != nil {
		return storeNotFound(err, candidate.ID)
	}
	return nil
}

// PartialUpdate overwrites only the recognized fields present in fields and
// returns fields itself, not the merged record. A map with no recognized key
// leaves the store untouched.
func (s *PersonService) PartialUpdate(ctx context.Context, id int64, fields map[string]string) (map[string]string, error) {
	person, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := model.PatchFromFields(fields)
	if patch.IsEmpty() {
		return fields, nil
	}
	patch.Apply(person)

	if _, err := s.store.Save(ctx, *person); err != nil {
		return nil, storeNotFound(err, id)
	}
	return fields, nil
}

// Delete removes the person with id.
func (s *PersonService) Delete(ctx context.Context, id int64) error {
	if _, err := s.mustFind(ctx, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return storeNotFound(err, id)
	}
	return nil
}

// mustFind loads the person with id or returns a NOT_FOUND error.
func (s *PersonService) mustFind(ctx context.Context, id int64) (*model.Person, error) {
	person, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, errNotFound(id)
	}
	return person, nil
}
