// Package memory provides a process-local PersonStore for development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ericfisherdev/personauth/internal/domain/model"
	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PersonStore = (*PersonRepo)(nil)

// PersonRepo keeps persons in a map guarded by a mutex. Logins are unique, as
// they are in the SQL schemas.
type PersonRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.Person
}

// NewPersonRepo creates an empty PersonRepo.
func NewPersonRepo() *PersonRepo {
	return &PersonRepo{byID: make(map[int64]model.Person)}
}

// FindAll returns all persons ordered by id.
func (r *PersonRepo) FindAll(_ context.Context) ([]model.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	persons := make([]model.Person, 0, len(r.byID))
	for _, p := range r.byID {
		persons = append(persons, p)
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].ID < persons[j].ID })
	return persons, nil
}

// FindByID returns the person with id, or nil if absent.
func (r *PersonRepo) FindByID(_ context.Context, id int64) (*model.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// FindByLogin returns the person with login, or nil if absent.
func (r *PersonRepo) FindByLogin(_ context.Context, login string) (*model.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.Login == login {
			return &p, nil
		}
	}
	return nil, nil
}

// Save inserts person when its ID is zero and replaces it otherwise.
func (r *PersonRepo) Save(_ context.Context, person model.Person) (model.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if person.ID != 0 {
		if _, ok := r.byID[person.ID]; !ok {
			return model.Person{}, fmt.Errorf("update person %d: %w", person.ID, driven.ErrPersonNotFound)
		}
	}
	if r.loginTakenLocked(person.Login, person.ID) {
		return model.Person{}, fmt.Errorf("save person %q: %w", person.Login, driven.ErrLoginTaken)
	}

	if person.ID == 0 {
		r.nextID++
		person.ID = r.nextID
	}
	r.byID[person.ID] = person
	return person, nil
}

// Delete removes the person with id.
func (r *PersonRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("delete person %d: %w", id, driven.ErrPersonNotFound)
	}
	delete(r.byID, id)
	return nil
}

func (r *PersonRepo) loginTakenLocked(login string, exceptID int64) bool {
	for id, p := range r.byID {
		if id != exceptID && p.Login == login {
			return true
		}
	}
	return false
}
