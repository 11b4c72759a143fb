package application_test

import (
	"context"
	"sort"

	"github.com/ericfisherdev/personauth/internal/domain/model"
	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// --- Mock implementations ---

// mockPersonStore is a map-backed PersonStore that records writes and can be
// told to fail.
type mockPersonStore struct {
	persons   map[int64]model.Person
	nextID    int64
	saves     []model.Person
	deletes   []int64
	findErr   error
	saveErr   error
	deleteErr error
}

func newMockPersonStore(seed ...model.Person) *mockPersonStore {
	m := &mockPersonStore{persons: make(map[int64]model.Person)}
	for _, p := range seed {
		m.persons[p.ID] = p
		if p.ID > m.nextID {
			m.nextID = p.ID
		}
	}
	return m
}

func (m *mockPersonStore) FindAll(_ context.Context) ([]model.Person, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	persons := make([]model.Person, 0, len(m.persons))
	for _, p := range m.persons {
		persons = append(persons, p)
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].ID < persons[j].ID })
	return persons, nil
}

func (m *mockPersonStore) FindByID(_ context.Context, id int64) (*model.Person, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.persons[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockPersonStore) FindByLogin(_ context.Context, login string) (*model.Person, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, p := range m.persons {
		if p.Login == login {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *mockPersonStore) Save(_ context.Context, person model.Person) (model.Person, error) {
	m.saves = append(m.saves, person)
	if m.saveErr != nil {
		return model.Person{}, m.saveErr
	}
	if person.ID == 0 {
		m.nextID++
		person.ID = m.nextID
	} else if _, ok := m.persons[person.ID]; !ok {
		return model.Person{}, driven.ErrPersonNotFound
	}
	m.persons[person.ID] = person
	return person, nil
}

func (m *mockPersonStore) Delete(_ context.Context, id int64) error {
	m.deletes = append(m.deletes, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.persons[id]; !ok {
		return driven.ErrPersonNotFound
	}
	delete(m.persons, id)
	return nil
}

// mockHasher prefixes plaintext so tests can tell hashed from raw values. A
// value without the prefix matches no password.
type mockHasher struct {
	hashErr   error
	verifyErr error
	hashed    []string
}

const mockHashPrefix = "hashed:"

func (m *mockHasher) Hash(plaintext string) (string, error) {
	m.hashed = append(m.hashed, plaintext)
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return mockHashPrefix + plaintext, nil
}

func (m *mockHasher) Verify(plaintext, hash string) (bool, error) {
	if m.verifyErr != nil {
		return false, m.verifyErr
	}
	return hash == mockHashPrefix+plaintext, nil
}
