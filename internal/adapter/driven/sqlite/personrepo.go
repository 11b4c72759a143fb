package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ericfisherdev/personauth/internal/domain/model"
	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PersonStore = (*PersonRepo)(nil)

// PersonRepo is the SQLite implementation of the PersonStore port interface.
type PersonRepo struct {
	db *DB
}

// NewPersonRepo creates a new PersonRepo backed by the given DB.
func NewPersonRepo(db *DB) *PersonRepo {
	return &PersonRepo{db: db}
}

// FindAll returns all persons ordered by id.
func (r *PersonRepo) FindAll(ctx context.Context) ([]model.Person, error) {
	const query = `SELECT id, login, password FROM person ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var persons []model.Person
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Login, &p.Password); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}

	return persons, nil
}

// FindByID returns the person with id, or nil if none exists.
func (r *PersonRepo) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	const query = `SELECT id, login, password FROM person WHERE id = ?`

	p, err := r.scanOne(r.db.Reader.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get person %d: %w", id, err)
	}
	return p, nil
}

// FindByLogin returns the person with the given login, or nil if none exists.
func (r *PersonRepo) FindByLogin(ctx context.Context, login string) (*model.Person, error) {
	const query = `SELECT id, login, password FROM person WHERE login = ?`

	p, err := r.scanOne(r.db.Reader.QueryRowContext(ctx, query, login))
	if err != nil {
		return nil, fmt.Errorf("get person by login %q: %w", login, err)
	}
	return p, nil
}

// Save inserts person when its ID is zero and replaces the stored row otherwise.
func (r *PersonRepo) Save(ctx context.Context, person model.Person) (model.Person, error) {
	if person.ID == 0 {
		return r.insert(ctx, person)
	}
	return person, r.replace(ctx, person)
}

func (r *PersonRepo) insert(ctx context.Context, person model.Person) (model.Person, error) {
	const query = `INSERT INTO person (login, password) VALUES (?, ?)`

	result, err := r.db.Writer.ExecContext(ctx, query, person.Login, person.Password)
	if err != nil {
		return model.Person{}, fmt.Errorf("insert person %q: %w", person.Login, classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Person{}, fmt.Errorf("read inserted person id: %w", err)
	}

	person.ID = id
	return person, nil
}

func (r *PersonRepo) replace(ctx context.Context, person model.Person) error {
	const query = `UPDATE person SET login = ?, password = ? WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, person.Login, person.Password, person.ID)
	if err != nil {
		return fmt.Errorf("update person %d: %w", person.ID, classify(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update person %d: %w", person.ID, driven.ErrPersonNotFound)
	}

	return nil
}

// Delete removes the person with id. Returns driven.ErrPersonNotFound if the
// id does not exist.
func (r *PersonRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM person WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete person %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete person %d: %w", id, driven.ErrPersonNotFound)
	}

	return nil
}

func (r *PersonRepo) scanOne(row *sql.Row) (*model.Person, error) {
	var p model.Person
	err := row.Scan(&p.ID, &p.Login, &p.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// classify maps a unique-index violation on login to driven.ErrLoginTaken.
func classify(err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint") {
		return driven.ErrLoginTaken
	}
	return err
}
