package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/ericfisherdev/personauth/internal/domain/model"
	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// poolIface is the subset of *pgxpool.Pool used by the repository, which lets
// tests substitute pgxmock.
type poolIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Compile-time interface satisfaction check.
var _ driven.PersonStore = (*PersonRepo)(nil)

// PersonRepo is the PostgreSQL implementation of the PersonStore port interface.
type PersonRepo struct {
	pool poolIface
}

// NewPersonRepo creates a new PersonRepo.
func NewPersonRepo(pool poolIface) *PersonRepo {
	return &PersonRepo{pool: pool}
}

// FindAll returns all persons ordered by id.
func (r *PersonRepo) FindAll(ctx context.Context) ([]model.Person, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, login, password FROM person ORDER BY id`)
	if err != nil {
		return nil, oops.With("operation", "list persons").Wrap(err)
	}
	defer rows.Close()

	var persons []model.Person
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Login, &p.Password); err != nil {
			return nil, oops.With("operation", "scan person row").Wrap(err)
		}
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate persons").Wrap(err)
	}

	return persons, nil
}

// FindByID returns the person with id, or nil if none exists.
func (r *PersonRepo) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, login, password FROM person WHERE id = $1`, id)

	p, err := scanPerson(row)
	if err != nil {
		return nil, oops.With("operation", "get person").With("id", id).Wrap(err)
	}
	return p, nil
}

// FindByLogin returns the person with login, or nil if none exists.
func (r *PersonRepo) FindByLogin(ctx context.Context, login string) (*model.Person, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, login, password FROM person WHERE login = $1`, login)

	p, err := scanPerson(row)
	if err != nil {
		return nil, oops.With("operation", "get person by login").With("login", login).Wrap(err)
	}
	return p, nil
}

// Save inserts person when its ID is zero and replaces the stored row otherwise.
func (r *PersonRepo) Save(ctx context.Context, person model.Person) (model.Person, error) {
	if person.ID == 0 {
		err := r.pool.QueryRow(ctx,
			`INSERT INTO person (login, password) VALUES ($1, $2) RETURNING id`,
			person.Login, person.Password).Scan(&person.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return model.Person{}, fmt.Errorf("insert person %q: %w", person.Login, driven.ErrLoginTaken)
			}
			return model.Person{}, oops.With("operation", "insert person").With("login", person.Login).Wrap(err)
		}
		return person, nil
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE person SET login = $2, password = $3 WHERE id = $1`,
		person.ID, person.Login, person.Password)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Person{}, fmt.Errorf("update person %d: %w", person.ID, driven.ErrLoginTaken)
		}
		return model.Person{}, oops.With("operation", "update person").With("id", person.ID).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return model.Person{}, fmt.Errorf("update person %d: %w", person.ID, driven.ErrPersonNotFound)
	}

	return person, nil
}

// Delete removes the person with id.
func (r *PersonRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM person WHERE id = $1`, id)
	if err != nil {
		return oops.With("operation", "delete person").With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete person %d: %w", id, driven.ErrPersonNotFound)
	}
	return nil
}

func scanPerson(row pgx.Row) (*model.Person, error) {
	var p model.Person
	err := row.Scan(&p.ID, &p.Login, &p.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
