package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/personauth/internal/domain/model"
	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// AuthService exposes stored credentials to the authentication layer. It only
// supplies identity-verification material; authorization is not its concern.
type AuthService struct {
	persons *PersonService
	hasher  driven.PasswordHasher
}

// NewAuthService creates an AuthService reading through persons.
func NewAuthService(persons *PersonService, hasher driven.PasswordHasher) *AuthService {
	return &AuthService{
		persons: persons,
		hasher:  hasher,
	}
}

// LoadCredential returns the principal for login. An unknown login yields a
// USER_NOT_FOUND error carrying the login.
func (s *AuthService) LoadCredential(ctx context.Context, login string) (*model.Principal, error) {
	person, err := s.persons.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, errUserNotFound(login)
	}

	principal := model.NewPrincipal(*person)
	return &principal, nil
}

// Authenticate loads the principal for login and checks password against its
// hash. A wrong password is reported the same way as an unknown login.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*model.Principal, error) {
	principal, err := s.LoadCredential(ctx, login)
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Verify(password, principal.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password for %q: %w", login, err)
	}
	if !ok {
		return nil, errUserNotFound(login)
	}
	return principal, nil
}
