package application

import (
	"unicode"
	"unicode/utf8"

	"github.com/ericfisherdev/personauth/internal/domain/model"
)

// MinCredentialLength is the shortest login or password accepted on sign-up.
const MinCredentialLength = 3

// MaxPasswordBytes is the longest sign-up password bcrypt can hash.
const MaxPasswordBytes = 72

// validateSignUp applies the creation constraints to a sign-up candidate
// before its password is hashed.
func validateSignUp(candidate model.Person) error {
	if err := validatePresent(candidate); err != nil {
		return err
	}
	if err := validateCreationField("login", candidate.Login); err != nil {
		return err
	}
	if err := validateCreationField("password", candidate.Password); err != nil {
		return err
	}
	if len(candidate.Password) > MaxPasswordBytes {
		return errValidation("password", "password must not exceed %d bytes", MaxPasswordBytes)
	}
	return nil
}

// validateCreate checks a raw create candidate. Only presence is required
// since the password is expected to be already hashed.
func validateCreate(candidate model.Person) error {
	return validatePresent(candidate)
}

func validatePresent(candidate model.Person) error {
	if candidate.Login == "" {
		return errValidation("login", "login is not specified")
	}
	if candidate.Password == "" {
		return errValidation("password", "password is not specified")
	}
	return nil
}

func validateCreationField(field, value string) error {
	if utf8.RuneCountInString(value) < MinCredentialLength {
		return errValidation(field, "%s must contain at least %d characters", field, MinCredentialLength)
	}
	if !hasUpper(value) {
		return errValidation(field, "%s must contain an upper-case character", field)
	}
	return nil
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
