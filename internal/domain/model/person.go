// Package model holds the domain entities of the account service.
package model

// Person is a stored credential record. Password always holds the value as
// persisted: a hash for sign-up records, the caller's input for raw creates.
type Person struct {
	ID       int64
	Login    string
	Password string
}

// Patch field names accepted by a partial update.
const (
	PatchFieldLogin    = "login"
	PatchFieldPassword = "password"
)

// PersonPatch carries the members of a partial update. A nil member is left
// untouched when the patch is applied.
type PersonPatch struct {
	Login    *string
	Password *string
}

// PatchFromFields builds a PersonPatch from a field-name map. Keys other than
// "login" and "password" are ignored.
func PatchFromFields(fields map[string]string) PersonPatch {
	var patch PersonPatch
	if v, ok := fields[PatchFieldLogin]; ok {
		patch.Login = &v
	}
	if v, ok := fields[PatchFieldPassword]; ok {
		patch.Password = &v
	}
	return patch
}

// IsEmpty reports whether the patch changes nothing.
func (p PersonPatch) IsEmpty() bool {
	return p.Login == nil && p.Password == nil
}

// Apply overwrites the present members on person.
func (p PersonPatch) Apply(person *Person) {
	if p.Login != nil {
		person.Login = *p.Login
	}
	if p.Password != nil {
		person.Password = *p.Password
	}
}
