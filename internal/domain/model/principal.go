package model

// Principal is the identity-verification view of a Person handed to the
// authentication layer. Authorities is always empty: this service carries no
// roles.
type Principal struct {
	Login        string
	PasswordHash string
	Authorities  []string
}

// NewPrincipal builds the principal for person with an empty authority set.
func NewPrincipal(person Person) Principal {
	return Principal{
		Login:        person.Login,
		PasswordHash: person.Password,
		Authorities:  []string{},
	}
}
