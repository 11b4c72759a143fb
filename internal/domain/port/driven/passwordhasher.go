package driven

// PasswordHasher is the one-way hashing capability injected into the
// application layer.
type PasswordHasher interface {
	// Hash returns the encoded hash of plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
	// a malformed hash is an error.
	Verify(plaintext, hash string) (bool, error)
}
