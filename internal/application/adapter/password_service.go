// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// HashPassword returns the bcrypt hash of a plain text password.
	HashPassword(password string) (string, error)

	// VerifyPassword checks a plain text password against its stored hash.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords below the minimum requirements.
	ValidatePasswordStrength(password string) error
}
