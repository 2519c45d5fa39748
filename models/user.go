package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. PasswordHash is a bcrypt hash; the
// plaintext password is never stored.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
}

// SetPassword hashes the plaintext password and stores the result.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword reports whether the plaintext password matches the
// stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
