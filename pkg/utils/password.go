package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for stored user passwords.
const PasswordCost = 12

// HashPassword generates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, PasswordCost)
}

// HashPasswordWithCost is HashPassword with an explicit work factor.
// Tests use bcrypt.MinCost through it.
func HashPasswordWithCost(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password with a stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
