// Package password provides one-way password hashing and strength checks.
package password

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor. Fixed so hashes stay comparable across
// deployments.
const hashCost = 10

const specialChars = "@$!%*?&"

// Hash returns a salted bcrypt hash of password. Two calls with the same
// input produce different hashes (fresh salt per call).
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Malformed hashes yield false,
// never an error.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsStrong reports whether password is at least 8 characters and contains a
// lowercase letter, an uppercase letter, a digit, and one of @$!%*?&.
func IsStrong(password string) bool {
	return len(Feedback(password)) == 0
}

// Feedback returns one human-readable message per unmet strength criterion.
// An empty slice means the password is strong.
func Feedback(password string) []string {
	var feedback []string

	if len(password) < 8 {
		feedback = append(feedback, "Password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		feedback = append(feedback, "Password must contain lowercase letters")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		feedback = append(feedback, "Password must contain uppercase letters")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		feedback = append(feedback, "Password must contain numbers")
	}
	if !strings.ContainsAny(password, specialChars) {
		feedback = append(feedback, "Password must contain special characters (@$!%*?&)")
	}

	return feedback
}
