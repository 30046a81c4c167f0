package security

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinCost     = 12
	DefaultCost = 14
)

// HashPassword hashes a password with bcrypt after a basic strength check.
func HashPassword(password string) (string, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password against its bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePasswordStrength enforces the length bounds.
func ValidatePasswordStrength(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if len(password) > 32 {
		return errors.New("password must be at most 32 characters")
	}

	return nil
}

// ValidateInput rejects strings matching common SQL injection patterns.
func ValidateInput(input string) error {
	sqlPatterns := []string{
		`(?i)(\s*(union|select|insert|update|delete|drop|create|alter|exec|execute)\s+)`,
		`(?i)(\s*(or|and)\s+\d+\s*=\s*\d+)`,
		`(?i)(\s*['";](\s*--|\s*/\*))`,
		`(?i)(\s*'\s*(or|and)\s*'[^']*'\s*=\s*'[^']*')`,
		`(?i)(union\s+select)`,
		`(?i)(insert\s+into)`,
		`(?i)(drop\s+table)`,
	}

	for _, pattern := range sqlPatterns {
		matched, _ := regexp.MatchString(pattern, input)
		if matched {
			return errors.New("input contains unsafe characters")
		}
	}

	return nil
}
