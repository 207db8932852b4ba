package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

	// ErrPasswordTooShort applies to password changes via profile update.
	// Registration only requires presence.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
)

// MinPasswordLength is the minimum accepted length for a new password
// supplied through a profile update.
const MinPasswordLength = 6

// User represents a registered account. The password is held only as a
// bcrypt hash; the plaintext never leaves the handler that received it.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a new User with the given name, email, and password hash.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewUser(name, email, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// validateEmailFormat performs basic validation of email format: a single @
// with a dotted domain after it. Anything stricter belongs to the mail
// system, not this service.
func validateEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	dotIndex := strings.IndexByte(domainPart, '.')
	if dotIndex <= 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}
