package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Common validation errors for User. Each wraps ErrValidation.
var (
	ErrEmptyUserName    = fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	ErrUserNameTooShort = fmt.Errorf("%w: user name must be at least 2 characters long", ErrValidation)
	ErrUserNameTooLong  = fmt.Errorf("%w: user name must be at most 100 characters long", ErrValidation)
	ErrEmptyEmail       = fmt.Errorf("%w: email cannot be empty", ErrValidation)
)

// User represents an assignee identified by a unique email address.
// Many tasks may reference one user; the user does not own its tasks.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given name and email and sets the
// creation/update timestamps. The ID is assigned by the store on insert.
// Returns an error if validation fails.
func NewUser(name, email string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return ErrEmptyUserName
	}
	if utf8.RuneCountInString(name) < 2 {
		return ErrUserNameTooShort
	}
	if utf8.RuneCountInString(name) > 100 {
		return ErrUserNameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// validateEmailFormat performs basic validation of email format.
// Full RFC validation is left to the API boundary, which validates payloads
// with the validator package; this check only catches entities constructed
// in code with obviously malformed addresses.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domainPart := email[at+1:]
	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
