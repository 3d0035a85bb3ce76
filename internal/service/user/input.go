package user

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt limit
	DefaultListLimit  = 50
	MaxListLimit      = 200
)

// CreateUserInput holds parameters for creating a user.
type CreateUserInput struct {
	Email    string
	Password string
	FullName *string
	Role     domain.UserRole
}

// Validate validates the create user input.
func (i CreateUserInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateEmail(i.Email)...)
	errs = append(errs, validatePassword(i.Password)...)

	if i.FullName != nil && len(strings.TrimSpace(*i.FullName)) > 255 {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "too long"})
	}
	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be 'manager' or 'staff'"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// BootstrapInput holds parameters for creating or promoting the first manager.
type BootstrapInput struct {
	Email    string
	Password string
	FullName *string
}

// Validate validates the bootstrap input.
func (i BootstrapInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateEmail(i.Email)...)
	errs = append(errs, validatePassword(i.Password)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateEmail(email string) []domain.FieldError {
	switch {
	case email == "":
		return []domain.FieldError{{Field: "email", Message: "required"}}
	case len(email) > 254:
		return []domain.FieldError{{Field: "email", Message: "too long"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []domain.FieldError{{Field: "email", Message: "invalid format"}}
	}
	return nil
}

func validatePassword(password string) []domain.FieldError {
	switch {
	case len(password) < MinPasswordLength:
		return []domain.FieldError{{Field: "password", Message: "min 8 characters"}}
	case len(password) > MaxPasswordLength:
		return []domain.FieldError{{Field: "password", Message: "max 72 characters"}}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
