package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	FirstName      *string   `json:"first_name,omitempty" db:"first_name"`
	LastName       *string   `json:"last_name,omitempty" db:"last_name"`
	AvatarURL      *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Language       string    `json:"language" db:"language"`
	CurrencyCode   string    `json:"currency_code" db:"currency_code"`
	CurrencySymbol string    `json:"currency_symbol" db:"currency_symbol"`
	Role           UserRole  `json:"role" db:"role"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (u *User) HasRole(requiredRole UserRole) bool {
	if requiredRole == RoleAdmin {
		return u.Role == RoleAdmin
	}
	return u.Role == RoleUser || u.Role == RoleAdmin
}

type CreateUserInput struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

func (in *CreateUserInput) Validate() error {
	if len(in.Username) < 3 || len(in.Username) > 30 {
		return fmt.Errorf("%w: username must be between 3 and 30 characters", ErrValidation)
	}
	if !usernamePattern.MatchString(in.Username) {
		return fmt.Errorf("%w: username can only contain letters, numbers, underscores and hyphens", ErrValidation)
	}
	if in.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileInput struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type UpdatePreferencesInput struct {
	Language     *string `json:"language,omitempty"`
	CurrencyCode *string `json:"currency_code,omitempty"`
}

func (in *UpdatePreferencesInput) Validate() error {
	if in.Language != nil && *in.Language != "fr" && *in.Language != "en" {
		return fmt.Errorf("%w: unsupported language %q", ErrValidation, *in.Language)
	}
	if in.CurrencyCode != nil {
		if _, ok := CurrencyByCode(*in.CurrencyCode); !ok {
			return fmt.Errorf("%w: unsupported currency %q", ErrValidation, *in.CurrencyCode)
		}
	}
	return nil
}

// AdminUpdateUserInput is the admin-side user mutation; it can also change
// the role, which escalates the emitted admin_action severity.
type AdminUpdateUserInput struct {
	Username  *string   `json:"username,omitempty"`
	Email     *string   `json:"email,omitempty"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Role      *UserRole `json:"role,omitempty"`
}

type UserFilters struct {
	Search string    `query:"search"`
	Role   *UserRole `query:"role"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
