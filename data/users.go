package data

import (
	"errors"
	"time"

	"github.com/emzola/librarium/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// Roles assigned at registration. Admins manage the catalog and the loan
// queue; users browse and borrow.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// AnonymousUser represents an unauthenticated request.
var AnonymousUser = &User{}

// User defines a registered account.
type User struct {
	ID               int64     `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	City             string    `json:"city,omitempty"`
	ProfilePicture   string    `json:"profile_picture,omitempty"`
	Role             string    `json:"role"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	Password         password  `json:"-"`
	Activated        bool      `json:"activated"`
	Version          int32     `json:"-"`
}

// IsAnonymous checks whether a User instance is the anonymous user.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// IsAdmin checks whether a user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// password holds the plaintext and hashed versions of a user's password.
// The plaintext field is a *pointer* to a string, so that we're able to
// distinguish between a plaintext password not being present in the struct
// at all, versus a plaintext password which is the empty string.
type password struct {
	Plaintext *string
	Hash      []byte
}

// Set calculates the bcrypt hash of a plaintext password.
func (p *password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), 12)
	if err != nil {
		return err
	}
	p.Plaintext = &plaintextPassword
	p.Hash = hash
	return nil
}

// Matches checks whether the provided plaintext password matches the
// stored hash.
func (p *password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

func ValidatePasswordPlaintext(v *validator.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= 8, "password", "must be at least 8 bytes long")
	v.Check(len(password) <= 72, "password", "must not be more than 72 bytes long")
}

func ValidateRole(v *validator.Validator, role string) {
	v.Check(role != "", "role", "must be provided")
	v.Check(validator.In(role, RoleAdmin, RoleUser), "role", "must be either Admin or User")
}

func ValidateUser(v *validator.Validator, user *User) {
	v.Check(user.Name != "", "name", "must be provided")
	v.Check(len(user.Name) <= 500, "name", "must not be more than 500 bytes long")
	ValidateEmail(v, user.Email)
	ValidateRole(v, user.Role)
	if user.Password.Plaintext != nil {
		ValidatePasswordPlaintext(v, *user.Password.Plaintext)
	}
	if user.Password.Hash == nil {
		panic("missing password hash for user")
	}
}
