package data

import (
	"time"

	"github.com/emzola/librarium/internal/validator"
)

// Token scopes. A token is only ever valid for the single scope it was
// created with.
const (
	ScopeActivation     = "activation"
	ScopeAuthentication = "authentication"
	ScopePasswordReset  = "password-reset"
)

// Token defines a stateful bearer token. Only the SHA-256 hash is stored;
// the plaintext is returned to the client once at creation time.
type Token struct {
	Plaintext string    `json:"token"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	Expiry    time.Time `json:"expiry"`
	Scope     string    `json:"-"`
}

// ValidateTokenPlaintext checks that a client-provided token has the
// expected shape before hitting the database.
func ValidateTokenPlaintext(v *validator.Validator, tokenPlaintext string) {
	v.Check(tokenPlaintext != "", "token", "must be provided")
	v.Check(len(tokenPlaintext) == 26, "token", "must be 26 bytes long")
}
