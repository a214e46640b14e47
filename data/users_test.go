package data

import (
	"testing"

	"github.com/emzola/librarium/internal/validator"
)

func TestPasswordSetAndMatches(t *testing.T) {
	var p password
	if err := p.Set("pa55word1234"); err != nil {
		t.Fatal(err)
	}
	match, err := p.Matches("pa55word1234")
	if err != nil {
		t.Fatal(err)
	}
	if !match {
		t.Error("expected password to match")
	}
	match, err = p.Matches("wrong-password")
	if err != nil {
		t.Fatal(err)
	}
	if match {
		t.Error("expected password not to match")
	}
}

func TestValidateUserRole(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		valid bool
	}{
		{"admin role", RoleAdmin, true},
		{"user role", RoleUser, true},
		{"unknown role", "Librarian", false},
		{"empty role", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateRole(v, tt.role)
			if v.Valid() != tt.valid {
				t.Errorf("role %q: expected valid=%t; got errors %v", tt.role, tt.valid, v.Errors)
			}
		})
	}
}

func TestAnonymousUser(t *testing.T) {
	if !AnonymousUser.IsAnonymous() {
		t.Error("expected AnonymousUser to be anonymous")
	}
	u := &User{Role: RoleAdmin}
	if u.IsAnonymous() {
		t.Error("expected a regular user not to be anonymous")
	}
	if !u.IsAdmin() {
		t.Error("expected Admin role to be reported as admin")
	}
}
