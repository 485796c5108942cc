package forms

import (
	"context"
	"net/mail"
	"strings"

	"github.com/aggroplatform/aggro-admin/auth"
	"github.com/aggroplatform/aggro-admin/store"
)

// AdminForm is the superadmin-only add-admin draft. Submitting registers a
// full auth identity, not just a profile row.
type AdminForm struct {
	Name     string
	Email    string
	Role     string
	Password string

	Errors Errors
}

func (f *AdminForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required."
	}
	if f.Email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs["email"] = "Enter a valid email address."
	}
	if strings.TrimSpace(f.Role) == "" {
		errs["role"] = "Role is required."
	}
	if f.Password == "" {
		errs["password"] = "Password is required."
	}

	return errs
}

func (f *AdminForm) Submit(ctx context.Context, mgr *auth.Manager) (auth.Principal, error) {
	if f.Errors = f.Validate(); len(f.Errors) > 0 {
		return auth.Principal{}, ErrValidation
	}

	return mgr.CreateAccount(ctx, f.Email, f.Password, store.Document{
		"name":   f.Name,
		"role":   f.Role,
		"status": "Active",
	})
}
