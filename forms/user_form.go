package forms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"

	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
)

// UserForm is the add/edit draft for farmer and expert accounts.
type UserForm struct {
	ID          string
	Name        string
	Role        string
	PhoneNumber string
	Location    string
	Status      string

	Errors Errors
}

// NewUserForm returns a create-mode draft with the defaults the add-user
// dialog starts from.
func NewUserForm() *UserForm {
	return &UserForm{Role: "farmer", Status: "Active"}
}

func (f *UserForm) Seed(u models.User) {
	copier.Copy(f, &u)
}

func (f *UserForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required."
	}
	if strings.TrimSpace(f.PhoneNumber) == "" {
		errs["phoneNumber"] = "Phone number is required."
	} else if !models.PhoneRE.MatchString(f.PhoneNumber) {
		errs["phoneNumber"] = "Phone number must be 10-15 digits, optional '+' at start."
	}
	if strings.TrimSpace(f.Location) == "" {
		errs["location"] = "Location is required."
	}

	return errs
}

func (f *UserForm) Submit(ctx context.Context, gw store.Gateway) (models.User, error) {
	if f.Errors = f.Validate(); len(f.Errors) > 0 {
		return models.User{}, ErrValidation
	}

	user := models.User{
		ID:          f.ID,
		Name:        f.Name,
		Role:        f.Role,
		PhoneNumber: f.PhoneNumber,
		Location:    f.Location,
		Status:      f.Status,
	}
	if user.Status == "" {
		user.Status = "Active"
	}

	if f.ID != "" {
		if err := gw.Update(ctx, store.Users, f.ID, user.ToDoc()); err != nil {
			return models.User{}, err
		}
	} else {
		user.CreatedAt = time.Now().Format(time.RFC3339)
		id, err := gw.Create(ctx, store.Users, user.ToDoc())
		if err != nil {
			return models.User{}, err
		}
		if id == "" {
			return models.User{}, fmt.Errorf("store returned no id for new user")
		}
		user.ID = id
	}

	return user, nil
}
