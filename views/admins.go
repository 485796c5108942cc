package views

import (
	"context"
	"errors"

	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
)

// ErrSelfDelete guards the one referential rule on accounts: the currently
// authenticated account cannot delete itself.
var ErrSelfDelete = errors.New("cannot delete the currently signed-in account")

// AdminsView backs the settings screen: the admin profile and the
// superadmin-only admin roster.
type AdminsView struct {
	gw store.Gateway
}

func NewAdminsView(gw store.Gateway) *AdminsView {
	return &AdminsView{gw: gw}
}

// CanManageAdmins gates the admin-management panel to superadmins. The role
// comparison normalizes case and whitespace.
func CanManageAdmins(role string) bool {
	return models.IsSuperAdmin(role)
}

func (v *AdminsView) ListAdmins(ctx context.Context) ([]models.User, error) {
	docs, err := v.gw.All(ctx, store.Users)
	if err != nil {
		return nil, err
	}

	admins := []models.User{}
	for _, doc := range docs {
		u := models.UserFromDoc(doc)
		if models.IsAdminRole(u.Role) {
			admins = append(admins, u)
		}
	}
	return admins, nil
}

// Profile returns the signed-in admin's own profile document, nil when it
// does not exist.
func (v *AdminsView) Profile(ctx context.Context, uid string) (*models.User, error) {
	doc, err := v.gw.ByID(ctx, store.Users, uid)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	u := models.UserFromDoc(doc)
	return &u, nil
}

// UpdateProfile merges the edited fields into the profile document.
func (v *AdminsView) UpdateProfile(ctx context.Context, uid string, fields store.Document) error {
	return v.gw.Update(ctx, store.Users, uid, fields)
}

// DeleteUser removes an account. Self-service delete is not exposed.
func (v *AdminsView) DeleteUser(ctx context.Context, id, currentUID string) error {
	if id == currentUID {
		return ErrSelfDelete
	}
	return v.gw.Delete(ctx, store.Users, id)
}
