package views

import (
	"context"
	"strings"

	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
)

// UsersView lists farmer and expert accounts. The original admin screen
// fetches once per visit, so this view is one-shot rather than subscribed.
type UsersView struct {
	gw store.Gateway
}

func NewUsersView(gw store.Gateway) *UsersView {
	return &UsersView{gw: gw}
}

// MatchUser is the pure filter predicate: role must be farmer or expert and
// the name must contain the search text, case-insensitively.
func MatchUser(u models.User, search string) bool {
	role := models.NormalizeRole(u.Role)
	if role != "farmer" && role != "expert" {
		return false
	}
	return strings.Contains(strings.ToLower(u.Name), strings.ToLower(search))
}

func (v *UsersView) List(ctx context.Context, search string) ([]models.User, error) {
	docs, err := v.gw.All(ctx, store.Users)
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	for _, doc := range docs {
		u := models.UserFromDoc(doc)
		if MatchUser(u, search) {
			users = append(users, u)
		}
	}
	return users, nil
}

func (v *UsersView) Delete(ctx context.Context, id string) error {
	return v.gw.Delete(ctx, store.Users, id)
}
