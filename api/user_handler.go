package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aggroplatform/aggro-admin/forms"
	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
	"github.com/aggroplatform/aggro-admin/views"
)

// UserRequest represents the add/edit user payload
type UserRequest struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

type UserHandler struct {
	view *views.UsersView
	gw   store.Gateway
}

func NewUserHandler(view *views.UsersView, gw store.Gateway) *UserHandler {
	return &UserHandler{view: view, gw: gw}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.view.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		RespondError(w, "Error fetching users", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form := forms.NewUserForm()
	h.fill(form, req)

	user, err := form.Submit(r.Context(), h.gw)
	if err != nil {
		if errors.Is(err, forms.ErrValidation) {
			RespondValidation(w, form.Errors)
			return
		}
		RespondError(w, "Error saving user", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	doc, err := h.gw.ByID(r.Context(), store.Users, id)
	if err != nil {
		RespondError(w, "Error fetching user", http.StatusInternalServerError)
		return
	}
	if doc == nil {
		RespondError(w, "User not found", http.StatusNotFound)
		return
	}

	// Edit drafts start from the stored user; request fields overlay it.
	form := &forms.UserForm{}
	form.Seed(models.UserFromDoc(doc))
	form.ID = id
	h.fill(form, req)

	user, err := form.Submit(r.Context(), h.gw)
	if err != nil {
		if errors.Is(err, forms.ErrValidation) {
			RespondValidation(w, form.Errors)
			return
		}
		RespondError(w, "Error saving user", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !deleteConfirmed(r) {
		RespondError(w, "Deletion requires confirmation", http.StatusBadRequest)
		return
	}
	if err := h.view.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		RespondError(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// fill overlays only the fields the request actually carries, so a partial
// edit keeps the seeded values.
func (h *UserHandler) fill(form *forms.UserForm, req UserRequest) {
	if req.Name != "" {
		form.Name = req.Name
	}
	if req.Role != "" {
		form.Role = req.Role
	}
	if req.PhoneNumber != "" {
		form.PhoneNumber = req.PhoneNumber
	}
	if req.Location != "" {
		form.Location = req.Location
	}
	if req.Status != "" {
		form.Status = req.Status
	}
}
