package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aggroplatform/aggro-admin/auth"
	"github.com/aggroplatform/aggro-admin/forms"
	"github.com/aggroplatform/aggro-admin/store"
	"github.com/aggroplatform/aggro-admin/upload"
	"github.com/aggroplatform/aggro-admin/views"
)

type SettingsHandler struct {
	view     *views.AdminsView
	sessions *auth.Manager
	uploader forms.Uploader
}

func NewSettingsHandler(view *views.AdminsView, sessions *auth.Manager, uploader forms.Uploader) *SettingsHandler {
	return &SettingsHandler{view: view, sessions: sessions, uploader: uploader}
}

func (h *SettingsHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, err := GetUserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.view.Profile(r.Context(), uid)
	if err != nil {
		RespondError(w, "Error fetching profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		RespondError(w, "User data not found", http.StatusNotFound)
		return
	}
	RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile accepts a multipart form so the avatar can be swapped in
// the same request as the text fields.
func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, err := GetUserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		RespondError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	fields := store.Document{}
	for _, key := range []string{"name", "phoneNumber", "location"} {
		if v := r.FormValue(key); v != "" {
			fields[key] = v
		}
	}

	file, err := pendingFile(r, "image")
	if err != nil {
		RespondError(w, "Invalid image upload", http.StatusBadRequest)
		return
	}
	if file != nil {
		url, err := h.uploader.Upload(r.Context(), file.Name, file.Data)
		if err != nil {
			var upErr *upload.UploadError
			if errors.As(err, &upErr) {
				RespondError(w, "Image upload failed", http.StatusBadGateway)
				return
			}
			RespondError(w, "Image upload failed", http.StatusInternalServerError)
			return
		}
		fields["image"] = url
	}

	if len(fields) == 0 {
		RespondError(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	if err := h.view.UpdateProfile(r.Context(), uid, fields); err != nil {
		RespondError(w, "Error updating profile", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

// requireSuperAdmin resolves the caller's stored role. Only Super Admins
// manage the admin roster.
func (h *SettingsHandler) requireSuperAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, err := GetUserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return "", false
	}

	profile, err := h.view.Profile(r.Context(), uid)
	if err != nil {
		RespondError(w, "Error fetching profile", http.StatusInternalServerError)
		return "", false
	}
	if profile == nil || !views.CanManageAdmins(profile.Role) {
		RespondError(w, "Super Admin access required", http.StatusForbidden)
		return "", false
	}
	return uid, true
}

func (h *SettingsHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSuperAdmin(w, r); !ok {
		return
	}

	admins, err := h.view.ListAdmins(r.Context())
	if err != nil {
		RespondError(w, "Error fetching admins", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, admins)
}

func (h *SettingsHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSuperAdmin(w, r); !ok {
		return
	}

	var form forms.AdminForm
	if err := decodeJSON(r, &form); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	principal, err := form.Submit(r.Context(), h.sessions)
	if err != nil {
		if errors.Is(err, forms.ErrValidation) {
			RespondValidation(w, form.Errors)
			return
		}
		if errors.Is(err, auth.ErrEmailInUse) {
			RespondError(w, "Email is already registered", http.StatusConflict)
			return
		}
		RespondError(w, "Error creating admin", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusCreated, principal)
}

func (h *SettingsHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requireSuperAdmin(w, r)
	if !ok {
		return
	}
	if !deleteConfirmed(r) {
		RespondError(w, "Deletion requires confirmation", http.StatusBadRequest)
		return
	}

	if err := h.view.DeleteUser(r.Context(), mux.Vars(r)["id"], uid); err != nil {
		if errors.Is(err, views.ErrSelfDelete) {
			RespondError(w, "You cannot delete your own account", http.StatusBadRequest)
			return
		}
		RespondError(w, "Failed to delete admin", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Admin deleted successfully"})
}
