package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aggroplatform/aggro-admin/forms"
	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
	"github.com/aggroplatform/aggro-admin/views"
)

type SchemeHandler struct {
	view     *views.SchemesView
	gw       store.Gateway
	uploader forms.Uploader
}

func NewSchemeHandler(view *views.SchemesView, gw store.Gateway, uploader forms.Uploader) *SchemeHandler {
	return &SchemeHandler{view: view, gw: gw, uploader: uploader}
}

func (h *SchemeHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.view.List(r.URL.Query().Get("search")))
}

func (h *SchemeHandler) Totals(w http.ResponseWriter, r *http.Request) {
	total, active := h.view.Totals()
	RespondJSON(w, http.StatusOK, map[string]int{"total": total, "active": active})
}

func (h *SchemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "")
}

func (h *SchemeHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, mux.Vars(r)["id"])
}

func (h *SchemeHandler) submit(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		RespondError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := &forms.SchemeForm{}
	if id != "" {
		doc, err := h.gw.ByID(r.Context(), store.GovtSchemes, id)
		if err != nil {
			RespondError(w, "Error fetching scheme", http.StatusInternalServerError)
			return
		}
		if doc == nil {
			RespondError(w, "Scheme not found", http.StatusNotFound)
			return
		}
		// Edit drafts start from the stored scheme; omitted fields keep
		// their stored values.
		form.Seed(models.SchemeFromDoc(doc))
	}
	form.ID = id

	overlayFormValue(r, "name", &form.Name)
	overlayFormValue(r, "description", &form.Description)
	overlayFormValue(r, "startDate", &form.StartDate)
	overlayFormValue(r, "endDate", &form.EndDate)
	overlayFormValue(r, "url", &form.URL)
	overlayFormValue(r, "region", &form.Region)
	overlayFormValue(r, "imageUrl", &form.Image)

	file, err := pendingFile(r, "image")
	if err != nil {
		RespondError(w, "Invalid image upload", http.StatusBadRequest)
		return
	}
	form.PendingImage = file

	scheme, err := form.Submit(r.Context(), h.gw, h.uploader)
	if err != nil {
		if errors.Is(err, forms.ErrValidation) {
			RespondValidation(w, form.Errors)
			return
		}
		RespondError(w, "Error saving scheme", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	RespondJSON(w, status, scheme)
}

func (h *SchemeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !deleteConfirmed(r) {
		RespondError(w, "Deletion requires confirmation", http.StatusBadRequest)
		return
	}
	if err := h.view.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		RespondError(w, "Failed to delete scheme", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Scheme deleted successfully"})
}
