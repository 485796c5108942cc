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

type CropHandler struct {
	view     *views.CropsView
	gw       store.Gateway
	uploader forms.Uploader
}

func NewCropHandler(view *views.CropsView, gw store.Gateway, uploader forms.Uploader) *CropHandler {
	return &CropHandler{view: view, gw: gw, uploader: uploader}
}

func (h *CropHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		category = views.FilterAll
	}
	season := q.Get("season")
	if season == "" {
		season = views.FilterAll
	}
	RespondJSON(w, http.StatusOK, h.view.List(q.Get("search"), category, season))
}

func (h *CropHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "")
}

func (h *CropHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, mux.Vars(r)["id"])
}

func (h *CropHandler) submit(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		RespondError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := &forms.CropForm{}
	if id != "" {
		doc, err := h.gw.ByID(r.Context(), store.CropInfo, id)
		if err != nil {
			RespondError(w, "Error fetching crop", http.StatusInternalServerError)
			return
		}
		if doc == nil {
			RespondError(w, "Crop not found", http.StatusNotFound)
			return
		}
		// Edit drafts start from the stored crop, so fields the request
		// omits, the image URL included, survive the write.
		form.Seed(models.CropFromDoc(doc))
	}
	form.ID = id

	overlayFormValue(r, "name", &form.Name)
	overlayFormValue(r, "scientificName", &form.ScientificName)
	overlayFormValue(r, "category", &form.Category)
	overlayFormValue(r, "season", &form.Season)
	overlayFormValue(r, "duration", &form.Duration)
	overlayFormValue(r, "soilType", &form.SoilType)
	overlayFormValue(r, "waterRequirement", &form.WaterRequirement)
	overlayFormValue(r, "yieldAmount", &form.YieldAmount)
	overlayFormValue(r, "marketPrice", &form.MarketPrice)
	overlayFormValue(r, "url", &form.URL)
	overlayFormValue(r, "imageUrl", &form.Image)

	file, err := pendingFile(r, "image")
	if err != nil {
		RespondError(w, "Invalid image upload", http.StatusBadRequest)
		return
	}
	form.PendingImage = file

	crop, err := form.Submit(r.Context(), h.gw, h.uploader)
	if err != nil {
		if errors.Is(err, forms.ErrValidation) {
			RespondValidation(w, form.Errors)
			return
		}
		RespondError(w, "Error saving crop", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	RespondJSON(w, status, crop)
}

func (h *CropHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !deleteConfirmed(r) {
		RespondError(w, "Deletion requires confirmation", http.StatusBadRequest)
		return
	}
	if err := h.view.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		RespondError(w, "Failed to delete crop", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Crop deleted successfully"})
}
