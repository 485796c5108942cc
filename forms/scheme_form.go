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

// SchemeForm is the add/edit government scheme draft.
type SchemeForm struct {
	ID          string
	Name        string
	Description string
	StartDate   string
	EndDate     string
	URL         string
	Region      string
	Image       string // already-uploaded URL, kept unless a new upload succeeds

	PendingImage *PendingFile
	Errors       Errors
}

// Seed pre-fills the draft from an existing scheme for edit mode.
func (f *SchemeForm) Seed(s models.GovtScheme) {
	copier.Copy(f, &s)
}

// Validate runs synchronously and returns per-field messages. An empty map
// means the draft may be submitted.
func (f *SchemeForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Scheme name is required."
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Description is required."
	}
	if f.StartDate == "" {
		errs["startDate"] = "Start date is required."
	}
	if f.EndDate == "" {
		errs["endDate"] = "End date is required."
	}
	if f.StartDate != "" && f.EndDate != "" {
		start, okStart := models.ParseFieldTime(f.StartDate)
		end, okEnd := models.ParseFieldTime(f.EndDate)
		if okStart && okEnd && end.Before(start) {
			errs["endDate"] = "End date must be after start date."
		}
	}
	if f.URL == "" {
		errs["url"] = "URL is required."
	} else if !validURL(f.URL) {
		errs["url"] = "Enter a valid URL."
	}
	if strings.TrimSpace(f.Region) == "" {
		errs["region"] = "Region/Province is required."
	}
	if f.PendingImage == nil && f.Image == "" {
		errs["image"] = "You must upload an image."
	}

	return errs
}

// Submit validates, uploads the staged image if any, and writes through the
// gateway: update when the draft carries an id, create otherwise. On any
// failure the draft keeps the user's input.
func (f *SchemeForm) Submit(ctx context.Context, gw store.Gateway, up Uploader) (models.GovtScheme, error) {
	if f.Errors = f.Validate(); len(f.Errors) > 0 {
		return models.GovtScheme{}, ErrValidation
	}

	imageURL := f.Image
	if f.PendingImage != nil {
		uploaded, err := up.Upload(ctx, f.PendingImage.Name, f.PendingImage.Data)
		if err != nil {
			// Prior image URL stays intact.
			return models.GovtScheme{}, err
		}
		imageURL = uploaded
	}

	scheme := models.GovtScheme{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		URL:         f.URL,
		Region:      f.Region,
		Image:       imageURL,
	}
	doc := scheme.ToDoc()
	doc["updatedAt"] = time.Now().Format(time.RFC3339)

	if f.ID != "" {
		if err := gw.Update(ctx, store.GovtSchemes, f.ID, doc); err != nil {
			return models.GovtScheme{}, err
		}
	} else {
		id, err := gw.Create(ctx, store.GovtSchemes, doc)
		if err != nil {
			return models.GovtScheme{}, err
		}
		if id == "" {
			return models.GovtScheme{}, fmt.Errorf("store returned no id for new scheme")
		}
		scheme.ID = id
	}

	f.Image = imageURL
	f.PendingImage = nil
	return scheme, nil
}
