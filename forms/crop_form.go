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

// CropForm is the add/edit crop reference draft.
type CropForm struct {
	ID               string
	Name             string
	ScientificName   string
	Category         string
	Season           string
	Duration         string
	SoilType         string
	WaterRequirement string
	YieldAmount      string
	MarketPrice      string
	URL              string
	Image            string

	PendingImage *PendingFile
	Errors       Errors
}

func (f *CropForm) Seed(c models.CropInfo) {
	copier.Copy(f, &c)
}

func (f *CropForm) Validate() Errors {
	errs := Errors{}

	required := []struct {
		value, field, message string
	}{
		{f.Name, "name", "Crop name is required."},
		{f.ScientificName, "scientificName", "Scientific name is required."},
		{f.Category, "category", "Category is required."},
		{f.Season, "season", "Season is required."},
		{f.Duration, "duration", "Duration is required."},
		{f.SoilType, "soilType", "Soil type is required."},
		{f.WaterRequirement, "waterRequirement", "Water requirement is required."},
		{f.YieldAmount, "yieldAmount", "Yield amount is required."},
		{f.MarketPrice, "marketPrice", "Market price is required."},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.message
		}
	}

	if f.URL == "" {
		errs["url"] = "URL is required."
	} else if !validURL(f.URL) {
		errs["url"] = "Please enter a valid URL."
	}

	// The image is mandatory when creating; edits may keep the stored one.
	if f.PendingImage == nil && f.Image == "" && f.ID == "" {
		errs["image"] = "You must upload an image."
	}

	return errs
}

func (f *CropForm) Submit(ctx context.Context, gw store.Gateway, up Uploader) (models.CropInfo, error) {
	if f.Errors = f.Validate(); len(f.Errors) > 0 {
		return models.CropInfo{}, ErrValidation
	}

	imageURL := f.Image
	if f.PendingImage != nil {
		uploaded, err := up.Upload(ctx, f.PendingImage.Name, f.PendingImage.Data)
		if err != nil {
			return models.CropInfo{}, err
		}
		imageURL = uploaded
	}

	crop := models.CropInfo{
		ID:               f.ID,
		Name:             f.Name,
		ScientificName:   f.ScientificName,
		Category:         f.Category,
		Season:           f.Season,
		Duration:         f.Duration,
		SoilType:         f.SoilType,
		WaterRequirement: f.WaterRequirement,
		YieldAmount:      f.YieldAmount,
		MarketPrice:      f.MarketPrice,
		URL:              f.URL,
		Image:            imageURL,
	}
	doc := crop.ToDoc()
	doc["updatedAt"] = time.Now().Format(time.RFC3339)

	if f.ID != "" {
		if err := gw.Update(ctx, store.CropInfo, f.ID, doc); err != nil {
			return models.CropInfo{}, err
		}
	} else {
		id, err := gw.Create(ctx, store.CropInfo, doc)
		if err != nil {
			return models.CropInfo{}, err
		}
		if id == "" {
			return models.CropInfo{}, fmt.Errorf("store returned no id for new crop")
		}
		crop.ID = id
	}

	f.Image = imageURL
	f.PendingImage = nil
	return crop, nil
}
