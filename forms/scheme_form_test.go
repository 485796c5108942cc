package forms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
)

type fakeUploader struct {
	calls int
	url   string
	err   error
}

func (u *fakeUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

func validSchemeForm() *SchemeForm {
	return &SchemeForm{
		Name:        "Crop Insurance",
		Description: "Subsidized crop insurance",
		StartDate:   "2025-01-01",
		EndDate:     "2025-12-31",
		URL:         "https://gov.example.com/insurance",
		Region:      "Maharashtra",
		Image:       "https://cdn.example.com/old.png",
	}
}

func TestSchemeFormValidate(t *testing.T) {
	errs := (&SchemeForm{}).Validate()
	assert.Equal(t, "Scheme name is required.", errs["name"])
	assert.Equal(t, "Description is required.", errs["description"])
	assert.Equal(t, "Start date is required.", errs["startDate"])
	assert.Equal(t, "End date is required.", errs["endDate"])
	assert.Equal(t, "URL is required.", errs["url"])
	assert.Equal(t, "Region/Province is required.", errs["region"])
	assert.Equal(t, "You must upload an image.", errs["image"])

	f := validSchemeForm()
	assert.Empty(t, f.Validate())

	f.URL = "not a url"
	assert.Equal(t, "Enter a valid URL.", f.Validate()["url"])
}

func TestSchemeFormEndBeforeStart(t *testing.T) {
	gw := store.NewMemoryGateway()
	up := &fakeUploader{url: "https://cdn.example.com/new.png"}

	f := validSchemeForm()
	f.StartDate = "2025-12-31"
	f.EndDate = "2025-01-01"

	_, err := f.Submit(context.Background(), gw, up)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "End date must be after start date.", f.Errors["endDate"])

	// A rejected draft writes nothing and uploads nothing.
	docs, err := gw.All(context.Background(), store.GovtSchemes)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Equal(t, 0, up.calls)
}

func TestSchemeFormSubmitCreate(t *testing.T) {
	gw := store.NewMemoryGateway()
	up := &fakeUploader{url: "https://cdn.example.com/new.png"}

	f := validSchemeForm()
	f.Image = ""
	f.PendingImage = &PendingFile{Name: "scheme.png", Data: strings.NewReader("img")}

	scheme, err := f.Submit(context.Background(), gw, up)
	require.NoError(t, err)
	require.NotEmpty(t, scheme.ID)
	assert.Equal(t, 1, up.calls, "one staged image means exactly one upload")
	assert.Equal(t, "https://cdn.example.com/new.png", scheme.Image)
	assert.Nil(t, f.PendingImage, "staged file is consumed on success")

	doc, err := gw.ByID(context.Background(), store.GovtSchemes, scheme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crop Insurance", doc["name"])
	assert.Equal(t, "https://cdn.example.com/new.png", doc["image"])
}

func TestSchemeFormSubmitEditWithoutNewImage(t *testing.T) {
	gw := store.NewMemoryGateway()
	up := &fakeUploader{url: "https://cdn.example.com/unused.png"}
	ctx := context.Background()

	id, err := gw.Create(ctx, store.GovtSchemes, validSchemeForm().toTestDoc())
	require.NoError(t, err)

	f := validSchemeForm()
	f.ID = id
	f.Name = "Crop Insurance v2"

	scheme, err := f.Submit(ctx, gw, up)
	require.NoError(t, err)
	assert.Equal(t, 0, up.calls, "no staged image means no upload call")
	assert.Equal(t, "https://cdn.example.com/old.png", scheme.Image, "stored URL carries over")

	doc, err := gw.ByID(ctx, store.GovtSchemes, id)
	require.NoError(t, err)
	assert.Equal(t, "Crop Insurance v2", doc["name"])
}

func TestSchemeFormSeed(t *testing.T) {
	f := &SchemeForm{}
	f.Seed(models.GovtScheme{
		ID:      "s1",
		Name:    "Crop Insurance",
		EndDate: "2025-12-31",
		Region:  "Maharashtra",
		Image:   "https://cdn.example.com/old.png",
	})

	assert.Equal(t, "s1", f.ID)
	assert.Equal(t, "Crop Insurance", f.Name)
	assert.Equal(t, "2025-12-31", f.EndDate)
	assert.Equal(t, "Maharashtra", f.Region)
	assert.Equal(t, "https://cdn.example.com/old.png", f.Image)
}

func TestSchemeFormSubmitEditReplacesImage(t *testing.T) {
	gw := store.NewMemoryGateway()
	up := &fakeUploader{url: "https://cdn.example.com/new.png"}
	ctx := context.Background()

	id, err := gw.Create(ctx, store.GovtSchemes, validSchemeForm().toTestDoc())
	require.NoError(t, err)

	f := validSchemeForm()
	f.ID = id
	f.PendingImage = &PendingFile{Name: "new.png", Data: strings.NewReader("img")}

	scheme, err := f.Submit(ctx, gw, up)
	require.NoError(t, err)
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, "https://cdn.example.com/new.png", scheme.Image)

	doc, err := gw.ByID(ctx, store.GovtSchemes, id)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/new.png", doc["image"])
}

func TestSchemeFormUploadFailureKeepsDraft(t *testing.T) {
	gw := store.NewMemoryGateway()
	up := &fakeUploader{err: fmt.Errorf("host down")}

	f := validSchemeForm()
	f.PendingImage = &PendingFile{Name: "scheme.png", Data: strings.NewReader("img")}

	_, err := f.Submit(context.Background(), gw, up)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrValidation))

	// Nothing was written and the draft survives for a retry.
	docs, err := gw.All(context.Background(), store.GovtSchemes)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Equal(t, "https://cdn.example.com/old.png", f.Image, "prior URL is not clobbered")
	assert.NotNil(t, f.PendingImage)
	assert.Equal(t, "Crop Insurance", f.Name)
}

// toTestDoc builds the stored shape without going through Submit.
func (f *SchemeForm) toTestDoc() store.Document {
	return store.Document{
		"name":        f.Name,
		"description": f.Description,
		"startDate":   f.StartDate,
		"endDate":     f.EndDate,
		"url":         f.URL,
		"region":      f.Region,
		"image":       f.Image,
	}
}
