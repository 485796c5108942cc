package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aggroplatform/aggro-admin/store"
)

func TestCropFromDocLegacyYieldKey(t *testing.T) {
	legacy := CropFromDoc(store.Document{"name": "Wheat", "yield": "3 t/ha"})
	assert.Equal(t, "3 t/ha", legacy.YieldAmount)

	// The canonical key wins when both are present.
	both := CropFromDoc(store.Document{"yieldAmount": "4 t/ha", "yield": "3 t/ha"})
	assert.Equal(t, "4 t/ha", both.YieldAmount)

	// Writes only ever emit the canonical key.
	doc := both.ToDoc()
	assert.Equal(t, "4 t/ha", doc["yieldAmount"])
	assert.NotContains(t, doc, "yield")
}

func TestFeedbackFromDocDefaults(t *testing.T) {
	f := FeedbackFromDoc(store.Document{"userID": "u1"})
	assert.Equal(t, "No feedback provided", f.Content)
	assert.Equal(t, 0, f.Rating)

	assert.Equal(t, 5, FeedbackFromDoc(store.Document{"rating": 9}).Rating)
	assert.Equal(t, 0, FeedbackFromDoc(store.Document{"rating": -2}).Rating)
	assert.Equal(t, 3, FeedbackFromDoc(store.Document{"rating": float64(3)}).Rating)
}

func TestUserFromDocDefaults(t *testing.T) {
	u := UserFromDoc(store.Document{"username": "Asha", "role": "farmer"})
	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, "Inactive", u.Status)

	named := UserFromDoc(store.Document{"name": "Ravi", "username": "ignored", "status": "Active"})
	assert.Equal(t, "Ravi", named.Name)
	assert.Equal(t, "Active", named.Status)
}
