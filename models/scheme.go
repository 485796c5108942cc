package models

import (
	"time"

	"github.com/aggroplatform/aggro-admin/store"
)

// GovtScheme is one government scheme listing. Whether a scheme is active is
// derived from its end date on every read and never persisted.
type GovtScheme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	URL         string `json:"url"`
	Region      string `json:"region"`
	Image       string `json:"image,omitempty"`
}

func SchemeFromDoc(doc store.Document) GovtScheme {
	return GovtScheme{
		ID:          AsString(doc["id"]),
		Name:        AsString(doc["name"]),
		Description: AsString(doc["description"]),
		StartDate:   TimeField(doc["startDate"]),
		EndDate:     TimeField(doc["endDate"]),
		URL:         AsString(doc["url"]),
		Region:      AsString(doc["region"]),
		Image:       AsString(doc["image"]),
	}
}

// ActiveAt reports whether the scheme is active at the given instant:
// endDate >= now. An unparseable end date counts as inactive.
func (s GovtScheme) ActiveAt(now time.Time) bool {
	end, ok := ParseFieldTime(s.EndDate)
	if !ok {
		return false
	}
	return !end.Before(now)
}

// StatusAt renders the derived badge text.
func (s GovtScheme) StatusAt(now time.Time) string {
	if s.ActiveAt(now) {
		return "Active"
	}
	return "Non-Active"
}

func (s GovtScheme) ToDoc() store.Document {
	return store.Document{
		"name":        s.Name,
		"description": s.Description,
		"startDate":   s.StartDate,
		"endDate":     s.EndDate,
		"url":         s.URL,
		"region":      s.Region,
		"image":       s.Image,
	}
}
