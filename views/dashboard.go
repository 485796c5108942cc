package views

import (
	"context"

	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
)

// Summary is the dashboard's derived counts. Plain counts, no caching,
// recomputed on each call from one-shot reads.
type Summary struct {
	Farmers    int `json:"farmers"`
	Experts    int `json:"experts"`
	Schemes    int `json:"schemes"`
	Crops      int `json:"crops"`
	Complaints int `json:"complaints"`
}

type Dashboard struct {
	gw store.Gateway
}

func NewDashboard(gw store.Gateway) *Dashboard {
	return &Dashboard{gw: gw}
}

func (d *Dashboard) Summary(ctx context.Context) (Summary, error) {
	var s Summary

	users, err := d.gw.All(ctx, store.Users)
	if err != nil {
		return s, err
	}
	for _, doc := range users {
		switch models.NormalizeRole(models.AsString(doc["role"])) {
		case "farmer":
			s.Farmers++
		case "expert":
			s.Experts++
		}
	}

	schemes, err := d.gw.All(ctx, store.GovtSchemes)
	if err != nil {
		return s, err
	}
	s.Schemes = len(schemes)

	crops, err := d.gw.All(ctx, store.CropInfo)
	if err != nil {
		return s, err
	}
	s.Crops = len(crops)

	feedbacks, err := d.gw.All(ctx, store.Feedbacks)
	if err != nil {
		return s, err
	}
	s.Complaints = len(feedbacks)

	return s, nil
}
