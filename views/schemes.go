package views

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aggroplatform/aggro-admin/logger"
	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
)

// SchemeWithStatus carries the derived activity fields computed at read
// time. Nothing here is ever written back.
type SchemeWithStatus struct {
	models.GovtScheme
	IsActive bool   `json:"isActive"`
	Status   string `json:"status"`
}

// SchemesView mirrors the govtSchemes collection with the
// subscribe-then-refetch style: every change notification triggers a full
// re-read, so derived fields are always computed over fresh documents.
type SchemesView struct {
	gw     store.Gateway
	now    func() time.Time
	cancel func()

	mu      sync.Mutex
	schemes []models.GovtScheme
}

func NewSchemesView(gw store.Gateway) *SchemesView {
	v := &SchemesView{gw: gw, now: time.Now}
	v.cancel = gw.Subscribe(store.GovtSchemes, v.refetch)
	return v
}

// Close releases the subscription. It must run on every teardown path.
func (v *SchemesView) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *SchemesView) refetch() {
	docs, err := v.gw.All(context.Background(), store.GovtSchemes)
	if err != nil {
		logger.Error("Error fetching schemes", zap.Error(err))
		return
	}

	schemes := make([]models.GovtScheme, 0, len(docs))
	for _, doc := range docs {
		schemes = append(schemes, models.SchemeFromDoc(doc))
	}

	v.mu.Lock()
	v.schemes = schemes
	v.mu.Unlock()
}

// List filters by case-insensitive name substring and stamps the derived
// status for the current instant.
func (v *SchemesView) List(search string) []SchemeWithStatus {
	now := v.now()

	v.mu.Lock()
	defer v.mu.Unlock()

	out := []SchemeWithStatus{}
	for _, s := range v.schemes {
		if !strings.Contains(strings.ToLower(s.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, SchemeWithStatus{
			GovtScheme: s,
			IsActive:   s.ActiveAt(now),
			Status:     s.StatusAt(now),
		})
	}
	return out
}

// Totals recomputes total and active counts on every call.
func (v *SchemesView) Totals() (total, active int) {
	now := v.now()

	v.mu.Lock()
	defer v.mu.Unlock()

	for _, s := range v.schemes {
		total++
		if s.ActiveAt(now) {
			active++
		}
	}
	return total, active
}

func (v *SchemesView) Delete(ctx context.Context, id string) error {
	return v.gw.Delete(ctx, store.GovtSchemes, id)
}
