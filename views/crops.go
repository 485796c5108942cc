package views

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aggroplatform/aggro-admin/logger"
	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
)

// FilterAll is the sentinel value that disables a categorical filter.
const FilterAll = "All"

// CropsView mirrors the cropInfo collection with the snapshot style: the
// subscription delivers changed documents directly and the view merges them
// locally instead of re-reading the collection.
type CropsView struct {
	gw     store.Gateway
	cancel func()

	mu    sync.Mutex
	crops map[string]models.CropInfo
	order []string
}

func NewCropsView(gw store.Gateway) *CropsView {
	v := &CropsView{gw: gw, crops: map[string]models.CropInfo{}}
	v.load()
	v.cancel = gw.SubscribeChanges(store.CropInfo, v.apply)
	return v
}

func (v *CropsView) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *CropsView) load() {
	docs, err := v.gw.All(context.Background(), store.CropInfo)
	if err != nil {
		logger.Error("Error fetching crops", zap.Error(err))
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.crops = map[string]models.CropInfo{}
	v.order = nil
	for _, doc := range docs {
		c := models.CropFromDoc(doc)
		v.crops[c.ID] = c
		v.order = append(v.order, c.ID)
	}
}

func (v *CropsView) apply(change store.Change) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch change.Op {
	case "delete":
		if _, ok := v.crops[change.ID]; !ok {
			return
		}
		delete(v.crops, change.ID)
		for i, id := range v.order {
			if id == change.ID {
				v.order = append(v.order[:i], v.order[i+1:]...)
				break
			}
		}
	default:
		if change.Doc == nil {
			return
		}
		c := models.CropFromDoc(change.Doc)
		if _, ok := v.crops[change.ID]; !ok {
			v.order = append(v.order, change.ID)
		}
		v.crops[change.ID] = c
	}
}

// MatchCrop combines the free-text search with the category and season
// filters. "All" disables a filter.
func MatchCrop(c models.CropInfo, search, category, season string) bool {
	if !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
		return false
	}
	if category != FilterAll && category != "" &&
		!strings.EqualFold(c.Category, category) {
		return false
	}
	if season != FilterAll && season != "" &&
		!strings.EqualFold(c.Season, season) {
		return false
	}
	return true
}

func (v *CropsView) List(search, category, season string) []models.CropInfo {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := []models.CropInfo{}
	for _, id := range v.order {
		c := v.crops[id]
		if MatchCrop(c, search, category, season) {
			out = append(out, c)
		}
	}
	return out
}

func (v *CropsView) Delete(ctx context.Context, id string) error {
	return v.gw.Delete(ctx, store.CropInfo, id)
}
