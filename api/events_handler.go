package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/aggroplatform/aggro-admin/logger"
	"github.com/aggroplatform/aggro-admin/store"
)

// watchable collections. The credentials collection never leaves the
// auth layer.
var watchable = map[string]bool{
	store.Users:       true,
	store.GovtSchemes: true,
	store.CropInfo:    true,
	store.Feedbacks:   true,
}

type EventsHandler struct {
	gw store.Gateway
}

func NewEventsHandler(gw store.Gateway) *EventsHandler {
	return &EventsHandler{gw: gw}
}

// Stream pushes collection changes as server-sent events until the
// client disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	if !watchable[collection] {
		RespondError(w, "Unknown collection", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		RespondError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Buffered so a slow client drops events instead of blocking the
	// gateway's notifier goroutine.
	events := make(chan store.Change, 16)
	cancel := h.gw.SubscribeChanges(collection, func(c store.Change) {
		select {
		case events <- c:
		default:
			logger.Warn("event stream backlogged, dropping change",
				zap.String("collection", collection), zap.String("id", c.ID))
		}
	})
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case change := <-events:
			payload, err := json.Marshal(change)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", change.Op, payload)
			flusher.Flush()
		}
	}
}
