package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/aggroplatform/aggro-admin/views"
)

type ReplyRequest struct {
	Reply string `json:"reply"`
}

type FeedbackHandler struct {
	view *views.FeedbackView
}

func NewFeedbackHandler(view *views.FeedbackView) *FeedbackHandler {
	return &FeedbackHandler{view: view}
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		role = views.FilterAll
	}
	RespondJSON(w, http.StatusOK, h.view.List(role))
}

func (h *FeedbackHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Reply) == "" {
		RespondError(w, "Reply text is required", http.StatusBadRequest)
		return
	}

	if err := h.view.Reply(r.Context(), mux.Vars(r)["id"], req.Reply); err != nil {
		RespondError(w, "Failed to save reply", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Reply sent successfully"})
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !deleteConfirmed(r) {
		RespondError(w, "Deletion requires confirmation", http.StatusBadRequest)
		return
	}
	if err := h.view.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		RespondError(w, "Failed to delete feedback", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Feedback deleted successfully"})
}
