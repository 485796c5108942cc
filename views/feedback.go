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

// joinWorkers bounds the Feedback->User lookup fan-out.
const joinWorkers = 4

// EnrichedFeedback is a feedback item joined with its author's details.
// Unmatched authors get fixed placeholder values.
type EnrichedFeedback struct {
	models.Feedback
	UserName  string `json:"userName"`
	UserPhone string `json:"userPhone"`
	Role      string `json:"role"`
}

// FeedbackView mirrors the feedbacks collection with the
// subscribe-then-refetch style and performs the user join on every refetch,
// so replies and author edits are always reflected.
type FeedbackView struct {
	gw     store.Gateway
	cancel func()

	mu        sync.Mutex
	feedbacks []EnrichedFeedback
}

func NewFeedbackView(gw store.Gateway) *FeedbackView {
	v := &FeedbackView{gw: gw}
	v.cancel = gw.Subscribe(store.Feedbacks, v.refetch)
	return v
}

func (v *FeedbackView) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *FeedbackView) refetch() {
	docs, err := v.gw.All(context.Background(), store.Feedbacks)
	if err != nil {
		logger.Error("Error fetching feedbacks", zap.Error(err))
		return
	}

	enriched := make([]EnrichedFeedback, len(docs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < joinWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				enriched[i] = v.enrich(models.FeedbackFromDoc(docs[i]))
			}
		}()
	}
	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	v.mu.Lock()
	v.feedbacks = enriched
	v.mu.Unlock()
}

// enrich joins one feedback item against the users collection by the auth
// identifier stored in userID.
func (v *FeedbackView) enrich(f models.Feedback) EnrichedFeedback {
	out := EnrichedFeedback{
		Feedback:  f,
		UserName:  "Unknown User",
		UserPhone: "N/A",
		Role:      "unknown",
	}
	if f.UserID == "" {
		return out
	}

	matches, err := v.gw.Find(context.Background(), store.Users, "uid", f.UserID)
	if err != nil {
		logger.Error("Error fetching user by UID",
			zap.String("uid", f.UserID), zap.Error(err))
		return out
	}
	if len(matches) == 0 {
		return out
	}

	u := models.UserFromDoc(matches[0])
	if u.Name != "" {
		out.UserName = u.Name
	}
	if u.PhoneNumber != "" {
		out.UserPhone = u.PhoneNumber
	}
	if u.Role != "" {
		out.Role = u.Role
	}
	return out
}

// List filters by author role. "All" disables the filter.
func (v *FeedbackView) List(role string) []EnrichedFeedback {
	v.mu.Lock()
	defer v.mu.Unlock()

	if role == FilterAll || role == "" {
		return append([]EnrichedFeedback{}, v.feedbacks...)
	}
	out := []EnrichedFeedback{}
	for _, f := range v.feedbacks {
		if strings.EqualFold(f.Role, role) {
			out = append(out, f)
		}
	}
	return out
}

// Reply stores the admin reply with its timestamp.
func (v *FeedbackView) Reply(ctx context.Context, id, replyText string) error {
	return v.gw.Update(ctx, store.Feedbacks, id, store.Document{
		"adminReply": replyText,
		"repliedAt":  time.Now().Format(time.RFC3339),
	})
}

func (v *FeedbackView) Delete(ctx context.Context, id string) error {
	return v.gw.Delete(ctx, store.Feedbacks, id)
}
