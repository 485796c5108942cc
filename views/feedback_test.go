package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aggroplatform/aggro-admin/store"
)

func seedUser(t *testing.T, gw store.Gateway, uid, name, phone, role string) {
	t.Helper()
	_, err := gw.Create(context.Background(), store.Users, store.Document{
		"uid":         uid,
		"name":        name,
		"phoneNumber": phone,
		"role":        role,
	})
	require.NoError(t, err)
}

func TestFeedbackViewJoin(t *testing.T) {
	gw := store.NewMemoryGateway()
	ctx := context.Background()

	seedUser(t, gw, "u1", "Asha", "1234567890", "farmer")
	_, err := gw.Create(ctx, store.Feedbacks, store.Document{
		"userID":  "u1",
		"content": "Great schemes",
		"rating":  5,
	})
	require.NoError(t, err)

	v := NewFeedbackView(gw)
	defer v.Close()

	items := v.List(FilterAll)
	require.Len(t, items, 1)
	assert.Equal(t, "Asha", items[0].UserName)
	assert.Equal(t, "1234567890", items[0].UserPhone)
	assert.Equal(t, "farmer", items[0].Role)
	assert.Equal(t, "Great schemes", items[0].Content)
}

func TestFeedbackViewOrphanedAuthor(t *testing.T) {
	gw := store.NewMemoryGateway()
	ctx := context.Background()

	_, err := gw.Create(ctx, store.Feedbacks, store.Document{"userID": "gone", "content": "hello"})
	require.NoError(t, err)
	_, err = gw.Create(ctx, store.Feedbacks, store.Document{"content": "anonymous"})
	require.NoError(t, err)

	v := NewFeedbackView(gw)
	defer v.Close()

	items := v.List(FilterAll)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "Unknown User", item.UserName)
		assert.Equal(t, "N/A", item.UserPhone)
		assert.Equal(t, "unknown", item.Role)
	}
}

func TestFeedbackViewRoleFilter(t *testing.T) {
	gw := store.NewMemoryGateway()
	ctx := context.Background()

	seedUser(t, gw, "u1", "Asha", "1234567890", "Farmer")
	seedUser(t, gw, "u2", "Ravi", "0987654321", "Expert")
	_, err := gw.Create(ctx, store.Feedbacks, store.Document{"userID": "u1", "content": "a"})
	require.NoError(t, err)
	_, err = gw.Create(ctx, store.Feedbacks, store.Document{"userID": "u2", "content": "b"})
	require.NoError(t, err)

	v := NewFeedbackView(gw)
	defer v.Close()

	assert.Len(t, v.List(FilterAll), 2)
	require.Len(t, v.List("farmer"), 1)
	assert.Equal(t, "Asha", v.List("farmer")[0].UserName)
	assert.Len(t, v.List("expert"), 1)
	assert.Empty(t, v.List("admin"))
}

func TestFeedbackViewLiveGrowth(t *testing.T) {
	gw := store.NewMemoryGateway()
	ctx := context.Background()

	v := NewFeedbackView(gw)
	defer v.Close()
	assert.Empty(t, v.List(FilterAll))

	// New submissions appear without polling.
	_, err := gw.Create(ctx, store.Feedbacks, store.Document{"content": "first"})
	require.NoError(t, err)
	assert.Len(t, v.List(FilterAll), 1)

	_, err = gw.Create(ctx, store.Feedbacks, store.Document{"content": "second"})
	require.NoError(t, err)
	assert.Len(t, v.List(FilterAll), 2)
}

func TestFeedbackViewReply(t *testing.T) {
	gw := store.NewMemoryGateway()
	ctx := context.Background()

	id, err := gw.Create(ctx, store.Feedbacks, store.Document{"content": "question"})
	require.NoError(t, err)

	v := NewFeedbackView(gw)
	defer v.Close()

	require.NoError(t, v.Reply(ctx, id, "answer"))

	items := v.List(FilterAll)
	require.Len(t, items, 1)
	assert.Equal(t, "answer", items[0].AdminReply)
	assert.NotEmpty(t, items[0].RepliedAt)
}

func TestFeedbackViewJoinManyAuthors(t *testing.T) {
	gw := store.NewMemoryGateway()
	ctx := context.Background()

	// More items than join workers, to exercise the pooled fan-out.
	for i := 0; i < 20; i++ {
		uid := string(rune('a' + i))
		seedUser(t, gw, uid, "User "+uid, "1234567890", "farmer")
		_, err := gw.Create(ctx, store.Feedbacks, store.Document{"userID": uid, "content": "hi"})
		require.NoError(t, err)
	}

	v := NewFeedbackView(gw)
	defer v.Close()

	items := v.List(FilterAll)
	require.Len(t, items, 20)
	for _, item := range items {
		assert.NotEqual(t, "Unknown User", item.UserName)
	}
}
