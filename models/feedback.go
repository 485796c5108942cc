package models

import "github.com/aggroplatform/aggro-admin/store"

// Feedback references its author by the auth identifier, not the document
// id. Deleting a user does not cascade here.
type Feedback struct {
	ID         string `json:"id"`
	UserID     string `json:"userID"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	AdminReply string `json:"adminReply,omitempty"`
	RepliedAt  string `json:"repliedAt,omitempty"`
}

func FeedbackFromDoc(doc store.Document) Feedback {
	f := Feedback{
		ID:         AsString(doc["id"]),
		UserID:     AsString(doc["userID"]),
		Content:    AsString(doc["content"]),
		Rating:     AsInt(doc["rating"]),
		AdminReply: AsString(doc["adminReply"]),
		RepliedAt:  TimeField(doc["repliedAt"]),
	}
	if f.Content == "" {
		f.Content = "No feedback provided"
	}
	if f.Rating < 0 {
		f.Rating = 0
	}
	if f.Rating > 5 {
		f.Rating = 5
	}
	return f
}
