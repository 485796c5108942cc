package models

import "github.com/aggroplatform/aggro-admin/store"

// User is one platform account: a farmer, an expert, or an admin.
type User struct {
	ID          string `json:"id"`
	UID         string `json:"uid,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	Image       string `json:"image,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// UserFromDoc applies field defaults once, at the data-access boundary.
func UserFromDoc(doc store.Document) User {
	u := User{
		ID:          AsString(doc["id"]),
		UID:         AsString(doc["uid"]),
		Name:        AsString(doc["name"]),
		Email:       AsString(doc["email"]),
		Role:        AsString(doc["role"]),
		PhoneNumber: AsString(doc["phoneNumber"]),
		Location:    AsString(doc["location"]),
		Status:      AsString(doc["status"]),
		Image:       AsString(doc["image"]),
		CreatedAt:   TimeField(doc["createdAt"]),
	}
	if u.Name == "" {
		u.Name = AsString(doc["username"])
	}
	if u.Status == "" {
		u.Status = "Inactive"
	}
	return u
}

func (u User) ToDoc() store.Document {
	doc := store.Document{
		"name":        u.Name,
		"role":        u.Role,
		"phoneNumber": u.PhoneNumber,
		"location":    u.Location,
		"status":      u.Status,
	}
	if u.UID != "" {
		doc["uid"] = u.UID
	}
	if u.Email != "" {
		doc["email"] = u.Email
	}
	if u.Image != "" {
		doc["image"] = u.Image
	}
	if u.CreatedAt != "" {
		doc["createdAt"] = u.CreatedAt
	}
	return doc
}
