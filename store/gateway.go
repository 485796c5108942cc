package store

import "context"

// Collection names used by the platform.
const (
	Users       = "users"
	GovtSchemes = "govtSchemes"
	CropInfo    = "cropInfo"
	Feedbacks   = "feedbacks"
	Credentials = "credentials"
)

// Document is one schemaless record. Reads always carry the document id
// under the "id" key; the store-internal key is never exposed.
type Document = map[string]interface{}

// Change describes one mutation delivered to a snapshot-style subscriber.
type Change struct {
	Op  string // "insert", "update" or "delete"
	ID  string
	Doc Document // nil for deletes
}

// Gateway is the uniform CRUD surface over named document collections.
//
// Two subscription styles coexist. Subscribe fires once immediately and then
// on every change, and the subscriber is expected to refetch. SubscribeChanges
// delivers the changed documents themselves and the subscriber merges
// locally. Both return a cancel func that MUST be called when the owning
// view is torn down.
type Gateway interface {
	// Create assigns a new id. Callers must treat an empty id as failure.
	Create(ctx context.Context, collection string, doc Document) (string, error)

	// Put writes a document under a caller-chosen id, creating or replacing.
	Put(ctx context.Context, collection, id string, doc Document) error

	// All returns every document in insertion order as reported by the
	// store. Order is not guaranteed stable across calls.
	All(ctx context.Context, collection string) ([]Document, error)

	// ByID returns (nil, nil) when the id is absent.
	ByID(ctx context.Context, collection, id string) (Document, error)

	// Update merges fields into an existing document. Fails when the target
	// id does not exist.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Delete removes a document. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Find returns documents whose field equals value.
	Find(ctx context.Context, collection, field string, value interface{}) ([]Document, error)

	Subscribe(collection string, fn func()) (cancel func())
	SubscribeChanges(collection string, fn func(Change)) (cancel func())
}
