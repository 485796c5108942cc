package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryGateway is an in-process Gateway used by tests and local runs.
// Semantics match MongoGateway: insertion-order reads, merge updates,
// idempotent deletes, and both subscription styles.
type MemoryGateway struct {
	mu          sync.Mutex
	collections map[string]*memCollection
	listeners   map[string]map[int]func(Change)
	nextListen  int
}

type memCollection struct {
	docs  map[string]Document
	order []string
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		collections: map[string]*memCollection{},
		listeners:   map[string]map[int]func(Change){},
	}
}

func (g *MemoryGateway) coll(name string) *memCollection {
	c, ok := g.collections[name]
	if !ok {
		c = &memCollection{docs: map[string]Document{}}
		g.collections[name] = c
	}
	return c
}

func cloneDoc(doc Document) Document {
	out := Document{}
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// notify snapshots the listener set under the lock and invokes the
// callbacks after releasing it, so a callback may re-enter the gateway.
func (g *MemoryGateway) notify(collection string, change Change) {
	g.mu.Lock()
	var fns []func(Change)
	for _, fn := range g.listeners[collection] {
		fns = append(fns, fn)
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

func (g *MemoryGateway) Create(ctx context.Context, collection string, doc Document) (string, error) {
	id := uuid.New().String()

	g.mu.Lock()
	c := g.coll(collection)
	stored := cloneDoc(doc)
	delete(stored, "id")
	c.docs[id] = stored
	c.order = append(c.order, id)
	g.mu.Unlock()

	out := cloneDoc(stored)
	out["id"] = id
	g.notify(collection, Change{Op: "insert", ID: id, Doc: out})
	return id, nil
}

func (g *MemoryGateway) Put(ctx context.Context, collection, id string, doc Document) error {
	g.mu.Lock()
	c := g.coll(collection)
	_, existed := c.docs[id]
	stored := cloneDoc(doc)
	delete(stored, "id")
	c.docs[id] = stored
	if !existed {
		c.order = append(c.order, id)
	}
	g.mu.Unlock()

	op := "insert"
	if existed {
		op = "update"
	}
	out := cloneDoc(stored)
	out["id"] = id
	g.notify(collection, Change{Op: op, ID: id, Doc: out})
	return nil
}

func (g *MemoryGateway) All(ctx context.Context, collection string) ([]Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.coll(collection)
	var docs []Document
	for _, id := range c.order {
		doc := cloneDoc(c.docs[id])
		doc["id"] = id
		docs = append(docs, doc)
	}
	return docs, nil
}

func (g *MemoryGateway) ByID(ctx context.Context, collection, id string) (Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.coll(collection)
	stored, ok := c.docs[id]
	if !ok {
		return nil, nil
	}
	doc := cloneDoc(stored)
	doc["id"] = id
	return doc, nil
}

func (g *MemoryGateway) Update(ctx context.Context, collection, id string, fields Document) error {
	g.mu.Lock()
	c := g.coll(collection)
	stored, ok := c.docs[id]
	if !ok {
		g.mu.Unlock()
		return &WriteError{Collection: collection, Op: "update", Err: ErrNotFound}
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		stored[k] = v
	}
	out := cloneDoc(stored)
	g.mu.Unlock()

	out["id"] = id
	g.notify(collection, Change{Op: "update", ID: id, Doc: out})
	return nil
}

func (g *MemoryGateway) Delete(ctx context.Context, collection, id string) error {
	g.mu.Lock()
	c := g.coll(collection)
	if _, ok := c.docs[id]; !ok {
		g.mu.Unlock()
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	g.mu.Unlock()

	g.notify(collection, Change{Op: "delete", ID: id})
	return nil
}

func (g *MemoryGateway) Find(ctx context.Context, collection, field string, value interface{}) ([]Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.coll(collection)
	var docs []Document
	for _, id := range c.order {
		stored := c.docs[id]
		if fmt.Sprintf("%v", stored[field]) != fmt.Sprintf("%v", value) {
			continue
		}
		doc := cloneDoc(stored)
		doc["id"] = id
		docs = append(docs, doc)
	}
	return docs, nil
}

func (g *MemoryGateway) Subscribe(collection string, fn func()) func() {
	// Register before the initial notification, matching MongoGateway, so
	// writes made while fn runs still notify.
	cancel := g.SubscribeChanges(collection, func(Change) { fn() })
	fn()
	return cancel
}

func (g *MemoryGateway) SubscribeChanges(collection string, fn func(Change)) func() {
	g.mu.Lock()
	if g.listeners[collection] == nil {
		g.listeners[collection] = map[int]func(Change){}
	}
	id := g.nextListen
	g.nextListen++
	g.listeners[collection][id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.listeners[collection], id)
		g.mu.Unlock()
	}
}
