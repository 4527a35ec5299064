// Package session keeps the live form instances, one per page load.
package session

import (
	"container/list"
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/frontendfusion/signup/internal/domain/signup"
	"github.com/frontendfusion/signup/pkg/metrics"
)

// Factory builds the form instance for a new session.
type Factory func() *signup.Form

// Registry maps opaque session ids to form instances.
type Registry interface {
	// Create starts a new session with an empty form.
	Create(ctx context.Context) (string, *signup.Form)

	// Get returns the form of a live session.
	Get(ctx context.Context, id string) (*signup.Form, bool)

	// Remove closes and forgets a session. Unknown ids are ignored.
	Remove(ctx context.Context, id string)

	// Size returns the number of live sessions.
	Size() int

	// Close closes every live form and empties the registry.
	Close()
}

type entry struct {
	id   string
	form *signup.Form
}

// inMemoryRegistry evicts the oldest session when full.
// maxSize <= 0 means unbounded.
type inMemoryRegistry struct {
	mu      sync.Mutex
	factory Factory
	maxSize int
	byID    map[string]*list.Element
	order   *list.List // front = newest
	newID   func() string
}

// NewInMemoryRegistry creates a registry that builds forms with factory.
func NewInMemoryRegistry(factory Factory, opts ...Option) Registry {
	r := &inMemoryRegistry{
		factory: factory,
		maxSize: 10_000,
		byID:    make(map[string]*list.Element),
		order:   list.New(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *inMemoryRegistry) Create(_ context.Context) (string, *signup.Form) {
	form := r.factory()

	r.mu.Lock()
	id := r.newID()
	for _, taken := r.byID[id]; taken; _, taken = r.byID[id] {
		id = r.newID()
	}

	var evicted *signup.Form
	if r.maxSize > 0 && len(r.byID) >= r.maxSize {
		evicted = r.evictOldest()
	}
	r.byID[id] = r.order.PushFront(&entry{id: id, form: form})
	size := len(r.byID)
	r.mu.Unlock()

	if evicted != nil {
		evicted.Close()
		metrics.RecordSessionEvicted()
	}
	metrics.RecordSessionCreated()
	metrics.UpdateActiveSessions(size)
	return id, form
}

func (r *inMemoryRegistry) Get(_ context.Context, id string) (*signup.Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	el, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return el.Value.(*entry).form, true
}

func (r *inMemoryRegistry) Remove(_ context.Context, id string) {
	r.mu.Lock()
	el, ok := r.byID[id]
	if ok {
		delete(r.byID, id)
		r.order.Remove(el)
	}
	size := len(r.byID)
	r.mu.Unlock()

	if ok {
		el.Value.(*entry).form.Close()
		metrics.UpdateActiveSessions(size)
	}
}

func (r *inMemoryRegistry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *inMemoryRegistry) Close() {
	r.mu.Lock()
	forms := make([]*signup.Form, 0, len(r.byID))
	for el := r.order.Front(); el != nil; el = el.Next() {
		forms = append(forms, el.Value.(*entry).form)
	}
	r.byID = make(map[string]*list.Element)
	r.order.Init()
	r.mu.Unlock()

	for _, f := range forms {
		f.Close()
	}
	metrics.UpdateActiveSessions(0)
}

// evictOldest drops the tail of the list. Must be called with r.mu held.
func (r *inMemoryRegistry) evictOldest() *signup.Form {
	el := r.order.Back()
	if el == nil {
		return nil
	}
	e := r.order.Remove(el).(*entry)
	delete(r.byID, e.id)
	return e.form
}
