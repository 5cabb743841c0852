package runfeed

import "sync"

// ArtifactKey addresses a completed document within the conversation.
type ArtifactKey struct {
	MessageID string
	Index     int
}

// ArtifactStore holds completed document blocks for on-demand preview. It is
// an explicit, caller-owned store: the owner decides its lifetime, this
// package only reads and writes by key. Insertion order is preserved for
// listing; re-putting a key overwrites in place.
type ArtifactStore struct {
	mu    sync.RWMutex
	order []ArtifactKey
	items map[ArtifactKey]DocumentBlock
}

// NewArtifactStore creates an empty store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{items: make(map[ArtifactKey]DocumentBlock)}
}

// Put stores a document under the given key.
func (s *ArtifactStore) Put(key ArtifactKey, doc DocumentBlock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; !exists {
		s.order = append(s.order, key)
	}
	s.items[key] = doc
}

// Get returns the document stored under key, if any.
func (s *ArtifactStore) Get(key ArtifactKey) (DocumentBlock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.items[key]
	return doc, ok
}

// List returns all stored documents in insertion order.
func (s *ArtifactStore) List() []DocumentBlock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DocumentBlock, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.items[key])
	}
	return out
}

// Len returns the number of stored documents.
func (s *ArtifactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear drops everything, e.g. when the conversation is cleared.
func (s *ArtifactStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.items = make(map[ArtifactKey]DocumentBlock)
}
