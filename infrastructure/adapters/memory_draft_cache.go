package adapters

import (
	"context"
	"sync"

	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/domain"
)

// memoryDraftCache keeps drafts in process memory. Used for local runs
// without AWS and by the workflow tests.
type memoryDraftCache struct {
	mu     sync.RWMutex
	drafts map[string]domain.Draft
}

func NewMemoryDraftCache() outbound.DraftCachePort {
	return &memoryDraftCache{
		drafts: make(map[string]domain.Draft),
	}
}

func (c *memoryDraftCache) Save(_ context.Context, draft domain.Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[draft.ID] = draft
	return nil
}

func (c *memoryDraftCache) Get(_ context.Context, id string) (*domain.Draft, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	draft, ok := c.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return &draft, nil
}

func (c *memoryDraftCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, id)
	return nil
}
