package outbound

import (
	"context"

	"github.com/Amdaxx/podcast/domain"
)

// DraftCachePort stores in-progress drafts. Drafts are ephemeral; the
// backing store may expire them after a period of inactivity.
type DraftCachePort interface {
	Save(ctx context.Context, draft domain.Draft) error
	Get(ctx context.Context, id string) (*domain.Draft, error)
	Delete(ctx context.Context, id string) error
}
