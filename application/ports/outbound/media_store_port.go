package outbound

import (
	"context"

	"github.com/Amdaxx/podcast/domain"
)

type StoreMediaRequest struct {
	UserID      string
	DraftID     string
	Kind        domain.AssetKind
	Content     []byte
	ContentType string
}

// StoredMedia pairs the public URL used for playback/display with the
// opaque storage key kept alongside the record.
type StoredMedia struct {
	URL string
	Key string
}

type MediaStorePort interface {
	Save(ctx context.Context, req StoreMediaRequest) (*StoredMedia, error)
}
