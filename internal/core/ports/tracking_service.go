package ports

import (
	"context"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

// TrackInput identifies one tracking request.
type TrackInput struct {
	Carrier string
	RefNum  string
	RefType domain.RefType
}

// TrackingService defines the scrape-and-map use cases.
type TrackingService interface {
	// Track fetches the carrier page, adapts it, and maps it into the
	// canonical document, serving from cache when possible.
	Track(ctx context.Context, input TrackInput) (*domain.ShipmentTracking, error)
	// Refresh is Track without the cache read, used by the background
	// refresh workers.
	Refresh(ctx context.Context, input TrackInput) (*domain.ShipmentTracking, error)
	// MapRaw maps a caller-supplied raw payload without fetching.
	MapRaw(ctx context.Context, input TrackInput, raw RawInput) (*domain.ShipmentTracking, error)
}
