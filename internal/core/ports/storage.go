package ports

import (
	"context"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

// DocumentCache is a lookaside cache for canonical documents keyed by
// (carrier, refType, refNum).
type DocumentCache interface {
	Get(ctx context.Context, carrier string, refType domain.RefType, refNum string) (*domain.ShipmentTracking, bool, error)
	Set(ctx context.Context, carrier string, refType domain.RefType, refNum string, doc *domain.ShipmentTracking) error
}

// HistoryRepository records every successful mapping and serves the most
// recent one as a stale-data fallback when a live fetch fails.
type HistoryRepository interface {
	Insert(ctx context.Context, carrier string, refType domain.RefType, refNum string, doc *domain.ShipmentTracking) error
	FindLatest(ctx context.Context, carrier string, refType domain.RefType, refNum string) (*domain.ShipmentTracking, error)
}
