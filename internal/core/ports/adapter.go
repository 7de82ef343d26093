package ports

import (
	"context"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

// RawInput is what the page fetcher yields for one scrape: either raw
// HTML text or a decoded JSON object. Exactly one of the two is set.
type RawInput struct {
	HTML string
	JSON map[string]any
}

// Summary carries the shipment-level fields an adapter extracts alongside
// legs and activities. Empty string means the carrier did not supply the
// value.
type Summary struct {
	CarrierName  string
	ScrapingType string
	// Mode is the transport mode stamped on normalized events
	// (domain.ModeAir / domain.ModeSea), or "" when unspecified.
	Mode          string
	Origin        string
	Destination   string
	CurrentStatus string
	// ETA is the carrier's explicit arrival estimate, used when no route
	// leg supplies one.
	ETA            string
	BLIssueDate    string
	BookingDate    string
	AdditionalInfo map[string]any
}

// AdapterPayload is the common shape every source adapter produces: the
// engine consumes nothing else.
type AdapterPayload struct {
	Summary Summary
	Legs    []domain.RawLeg
	Units   []domain.RawActivitySet
}

// SourceAdapter turns one carrier's raw page or API shape into the
// engine's input. Adapt must tolerate missing fields (resolve to empty,
// not error); it errors only when the input is not recognizably that
// carrier's payload at all.
type SourceAdapter interface {
	Carrier() string
	Adapt(ctx context.Context, raw RawInput) (*AdapterPayload, error)
}

// Fetcher is the black-box page fetcher: given a carrier and reference
// number it yields raw HTML or JSON. Navigation, waiting, and retry
// policy live behind this seam.
type Fetcher interface {
	Fetch(ctx context.Context, carrier, refNum string) (RawInput, error)
}
