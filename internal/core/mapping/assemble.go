package mapping

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

// SchemaVersion is stamped on every canonical document.
const SchemaVersion = "1.00"

// Assembler merges derived routes, normalized events, and summary fields
// into the canonical ShipmentTracking document. The clock and id source
// are injected so that identical input always yields byte-identical
// output under a fixed clock.
type Assembler struct {
	now   func() time.Time
	newID func() string
}

// NewAssembler returns an assembler using the wall clock and random ids.
func NewAssembler() *Assembler {
	return &Assembler{now: time.Now, newID: uuid.NewString}
}

// NewDeterministicAssembler pins the clock and id source. Intended for
// tests and replay tooling.
func NewDeterministicAssembler(now func() time.Time, newID func() string) *Assembler {
	return &Assembler{now: now, newID: newID}
}

// Assemble builds the canonical document for one tracking request. Every
// key of the output schema is present regardless of how sparse the
// payload is; unknown values render as null and lists as empty.
func (a *Assembler) Assemble(input ports.TrackInput, payload ports.AdapterPayload) *domain.ShipmentTracking {
	doc := a.newRoot(input)
	summary := payload.Summary
	doc.ScrapingType = domain.Str(summary.ScrapingType)
	doc.JTCarrierName = domain.Str(summary.CarrierName)
	doc.BLIssueDate = domain.Str(summary.BLIssueDate)
	doc.BookingDate = domain.Str(summary.BookingDate)
	doc.AdditionalInfo = summary.AdditionalInfo

	var logs []domain.LogEntry
	appendLog := func(format string, args ...any) {
		logs = append(logs, domain.LogEntry{
			ID:        a.newID(),
			Timestamp: a.now().UTC().Format(time.RFC3339),
			Message:   fmt.Sprintf(format, args...),
		})
	}

	derived := DeriveFromLegs(payload.Legs)
	if len(payload.Legs) > 0 {
		appendLog("derived %d stops and %d vessel movements from %d route legs", len(derived.Stops), len(derived.VesselMovements), len(payload.Legs))
		if !derived.Matched {
			appendLog("leg topology unrecognized; emitted minimal 2-stop route")
		}
	}

	totalEvents := 0
	for _, set := range payload.Units {
		c := domain.NewContainer()
		c.ContainerType = domain.Str(set.Unit.ContainerType)
		c.ContainerNum = domain.Str(set.Unit.ContainerNum)
		c.Stops = derived.Stops
		c.VesselMovements = derived.VesselMovements
		c.Events = NormalizeActivities(set, summary.Mode)
		c.Routes = DeriveRoutesFromEvents(c.Events)
		c.PodETA = containerPodETA(c, summary.ETA)
		totalEvents += len(c.Events)
		doc.Containers = append(doc.Containers, c)
	}
	if len(payload.Units) == 0 {
		c := domain.NewContainer()
		c.Stops = derived.Stops
		c.VesselMovements = derived.VesselMovements
		c.PodETA = domain.Str(summary.ETA)
		doc.Containers = append(doc.Containers, c)
	}
	appendLog("mapped %d containers with %d events total", len(doc.Containers), totalEvents)

	doc.Origin = domain.Str(firstNonEmpty(derived.Origin, summary.Origin))
	doc.Destination = domain.Str(firstNonEmpty(derived.Destination, summary.Destination))
	doc.CurrentStatus = a.currentStatus(doc.Containers, summary.CurrentStatus)

	if logs != nil {
		doc.Logs = logs
	}
	return doc
}

// FailureDocument builds a well-shaped canonical document for a failed
// scrape: root fields present and null, logs explaining the failure.
// Callers always receive the full schema, never a bare error body.
func (a *Assembler) FailureDocument(input ports.TrackInput, cause error) *domain.ShipmentTracking {
	doc := a.newRoot(input)
	doc.Logs = []domain.LogEntry{{
		ID:        a.newID(),
		Timestamp: a.now().UTC().Format(time.RFC3339),
		Message:   fmt.Sprintf("tracking failed for %s %s: %v", input.Carrier, input.RefNum, cause),
	}}
	return doc
}

func (a *Assembler) newRoot(input ports.TrackInput) *domain.ShipmentTracking {
	doc := domain.NewShipmentTracking()
	doc.Version = domain.Str(SchemaVersion)
	doc.RefNum = domain.Str(input.RefNum)
	doc.RefType = domain.Str(string(input.RefType))

	// Reference-type-dependent population: a B/L reference fills bolNum,
	// a booking reference fills bookingNum, an air waybill fills
	// trackingnNo, a container fills none of them.
	switch input.RefType {
	case domain.RefTypeBOL:
		doc.BolNum = domain.Str(input.RefNum)
	case domain.RefTypeBooking:
		doc.BookingNum = domain.Str(input.RefNum)
	case domain.RefTypeAWB:
		doc.TrackingNo = domain.Str(input.RefNum)
	}
	return doc
}

// currentStatus is the status of the chronologically most recent event
// (events are stored newest-first), falling back to the adapter summary.
func (a *Assembler) currentStatus(containers []domain.Container, fallback string) *string {
	for _, c := range containers {
		if len(c.Events) > 0 && c.Events[0].Status != nil {
			return c.Events[0].Status
		}
	}
	return domain.Str(fallback)
}

// containerPodETA applies the precedence: arrival of the last derived
// route leg, then the arrival-at-discharge event, then the carrier's
// explicit ETA.
func containerPodETA(c domain.Container, summaryETA string) *string {
	if n := len(c.Routes); n > 0 {
		if arr := c.Routes[n-1].ArrivalTime; arr != nil && *arr != "" {
			return arr
		}
	}
	if eta := DerivePodETA(c.Events); eta != "" {
		return domain.Str(eta)
	}
	return domain.Str(summaryETA)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
