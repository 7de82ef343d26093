package mapping

import (
	"testing"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

func routeEvent(idx int, status, eventTime, location, vessel, voyage string) domain.Event {
	ev := NormalizeEvent(domain.RawActivity{
		Status:   status,
		Date:     eventTime,
		Location: location,
	}, idx, domain.ModeSea)
	ev.VesselInfo.Name = domain.Str(vessel)
	ev.VoyageReference = domain.Str(voyage)
	return ev
}

func TestDeriveRoutesFromEvents(t *testing.T) {
	events := []domain.Event{
		routeEvent(0, "Loaded on vessel", "01-Jan-2025", "SHANGHAI, CHINA", "HE JIN", "86/E"),
		routeEvent(1, "Vessel departure", "05-Jan-2025", "SINGAPORE", "HE JIN", "86/E"),
		routeEvent(2, "Vessel arrival", "10-Jan-2025", "ROTTERDAM, NETHERLANDS", "TIAN QIN HE", "084W"),
	}

	routes := DeriveRoutesFromEvents(events)
	if len(routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(routes))
	}

	first := routes[0]
	if *first.Vessel != "HE JIN" || *first.Voyage != "86/E" {
		t.Errorf("first leg vessel = %v/%v", *first.Vessel, *first.Voyage)
	}
	if *first.PortOfLoading != "SHANGHAI, CHINA ~~ POL" || *first.PortOfDischarging != "SINGAPORE ~~ POD" {
		t.Errorf("first leg ports = %v -> %v", *first.PortOfLoading, *first.PortOfDischarging)
	}
	if *first.DepartureDate != "01-Jan-2025" || *first.ArrivalTime != "05-Jan-2025" {
		t.Errorf("first leg dates = %v -> %v", *first.DepartureDate, *first.ArrivalTime)
	}

	// The second leg departs where the first one ended.
	second := routes[1]
	if *second.Vessel != "TIAN QIN HE" {
		t.Errorf("second leg vessel = %v", *second.Vessel)
	}
	if *second.PortOfLoading != "SINGAPORE ~~ POL" || *second.PortOfDischarging != "ROTTERDAM, NETHERLANDS ~~ POD" {
		t.Errorf("second leg ports = %v -> %v", *second.PortOfLoading, *second.PortOfDischarging)
	}
	if *second.DepartureDate != "05-Jan-2025" || *second.ArrivalTime != "10-Jan-2025" {
		t.Errorf("second leg dates = %v -> %v", *second.DepartureDate, *second.ArrivalTime)
	}
}

func TestDeriveRoutesFromEventsVoyagePlaceholder(t *testing.T) {
	// Events with the "N/A" voyage placeholder or no vessel at all extend
	// the current leg instead of opening a new one.
	events := []domain.Event{
		routeEvent(0, "Loaded", "01-Jan-2025", "SHANGHAI", "HE JIN", "86/E"),
		routeEvent(1, "Gate activity", "03-Jan-2025", "SINGAPORE", "HAMMONIA", "N/A"),
		routeEvent(2, "Discharged", "08-Jan-2025", "ROTTERDAM", "", ""),
	}

	routes := DeriveRoutesFromEvents(events)
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}
	if *routes[0].PortOfDischarging != "ROTTERDAM ~~ POD" || *routes[0].ArrivalTime != "08-Jan-2025" {
		t.Errorf("leg end = %v at %v", *routes[0].PortOfDischarging, *routes[0].ArrivalTime)
	}
}

func TestDeriveRoutesFromEventsUnsortedInput(t *testing.T) {
	// Input order is irrelevant: grouping walks by stop index.
	events := []domain.Event{
		routeEvent(1, "Departed", "05-Jan-2025", "SINGAPORE", "HE JIN", "86/E"),
		routeEvent(0, "Loaded", "01-Jan-2025", "SHANGHAI", "HE JIN", "86/E"),
	}
	routes := DeriveRoutesFromEvents(events)
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}
	if *routes[0].PortOfLoading != "SHANGHAI ~~ POL" {
		t.Errorf("leg start = %v", *routes[0].PortOfLoading)
	}
}

func TestDeriveRoutesFromEventsEmpty(t *testing.T) {
	routes := DeriveRoutesFromEvents(nil)
	if routes == nil || len(routes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", routes)
	}
}

func TestDerivePodETA(t *testing.T) {
	events := []domain.Event{
		routeEvent(1, "Vessel arrival to Port of Discharge", "10-Jan-2025 14:00", "HAIFA", "", ""),
		routeEvent(0, "Loaded", "01-Jan-2025", "SHANGHAI", "", ""),
	}
	if got := DerivePodETA(events); got != "10-Jan-2025" {
		t.Errorf("DerivePodETA = %q", got)
	}
	if got := DerivePodETA(events[1:]); got != "" {
		t.Errorf("expected empty ETA, got %q", got)
	}
}
