package mapping

import (
	"testing"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{"Delivered", "DLV"},
		{"Cargo was delivered to the consignee", "DLV"},
		{"Ready for pickup", "NFD"},
		{"Vessel arrived at port of discharge", "FAR"},
		{"In transit to destination", "DEP"},
		{"Planned for flight AC872", "PRE"},
		{"Tracking has not started", "FOH"},
		{"Dropped off at origin facility", "RCT"},
		// First trigger in table order wins.
		{"arrived and delivered", "DLV"},
		// Unmatched text maps to no code.
		{"Customs inspection in progress", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := StatusCode(tc.status); got != tc.want {
			t.Errorf("StatusCode(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestSplitCityCountry(t *testing.T) {
	cases := []struct {
		in      string
		city    string
		country string
	}{
		{"HAIFA, ISRAEL", "HAIFA", "ISRAEL"},
		// The split is on the last comma, so a comma inside the name stays
		// on the city side.
		{"XIAMEN (FJ), CHINA, PEOPLE'S REPUBLIC", "XIAMEN (FJ), CHINA", "PEOPLE'S REPUBLIC"},
		{"SINGAPORE", "SINGAPORE", ""},
		{"", "", ""},
		{"  ROTTERDAM ,  NETHERLANDS  ", "ROTTERDAM", "NETHERLANDS"},
	}
	for _, tc := range cases {
		city, country := SplitCityCountry(tc.in)
		if city != tc.city || country != tc.country {
			t.Errorf("SplitCityCountry(%q) = (%q, %q), want (%q, %q)",
				tc.in, city, country, tc.city, tc.country)
		}
	}
}

func TestSplitVesselVoyage(t *testing.T) {
	cases := []struct {
		in     string
		vessel string
		voyage string
	}{
		{"HE JIN/86/N", "HE JIN", "86/N"},
		{"TIAN QIN HE/084W", "TIAN QIN HE", "084W"},
		{"EVER GIVEN", "EVER GIVEN", ""},
		{"A/B/C/D", "A/B", "C/D"},
		// The "N/A" placeholder itself contains a slash, so it survives the
		// split as the voyage text.
		{"HAMMONIA/N/A", "HAMMONIA", "N/A"},
		{"", "", ""},
	}
	for _, tc := range cases {
		vessel, voyage := SplitVesselVoyage(tc.in)
		if vessel != tc.vessel || voyage != tc.voyage {
			t.Errorf("SplitVesselVoyage(%q) = (%q, %q), want (%q, %q)",
				tc.in, vessel, voyage, tc.vessel, tc.voyage)
		}
	}
}

func TestCombineDateTime(t *testing.T) {
	cases := []struct {
		date string
		time string
		want string
	}{
		{"18-Aug-2025", "2:30 PM", "18-Aug-2025 2:30"},
		{"18-Aug-2025", "11:05am", "18-Aug-2025 11:05"},
		{"18-Aug-2025", "", "18-Aug-2025"},
		{"", "14:00", "14:00"},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := CombineDateTime(tc.date, tc.time); got != tc.want {
			t.Errorf("CombineDateTime(%q, %q) = %q, want %q", tc.date, tc.time, got, tc.want)
		}
	}
}

func TestNormalizeEvent(t *testing.T) {
	ev := NormalizeEvent(domain.RawActivity{
		Status:       "Vessel arrived at port of discharge",
		Date:         "10-Jan-2025",
		Time:         "8:00 AM",
		Location:     "HAIFA, ISRAEL",
		VesselVoyage: "HE JIN/86/N",
	}, 3, domain.ModeSea)

	if *ev.Status != "Vessel arrived at port of discharge" {
		t.Errorf("status = %q", *ev.Status)
	}
	if *ev.EventCode != "FAR" {
		t.Errorf("eventCode = %q", *ev.EventCode)
	}
	if *ev.EventTime != "10-Jan-2025 8:00" {
		t.Errorf("eventTime = %q", *ev.EventTime)
	}
	if *ev.Mode != "SEA" {
		t.Errorf("mode = %q", *ev.Mode)
	}
	if *ev.Location.City != "HAIFA" || *ev.Location.Country != "ISRAEL" {
		t.Errorf("location split = (%v, %v)", *ev.Location.City, *ev.Location.Country)
	}
	if *ev.StopIndex != "3" {
		t.Errorf("stopIndex = %q", *ev.StopIndex)
	}
	if *ev.VesselInfo.Name != "HE JIN" || *ev.VoyageReference != "86/N" {
		t.Errorf("vessel/voyage = (%v, %v)", *ev.VesselInfo.Name, *ev.VoyageReference)
	}
}

func TestNormalizeEventVoyageFallback(t *testing.T) {
	// A single-segment vessel text has no voyage; the raw combined text is
	// kept as the voyage reference.
	ev := NormalizeEvent(domain.RawActivity{
		Status:       "Loaded",
		VesselVoyage: "EVER GIVEN",
	}, 0, "")

	if *ev.VesselInfo.Name != "EVER GIVEN" {
		t.Errorf("vessel = %q", *ev.VesselInfo.Name)
	}
	if *ev.VoyageReference != "EVER GIVEN" {
		t.Errorf("voyageReference = %q", *ev.VoyageReference)
	}
	if ev.Mode != nil {
		t.Errorf("mode should be null when unspecified")
	}
	if ev.EventCode != nil {
		t.Errorf("eventCode should be null for unmatched status")
	}
}

func TestNormalizeActivitiesNewestFirstInput(t *testing.T) {
	set := domain.RawActivitySet{
		Activities: []domain.RawActivity{
			{Status: "Delivered", Date: "10-Jan-2025"},
			{Status: "In transit", Date: "05-Jan-2025"},
			{Status: "Dropped off", Date: "01-Jan-2025"},
		},
		Order: domain.OrderNewestFirst,
	}
	events := NormalizeActivities(set, domain.ModeSea)

	if len(events) != 3 {
		t.Fatalf("len = %d", len(events))
	}
	// Output stays newest-first.
	if *events[0].Status != "Delivered" || *events[2].Status != "Dropped off" {
		t.Fatalf("order wrong: %q ... %q", *events[0].Status, *events[2].Status)
	}
	// Stop indexes count chronologically from the oldest activity.
	if *events[0].StopIndex != "2" || *events[1].StopIndex != "1" || *events[2].StopIndex != "0" {
		t.Errorf("stop indexes = %q %q %q",
			*events[0].StopIndex, *events[1].StopIndex, *events[2].StopIndex)
	}
}

func TestNormalizeActivitiesOldestFirstInput(t *testing.T) {
	set := domain.RawActivitySet{
		Activities: []domain.RawActivity{
			{Status: "Dropped off", Date: "01-Jan-2025"},
			{Status: "Delivered", Date: "10-Jan-2025"},
		},
		Order: domain.OrderOldestFirst,
	}
	events := NormalizeActivities(set, "")

	if len(events) != 2 {
		t.Fatalf("len = %d", len(events))
	}
	if *events[0].Status != "Delivered" || *events[0].StopIndex != "1" {
		t.Errorf("newest = (%q, %q)", *events[0].Status, *events[0].StopIndex)
	}
	if *events[1].Status != "Dropped off" || *events[1].StopIndex != "0" {
		t.Errorf("oldest = (%q, %q)", *events[1].Status, *events[1].StopIndex)
	}
}
