package mapping

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

// statusCodes maps lowercase substring triggers onto canonical event
// codes. Order matters: the first matching trigger wins, so this is a
// slice rather than a map.
var statusCodes = []struct {
	trigger string
	code    string
}{
	{"delivered", "DLV"},
	{"ready for pickup", "NFD"},
	{"arrived", "FAR"},
	{"in transit", "DEP"},
	{"planned for flight", "PRE"},
	{"tracking has not started", "FOH"},
	{"dropped off", "RCT"},
}

// StatusCode maps free-text status onto the controlled event-code
// vocabulary. Unmatched text yields "" (rendered as null), not an error.
func StatusCode(status string) string {
	lower := strings.ToLower(status)
	for _, sc := range statusCodes {
		if strings.Contains(lower, sc.trigger) {
			return sc.code
		}
	}
	return ""
}

// SplitCityCountry decomposes a combined "Name, Country" string on its
// last comma. Text without a comma is a bare location name with no
// country.
func SplitCityCountry(s string) (city, country string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return s, ""
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
}

// SplitVesselVoyage decomposes a combined vessel/voyage string. The last
// one or two "/"-delimited segments are the voyage reference; everything
// before is the vessel name: "HE JIN/86/N" -> ("HE JIN", "86/N"). A single
// segment is purely a vessel name.
func SplitVesselVoyage(s string) (vessel, voyage string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	parts := strings.Split(s, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) >= 3 {
		return strings.Join(parts[:len(parts)-2], "/"), strings.Join(parts[len(parts)-2:], "/")
	}
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return s, ""
}

var meridiemRe = regexp.MustCompile(`(?i)\s?(AM|PM)`)

// CombineDateTime joins separately-supplied date and time text into one
// event timestamp, stripping AM/PM markers. This is deliberately a lossy
// concatenation, not a parse-and-rerender: adapters that want canonical
// timestamps pre-format the date field.
func CombineDateTime(date, timeText string) string {
	date = strings.TrimSpace(date)
	timeText = strings.TrimSpace(timeText)
	if date == "" && timeText == "" {
		return ""
	}
	if date != "" && timeText != "" {
		normalized := strings.TrimSpace(meridiemRe.ReplaceAllString(timeText, ""))
		return strings.TrimSpace(date + " " + normalized)
	}
	if date != "" {
		return date
	}
	return timeText
}

// NormalizeEvent converts one raw activity into a canonical Event. The
// stop index is the activity's chronological position (oldest = 0); mode
// is the adapter's transport mode or "" when unspecified. Every nested
// object is populated, with null values where data is unknown.
func NormalizeEvent(act domain.RawActivity, stopIndex int, mode string) domain.Event {
	city, country := SplitCityCountry(act.Location)
	vessel, voyage := SplitVesselVoyage(act.VesselVoyage)

	voyageRef := voyage
	if voyageRef == "" && act.VesselVoyage != "" {
		voyageRef = strings.TrimSpace(act.VesselVoyage)
	}

	idx := strconv.Itoa(stopIndex)
	return domain.Event{
		Mode:      domain.Str(mode),
		Status:    domain.Str(strings.TrimSpace(act.Status)),
		EventCode: domain.Str(StatusCode(act.Status)),
		EventTime: domain.Str(CombineDateTime(act.Date, act.Time)),
		Location: domain.Location{
			Name:    domain.Str(strings.TrimSpace(act.Location)),
			City:    domain.Str(city),
			Country: domain.Str(country),
		},
		StopIndex:       &idx,
		VesselInfo:      domain.VesselInfo{Name: domain.Str(vessel)},
		VoyageReference: domain.Str(voyageRef),
	}
}

// NormalizeActivities converts a unit's raw activity set into canonical
// events ordered newest-first, assigning chronological stop indexes from
// the set's declared ordering. No activity is ever dropped.
func NormalizeActivities(set domain.RawActivitySet, mode string) []domain.Event {
	n := len(set.Activities)
	events := make([]domain.Event, 0, n)

	// Walk oldest-to-newest so stop indexes count forward in time.
	for i := 0; i < n; i++ {
		raw := set.Activities[i]
		if set.Order == domain.OrderNewestFirst {
			raw = set.Activities[n-1-i]
		}
		events = append(events, NormalizeEvent(raw, i, mode))
	}

	// Output order is newest-first: consumers read entry 0 as the
	// current status.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events
}
