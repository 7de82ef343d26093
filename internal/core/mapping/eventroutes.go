package mapping

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

// Carriers that expose no route-leg graph still encode it implicitly in
// the order and vessel/voyage repetition of their status events. The
// event-grouping strategy reconstructs the equivalent structure: scan
// events chronologically and group consecutive events sharing the same
// (vessel, voyage) into one leg.

type eventLeg struct {
	vessel    string
	voyage    string
	startLoc  string
	startDate string
	endLoc    string
	endDate   string
}

// DeriveRoutesFromEvents groups a container's events into route legs. A
// changed vessel/voyage starts a new leg; events missing vessel or voyage
// extend the current leg's end location and date instead of starting one.
// A voyage reference equal to the literal "N/A" placeholder counts as
// absent. Completed legs are deduplicated by their full identity tuple.
func DeriveRoutesFromEvents(events []domain.Event) []domain.Route {
	if len(events) == 0 {
		return []domain.Route{}
	}

	ordered := make([]domain.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return stopIndexOf(ordered[i]) < stopIndexOf(ordered[j])
	})

	var legs []eventLeg
	var curVessel, curVoyage string

	for _, ev := range ordered {
		vessel := deref(ev.VesselInfo.Name)
		voyage := deref(ev.VoyageReference)
		if strings.EqualFold(voyage, "N/A") {
			voyage = ""
		}
		loc := deref(ev.Location.Name)
		date := DatePart(deref(ev.EventTime))

		if vessel != "" && voyage != "" {
			if curVessel != vessel || curVoyage != voyage {
				curVessel, curVoyage = vessel, voyage
				// A follow-on leg departs from wherever the previous
				// one ended, not from the location of the event that
				// revealed the new vessel.
				startLoc, startDate := loc, date
				if len(legs) > 0 {
					prev := legs[len(legs)-1]
					if prev.endLoc != "" {
						startLoc = prev.endLoc
					}
					if prev.endDate != "" {
						startDate = prev.endDate
					}
				}
				legs = append(legs, eventLeg{
					vessel:    vessel,
					voyage:    voyage,
					startLoc:  startLoc,
					startDate: startDate,
					endLoc:    loc,
					endDate:   date,
				})
				continue
			}
		}
		if len(legs) > 0 {
			last := &legs[len(legs)-1]
			if loc != "" {
				last.endLoc = loc
			}
			if date != "" {
				last.endDate = date
			}
		}
	}

	seen := make(map[eventLeg]struct{}, len(legs))
	routes := []domain.Route{}
	for _, leg := range legs {
		if leg.vessel == "" || leg.voyage == "" || leg.startLoc == "" || leg.endLoc == "" {
			continue
		}
		if _, dup := seen[leg]; dup {
			continue
		}
		seen[leg] = struct{}{}
		routes = append(routes, domain.Route{
			Vessel:            domain.Str(leg.vessel),
			Voyage:            domain.Str(leg.voyage),
			PortOfLoading:     domain.Str(leg.startLoc + " ~~ POL"),
			DepartureDate:     domain.Str(leg.startDate),
			PortOfDischarging: domain.Str(leg.endLoc + " ~~ POD"),
			ArrivalTime:       domain.Str(leg.endDate),
		})
	}
	return routes
}

// DerivePodETA scans events for the explicit arrival-at-discharge-port
// status and returns its date portion, or "" when no such event exists.
func DerivePodETA(events []domain.Event) string {
	for _, ev := range events {
		status := strings.ToLower(deref(ev.Status))
		if strings.Contains(status, "vessel arrival to port of discharge") {
			return DatePart(deref(ev.EventTime))
		}
	}
	return ""
}

func stopIndexOf(ev domain.Event) int {
	if ev.StopIndex == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(*ev.StopIndex))
	if err != nil {
		return 0
	}
	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
