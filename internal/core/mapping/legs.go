package mapping

import (
	"fmt"

	"github.com/jtrack/tracking-system/internal/core/domain"
)

// RouteDerivation is the output of the leg-pattern strategy: the shipment
// level origin/destination plus the ordered stop list and one vessel
// movement per leg.
type RouteDerivation struct {
	Origin          string
	Destination     string
	Stops           []domain.Stop
	VesselMovements []domain.VesselMovement
	// Matched is false when the leg sequence fit none of the known
	// topologies and the minimal 2-stop fallback was used.
	Matched bool
}

// DeriveFromLegs classifies an ordered leg sequence against the known
// topologies by inspecting each leg's (fromType, toType) pair and emits
// the stop list that topology implies, in travel order. An unrecognized
// sequence degrades to a 2-stop Port of Loading / Port of Discharge
// result taken from the first and last leg, so a route is always produced
// when at least one leg exists.
func DeriveFromLegs(legs []domain.RawLeg) RouteDerivation {
	d := RouteDerivation{
		Stops:           []domain.Stop{},
		VesselMovements: []domain.VesselMovement{},
		Matched:         true,
	}
	if len(legs) == 0 {
		return d
	}

	pair := func(i int) (domain.PortType, domain.PortType) {
		return legs[i].FromType, legs[i].ToType
	}

	switch n := len(legs); {
	case n == 1 && matches(legs, domain.PortTypePOL, domain.PortTypePOD):
		d.Origin = legPlace(legs[0], false)
		d.Destination = legPlace(legs[0], true)
		d.addStop(domain.StopPortOfLoading, d.Origin, legs[0].FromTerminal, "", legs[0].Departure)
		d.addStop(domain.StopPortOfDischarge, d.Destination, legs[0].ToTerminal, "", "")

	case n == 2 && matches(legs, domain.PortTypePOL, domain.PortTypeTSP, domain.PortTypeTSP, domain.PortTypePOD):
		d.Origin = legPlace(legs[0], false)
		d.Destination = legPlace(legs[1], true)
		d.addStop(domain.StopPortOfLoading, d.Origin, legs[0].FromTerminal, "", legs[0].Departure)
		d.addStop(domain.StopTransshipment, legPlace(legs[1], false), legs[1].FromTerminal, legs[0].Arrival, legs[1].Departure)
		d.addStop(domain.StopPortOfDischarge, d.Destination, legs[1].ToTerminal, "", "")

	case n == 2 && matches(legs, domain.PortTypePOL, domain.PortTypePOD, domain.PortTypePOD, domain.PortTypeDEL):
		d.Origin = legPlace(legs[0], false)
		d.Destination = legPlace(legs[1], true)
		d.addStop(domain.StopPortOfLoading, d.Origin, legs[0].FromTerminal, "", legs[0].Departure)
		d.addStop(domain.StopPortOfDischarge, legPlace(legs[0], true), legs[0].ToTerminal, legs[0].Arrival, "")
		d.addStop(domain.StopFinalDestination, d.Destination, legs[1].FromTerminal, "", "")

	case n == 2 && matches(legs, domain.PortTypePOR, domain.PortTypePOL, domain.PortTypePOL, domain.PortTypePOD):
		d.Origin = legPlace(legs[0], false)
		d.Destination = legPlace(legs[1], true)
		d.addStop(domain.StopPlaceOfReceipt, d.Origin, "", "", "")
		d.addStop(domain.StopPortOfLoading, legPlace(legs[0], true), legs[1].FromTerminal, "", legs[1].Departure)
		d.addStop(domain.StopPortOfDischarge, d.Destination, legs[1].ToTerminal, "", "")

	case n == 3 && firstIs(pair, 0, domain.PortTypePOR, domain.PortTypePOL) && firstIs(pair, 2, domain.PortTypePOD, domain.PortTypeDEL):
		d.Origin = legPlace(legs[0], false)
		d.Destination = legPlace(legs[2], true)
		d.addStop(domain.StopPlaceOfReceipt, d.Origin, "", "", "")
		d.addStop(domain.StopPortOfLoading, legPlace(legs[0], true), legs[1].FromTerminal, "", legs[1].Departure)
		d.addStop(domain.StopPortOfDischarge, legPlace(legs[1], true), legs[1].ToTerminal, legs[1].Arrival, "")
		d.addStop(domain.StopFinalDestination, d.Destination, "", "", "")

	case n == 3 && firstIs(pair, 0, domain.PortTypePOR, domain.PortTypePOL) && firstIs(pair, 2, domain.PortTypeTSP, domain.PortTypePOD):
		d.Origin = legPlace(legs[0], false)
		d.Destination = legPlace(legs[2], true)
		d.addStop(domain.StopPlaceOfReceipt, d.Origin, "", "", "")
		d.addStop(domain.StopPortOfLoading, legPlace(legs[0], true), legs[1].FromTerminal, "", legs[1].Departure)
		d.addStop(domain.StopTransshipment, legPlace(legs[2], false), "", legs[1].Arrival, legs[2].Departure)
		d.addStop(domain.StopPortOfDischarge, d.Destination, legs[2].ToTerminal, "", "")

	case n == 3 && firstIs(pair, 0, domain.PortTypePOL, domain.PortTypeTSP) && firstIs(pair, 2, domain.PortTypePOD, domain.PortTypeDEL):
		d.Origin = legPlace(legs[0], false)
		d.Destination = legPlace(legs[2], true)
		d.addStop(domain.StopPortOfLoading, d.Origin, legs[0].FromTerminal, "", legs[0].Departure)
		d.addStop(domain.StopTransshipment, legPlace(legs[1], false), legs[1].FromTerminal, legs[0].Arrival, legs[1].Departure)
		d.addStop(domain.StopPortOfDischarge, legPlace(legs[1], true), legs[1].ToTerminal, legs[1].Arrival, "")
		d.addStop(domain.StopFinalDestination, d.Destination, "", "", "")

	case n == 3 && matches(legs,
		domain.PortTypePOL, domain.PortTypeTSP,
		domain.PortTypeTSP, domain.PortTypeTSP,
		domain.PortTypeTSP, domain.PortTypePOD):
		d.Origin = legPlace(legs[0], false)
		d.Destination = legPlace(legs[2], true)
		d.addStop(domain.StopPortOfLoading, d.Origin, legs[0].FromTerminal, "", legs[0].Departure)
		d.addStop(domain.StopTransshipment, legPlace(legs[0], true), legs[0].ToTerminal, legs[0].Arrival, legs[1].Departure)
		d.addStop(domain.StopTransshipment, legPlace(legs[1], true), legs[1].ToTerminal, legs[1].Arrival, legs[2].Departure)
		d.addStop(domain.StopPortOfDischarge, d.Destination, legs[2].ToTerminal, "", "")

	default:
		// Minimal synthesis: loading from the first leg's origin,
		// discharge from the last leg's destination. Intermediate-stop
		// fidelity is lost, which is the accepted degradation for
		// shapes we have not seen yet.
		first, last := legs[0], legs[len(legs)-1]
		d.Matched = false
		d.Origin = legPlace(first, false)
		d.Destination = legPlace(last, true)
		d.addStop(domain.StopPortOfLoading, d.Origin, first.FromTerminal, "", first.Departure)
		d.addStop(domain.StopPortOfDischarge, d.Destination, last.ToTerminal, last.Arrival, "")
	}

	for _, leg := range legs {
		d.VesselMovements = append(d.VesselMovements, VesselMovementFromLeg(leg))
	}
	return d
}

// VesselMovementFromLeg composes one leg's movement record as
// "<vessel>/<voyage>/<legCode>". A leg without a vessel name yields a
// null movement descriptor but keeps its partner voyage.
func VesselMovementFromLeg(leg domain.RawLeg) domain.VesselMovement {
	var composed string
	if leg.VesselName != "" {
		composed = fmt.Sprintf("%s/%s/%s", leg.VesselName, leg.Voyage, leg.LegCode)
	}
	return domain.VesselMovement{
		VesselVoyage:  domain.Str(composed),
		PartnerVoyage: domain.Str(leg.PartnerVoyage),
	}
}

// matches reports whether the legs' (fromType, toType) pairs equal the
// expected sequence, given as from0, to0, from1, to1, ...
func matches(legs []domain.RawLeg, expected ...domain.PortType) bool {
	if len(expected) != len(legs)*2 {
		return false
	}
	for i, leg := range legs {
		if leg.FromType != expected[2*i] || leg.ToType != expected[2*i+1] {
			return false
		}
	}
	return true
}

func firstIs(pair func(int) (domain.PortType, domain.PortType), i int, from, to domain.PortType) bool {
	f, t := pair(i)
	return f == from && t == to
}

// legPlace composes "<port>, <country>" for a leg endpoint. A blank
// endpoint yields "" so it is carried through as null rather than dropped.
func legPlace(leg domain.RawLeg, dest bool) string {
	port, country := leg.FromPort, leg.FromCountry
	if dest {
		port, country = leg.ToPort, leg.ToCountry
	}
	switch {
	case port == "" && country == "":
		return ""
	case country == "":
		return port
	case port == "":
		return country
	default:
		return port + ", " + country
	}
}

// addStop appends a stop, canonicalizing times to date-only rendering.
func (d *RouteDerivation) addStop(stopType, place, terminal, arrival, departure string) {
	city, country := SplitCityCountry(place)
	st := stopType
	d.Stops = append(d.Stops, domain.Stop{
		StopType: &st,
		Location: domain.StopLocation{
			Name:     domain.Str(place),
			Terminal: domain.Str(terminal),
			City:     domain.Str(city),
			Country:  domain.Str(country),
		},
		ArrivalTime:   domain.Str(ParseDateOnly(arrival)),
		DepartureTime: domain.Str(ParseDateOnly(departure)),
	})
}
