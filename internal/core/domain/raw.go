package domain

// PortType tags a leg endpoint with its role in the shipment, using the
// literal values carriers publish on their route-leg records.
type PortType string

const (
	PortTypePOR PortType = "POR"
	PortTypePOL PortType = "POL"
	PortTypeTSP PortType = "Transshipment"
	PortTypePOD PortType = "POD"
	PortTypeDEL PortType = "DEL"
)

// RawLeg is one transport segment as produced by a source adapter.
// Empty string means the carrier did not supply the value. Immutable once
// produced; consumed only by the route deriver.
type RawLeg struct {
	FromPort     string
	FromCountry  string
	FromTerminal string
	FromType     PortType
	ToPort       string
	ToCountry    string
	ToTerminal   string
	ToType       PortType
	// Departure and Arrival are raw timestamp text; the deriver
	// canonicalizes them.
	Departure     string
	Arrival       string
	VesselName    string
	Voyage        string
	LegCode       string
	PartnerVoyage string
	Sequence      int
}

// ActivityOrder declares the chronological ordering of an adapter's
// activity list. Carriers disagree on this, and guessing from position has
// burned us before, so adapters must state it explicitly.
type ActivityOrder string

const (
	OrderNewestFirst ActivityOrder = "newest_first"
	OrderOldestFirst ActivityOrder = "oldest_first"
)

// RawActivity is one chronological status update as scraped. Date and Time
// may arrive as separate fields; the normalizer combines them.
type RawActivity struct {
	Status string
	Date   string
	Time   string
	// Location is the combined "Name, Country" text.
	Location string
	// VesselVoyage is the combined "<vessel>/<voyage>" or
	// "<vessel>/<voyage>/<leg>" text.
	VesselVoyage string
	Sequence     int
}

// RawUnit identifies one physical container/shipment unit.
type RawUnit struct {
	ContainerType string
	ContainerNum  string
}

// RawActivitySet groups one unit's activities with their declared ordering.
type RawActivitySet struct {
	Unit       RawUnit
	Activities []RawActivity
	Order      ActivityOrder
}
