package domain

// Transport modes attached to normalized events.
const (
	ModeAir = "AIR"
	ModeSea = "SEA"
)

// RefType identifies what kind of reference number a tracking request carries.
type RefType string

const (
	RefTypeContainer RefType = "Container"
	RefTypeBOL       RefType = "BillOfLanding"
	RefTypeAWB       RefType = "AWB"
	RefTypeBooking   RefType = "Booking"
)

// Stop role tags, matching the labels carriers publish on route legs.
const (
	StopPlaceOfReceipt   = "Place of Receipt"
	StopPortOfLoading    = "Port of Loading"
	StopTransshipment    = "Transshipment"
	StopPortOfDischarge  = "Port of Discharge"
	StopFinalDestination = "Final Destination"
)

// Location is the fully-populated place descriptor used on events.
// Every field is nullable; the object itself is never omitted.
type Location struct {
	Name      *string  `json:"name" bson:"name"`
	City      *string  `json:"city" bson:"city"`
	State     *string  `json:"state" bson:"state"`
	Country   *string  `json:"country" bson:"country"`
	Latitude  *float64 `json:"latitude" bson:"latitude"`
	Longitude *float64 `json:"longitude" bson:"longitude"`
	UnloCode  *string  `json:"unloCode" bson:"unloCode"`
	Terminal  *string  `json:"terminal" bson:"terminal"`
}

// VesselInfo describes the vehicle (vessel or aircraft) attached to an event.
type VesselInfo struct {
	Name           *string `json:"name" bson:"name"`
	IMO            *string `json:"imo" bson:"imo"`
	MMSI           *string `json:"mmsi" bson:"mmsi"`
	AdditionalInfo *string `json:"additionalInfo" bson:"additionalInfo"`
}

// Event is one normalized status update. StopIndex counts chronologically
// from the oldest activity (0) regardless of the order the carrier listed
// them in.
type Event struct {
	Mode            *string        `json:"mode" bson:"mode"`
	Status          *string        `json:"status" bson:"status"`
	EventCode       *string        `json:"eventCode" bson:"eventCode"`
	EventTime       *string        `json:"eventTime" bson:"eventTime"`
	EventQualifier  *string        `json:"eventQualifier" bson:"eventQualifier"`
	Location        Location       `json:"location" bson:"location"`
	StopIndex       *string        `json:"stopIndex" bson:"stopIndex"`
	VesselInfo      VesselInfo     `json:"vesselInfo" bson:"vesselInfo"`
	VoyageReference *string        `json:"voyageReference" bson:"voyageReference"`
	AdditionalInfo  map[string]any `json:"additionalInfo" bson:"additionalInfo"`
}

// StopLocation is the place descriptor used on derived stops.
type StopLocation struct {
	Name     *string `json:"name" bson:"name"`
	Terminal *string `json:"terminal" bson:"terminal"`
	City     *string `json:"city" bson:"city"`
	Country  *string `json:"country" bson:"country"`
}

// Stop is one named waypoint on the derived route.
type Stop struct {
	StopType      *string      `json:"stopType" bson:"stopType"`
	Location      StopLocation `json:"location" bson:"location"`
	ArrivalTime   *string      `json:"arrivalTime" bson:"arrivalTime"`
	DepartureTime *string      `json:"departureTime" bson:"departureTime"`
}

// Route is one transport leg with composed origin/destination descriptors,
// e.g. "SHANGHAI (SH), CHINA ~~ POL".
type Route struct {
	Place                 *string `json:"place" bson:"place"`
	Date                  *string `json:"date" bson:"date"`
	Berthing              *string `json:"berthing" bson:"berthing"`
	Vessel                *string `json:"vessel" bson:"vessel"`
	Voyage                *string `json:"voyage" bson:"voyage"`
	ActualLoading         *string `json:"actualLoading" bson:"actualLoading"`
	PortOfLoading         *string `json:"portOfLoading" bson:"portOfLoading"`
	DepartureDate         *string `json:"departureDate" bson:"departureDate"`
	DepartureDateExpected *string `json:"departureDateExpected" bson:"departureDateExpected"`
	PortOfDischarging     *string `json:"portOfDischarging" bson:"portOfDischarging"`
	ArrivalTime           *string `json:"arrivalTime" bson:"arrivalTime"`
	ArrivalTimeExpected   *string `json:"arrivalTimeExpected" bson:"arrivalTimeExpected"`
}

// VesselMovement is one leg-level vehicle record, composed as
// "<vessel>/<voyage>/<legCode>".
type VesselMovement struct {
	VesselVoyage  *string `json:"vesselVoyage" bson:"vesselVoyage"`
	PartnerVoyage *string `json:"partnerVoyage" bson:"partnerVoyage"`
}

// Container is one physical unit tracked under a reference number.
type Container struct {
	ContainerType                        *string          `json:"containerType" bson:"containerType"`
	ContainerNum                         *string          `json:"containerNum" bson:"containerNum"`
	Stops                                []Stop           `json:"stops" bson:"stops"`
	Events                               []Event          `json:"events" bson:"events"`
	Routes                               []Route          `json:"routes" bson:"routes"`
	VesselMovements                      []VesselMovement `json:"vesselMovements" bson:"vesselMovements"`
	CargoDeliveryInformationUsImportOnly *string          `json:"cargoDeliveryInformationUsImportOnly" bson:"cargoDeliveryInformationUsImportOnly"`
	PodETA                               *string          `json:"podETA" bson:"podETA"`
	AdditionalInfo                       map[string]any   `json:"additionalInfo" bson:"additionalInfo"`
}

// NewContainer returns a container with every list initialized so the JSON
// rendering always carries the keys, empty rather than null.
func NewContainer() Container {
	return Container{
		Stops:           []Stop{},
		Events:          []Event{},
		Routes:          []Route{},
		VesselMovements: []VesselMovement{},
	}
}

// LogEntry is a timestamped diagnostic message appended during assembly.
type LogEntry struct {
	ID        string `json:"id" bson:"id"`
	Timestamp string `json:"timestamp" bson:"timestamp"`
	Message   string `json:"message" bson:"message"`
}

// ShipmentTracking is the canonical root document. Downstream consumers
// index by key, so every field is present in the JSON output even when
// its value is null.
type ShipmentTracking struct {
	Version        *string        `json:"version" bson:"version"`
	ScrapingType   *string        `json:"scrapingType" bson:"scrapingType"`
	RefNum         *string        `json:"refNum" bson:"refNum"`
	RefType        *string        `json:"refType" bson:"refType"`
	JTCarrierName  *string        `json:"jtCarrierName" bson:"jtCarrierName"`
	Origin         *string        `json:"origin" bson:"origin"`
	Destination    *string        `json:"destination" bson:"destination"`
	CurrentStatus  *string        `json:"currentStatus" bson:"currentStatus"`
	BookingNum     *string        `json:"bookingNum" bson:"bookingNum"`
	BolNum         *string        `json:"bolNum" bson:"bolNum"`
	BLIssueDate    *string        `json:"bl_Issue_Date" bson:"bl_Issue_Date"`
	BookingDate    *string        `json:"booking_Date" bson:"booking_Date"`
	TrackingNo     *string        `json:"trackingnNo" bson:"trackingnNo"`
	AdditionalInfo map[string]any `json:"additionalInfo" bson:"additionalInfo"`
	Containers     []Container    `json:"containers" bson:"containers"`
	Logs           []LogEntry     `json:"logs" bson:"logs"`
}

// NewShipmentTracking returns a root document with lists initialized.
func NewShipmentTracking() *ShipmentTracking {
	return &ShipmentTracking{
		Containers: []Container{},
		Logs:       []LogEntry{},
	}
}

// Str returns a pointer to s, or nil when s is empty. The canonical schema
// renders unknown values as null, never as empty strings.
func Str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
