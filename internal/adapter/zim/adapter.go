// Package zim adapts the ZIM tracing API response into the engine's
// common input shape. The API exposes an explicit route-leg graph
// (blRouteLegs) plus per-container activity timelines, so this adapter
// feeds both derivation strategies.
package zim

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/mapping"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

const (
	carrierName  = "zim"
	scrapingType = "zim.container.tracking"
)

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) Carrier() string { return carrierName }

// Adapt extracts route legs, container activity lists, and the final ETA
// from the tracing JSON. Key names vary by API revision, so every read
// goes through the candidate-key extractor.
func (a *Adapter) Adapt(_ context.Context, raw ports.RawInput) (*ports.AdapterPayload, error) {
	if raw.JSON == nil {
		return nil, errors.New("zim: expected a JSON payload")
	}

	data := mapping.ExtractMap(raw.JSON, "data")
	payload := &ports.AdapterPayload{
		Summary: ports.Summary{
			CarrierName:  "ZIM",
			ScrapingType: scrapingType,
			Mode:         domain.ModeSea,
			ETA:          extractETA(data),
		},
		Legs:  extractLegs(data),
		Units: extractUnits(data),
	}
	return payload, nil
}

func extractLegs(data map[string]any) []domain.RawLeg {
	rawLegs := mapping.ExtractSlice(data, "blRouteLegs")
	legs := make([]domain.RawLeg, 0, len(rawLegs))
	for i := range rawLegs {
		node := mapping.ObjectAt(rawLegs, i)
		if node == nil {
			continue
		}
		legs = append(legs, domain.RawLeg{
			FromPort:      mapping.ExtractString(node, "portNameFrom"),
			FromCountry:   mapping.ExtractString(node, "countryNameFrom"),
			FromTerminal:  mapping.ExtractString(node, "depotNameFrom"),
			FromType:      domain.PortType(mapping.ExtractString(node, "portFromType")),
			ToPort:        mapping.ExtractString(node, "portNameTo"),
			ToCountry:     mapping.ExtractString(node, "countryNameTo"),
			ToTerminal:    mapping.ExtractString(node, "depotNameTo"),
			ToType:        domain.PortType(mapping.ExtractString(node, "portToType")),
			Departure:     mapping.ExtractString(node, "sailingDateTz", "sailingDate"),
			Arrival:       mapping.ExtractString(node, "arrivalDateTz", "arrivalDate"),
			VesselName:    mapping.ExtractString(node, "vesselName"),
			Voyage:        mapping.ExtractString(node, "voyage"),
			LegCode:       mapping.ExtractString(node, "leg"),
			PartnerVoyage: mapping.ExtractString(node, "partnerVoyage"),
			Sequence:      i,
		})
	}
	return legs
}

func extractUnits(data map[string]any) []domain.RawActivitySet {
	consDetails := mapping.ExtractMap(data, "consignmentDetails")
	consList := mapping.ExtractSlice(consDetails, "consContainerList")

	units := make([]domain.RawActivitySet, 0, len(consList))
	for i := range consList {
		item := mapping.ObjectAt(consList, i)
		if item == nil {
			continue
		}
		units = append(units, domain.RawActivitySet{
			Unit: domain.RawUnit{
				ContainerType: mapping.ExtractString(item, "cargoType"),
				ContainerNum:  unitNumber(item),
			},
			Activities: extractActivities(item),
			// The API lists the newest activity first.
			Order: domain.OrderNewestFirst,
		})
	}
	return units
}

func extractActivities(item map[string]any) []domain.RawActivity {
	rawActs := mapping.ExtractSlice(item, "unitActivityList")
	acts := make([]domain.RawActivity, 0, len(rawActs))
	for i := range rawActs {
		node := mapping.ObjectAt(rawActs, i)
		if node == nil {
			continue
		}
		place := mapping.ExtractString(node, "placeFromDesc")
		country := mapping.ExtractString(node, "countryFromName")
		acts = append(acts, domain.RawActivity{
			Status: mapping.ExtractString(node, "activityDesc"),
			// Pre-canonicalized so the normalizer's concatenation
			// yields a canonical event time.
			Date:         mapping.ParseDate(mapping.ExtractString(node, "activityDateTz", "activityDate")),
			Location:     joinPlace(place, country),
			VesselVoyage: vesselVoyage(node),
			Sequence:     i,
		})
	}
	return acts
}

// vesselVoyage composes the combined "<vessel>/<voyage>/<leg>" text the
// normalizer decomposes. A vessel with incomplete voyage data keeps the
// "N/A" placeholder the tracing site itself renders.
func vesselVoyage(node map[string]any) string {
	vessel := mapping.ExtractString(node, "vesselName")
	if vessel == "" {
		return ""
	}
	voyage := mapping.ExtractString(node, "voyage")
	leg := mapping.ExtractString(node, "leg")
	if voyage == "" || leg == "" {
		return vessel + "/N/A"
	}
	return fmt.Sprintf("%s/%s/%s", vessel, voyage, leg)
}

// joinPlace renders "PLACE (CODE), COUNTRY" the way the tracing site
// shows activity locations, tolerating either half being absent.
func joinPlace(place, country string) string {
	switch {
	case place == "":
		return country
	case country == "":
		return place
	default:
		return place + ", " + country
	}
}

func unitNumber(item map[string]any) string {
	// unitNo arrives as a bare JSON number on some responses.
	prefix := mapping.ExtractScalar(item, "unitPrefix")
	no := mapping.ExtractScalar(item, "unitNo")
	return strings.TrimSpace(prefix + no)
}

func extractETA(data map[string]any) string {
	finalETA := mapping.ExtractMap(data, "finalETA")
	agreedETA := mapping.ExtractMap(data, "agreedETA")
	raw := mapping.ExtractString(finalETA, "etaValueDate", "etaValue")
	if raw == "" {
		raw = mapping.ExtractString(agreedETA, "etaValueDate", "etaValue")
	}
	return mapping.ParseDateOnly(raw)
}
