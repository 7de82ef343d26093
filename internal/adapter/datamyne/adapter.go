// Package datamyne adapts Datamyne bill-of-lading search results into the
// engine's common input shape. The records come from the trade database
// rather than a live carrier, so each row is a discharge-side snapshot:
// one POL-to-POD leg plus an arrival activity per record.
package datamyne

import (
	"context"
	"errors"

	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/mapping"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

const (
	carrierName  = "datamyne"
	scrapingType = "datamyne.bl.search"
)

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) Carrier() string { return carrierName }

func (a *Adapter) Adapt(_ context.Context, raw ports.RawInput) (*ports.AdapterPayload, error) {
	if raw.JSON == nil {
		return nil, errors.New("datamyne: expected a JSON payload")
	}

	records := mapping.ExtractSlice(raw.JSON, "results", "records", "rows")
	payload := &ports.AdapterPayload{
		Summary: ports.Summary{
			CarrierName:  "Datamyne",
			ScrapingType: scrapingType,
			Mode:         domain.ModeSea,
		},
	}

	for i := range records {
		rec := mapping.ObjectAt(records, i)
		if rec == nil {
			continue
		}
		if i == 0 {
			payload.Summary.CarrierName = firstNonEmpty(
				mapping.ExtractString(rec, "carrierName", "carrier"), "Datamyne")
			payload.Summary.ETA = mapping.ParseDateOnly(
				mapping.ExtractString(rec, "arrivalDate", "estimatedArrivalDate"))
		}
		payload.Legs = append(payload.Legs, legFromRecord(rec, i))
		payload.Units = append(payload.Units, unitFromRecord(rec))
	}
	return payload, nil
}

func legFromRecord(rec map[string]any, seq int) domain.RawLeg {
	return domain.RawLeg{
		FromPort:   mapping.ExtractString(rec, "portOfLading", "foreignPort", "portOfLoading"),
		FromType:   domain.PortTypePOL,
		ToPort:     mapping.ExtractString(rec, "portOfUnlading", "usPort", "portOfDischarge"),
		ToType:     domain.PortTypePOD,
		Arrival:    mapping.ExtractString(rec, "arrivalDate", "estimatedArrivalDate"),
		VesselName: mapping.ExtractString(rec, "vesselName", "vessel"),
		Voyage:     mapping.ExtractString(rec, "voyageNumber", "voyage"),
		Sequence:   seq,
	}
}

func unitFromRecord(rec map[string]any) domain.RawActivitySet {
	var acts []domain.RawActivity
	if arrival := mapping.ExtractString(rec, "arrivalDate", "estimatedArrivalDate"); arrival != "" {
		acts = append(acts, domain.RawActivity{
			Status:       "Vessel arrived at port of unlading",
			Date:         mapping.ParseDate(arrival),
			Location:     mapping.ExtractString(rec, "portOfUnlading", "usPort", "portOfDischarge"),
			VesselVoyage: mapping.ExtractString(rec, "vesselName", "vessel"),
		})
	}
	return domain.RawActivitySet{
		Unit: domain.RawUnit{
			ContainerNum:  mapping.ExtractString(rec, "containerNumber", "containerNum"),
			ContainerType: mapping.ExtractString(rec, "containerType"),
		},
		Activities: acts,
		Order:      domain.OrderOldestFirst,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
