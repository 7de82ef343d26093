// Package aircanada adapts the rendered Air Canada Cargo tracking page
// into the engine's common input shape. The page exposes no route-leg
// API, so flight segments and the status timeline are pulled out of the
// HTML with selector heuristics.
package aircanada

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

const (
	carrierName  = "aircanada"
	scrapingType = "aircanada.awb.tracking"
)

var (
	routeRe     = regexp.MustCompile(`Route:\s*([A-Za-z\s]+)\s*\(([A-Z]{3})\)\s*to\s*([A-Za-z\s]+)\s*\(([A-Z]{3})\)`)
	flightRe    = regexp.MustCompile(`Flight:\s*([A-Z0-9]+)\s*-\s*(Confirmed|Unconfirmed)`)
	departureRe = regexp.MustCompile(`Departure:\s*(\S[^\n]*)`)
	fromToRe    = regexp.MustCompile(`From\s+([A-Za-z\s]+)\s+to\s+([A-Za-z\s]+)`)
	panelDateRe = regexp.MustCompile(`View shipping status on\s*`)
)

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) Carrier() string { return carrierName }

// Adapt parses flight segments into raw legs and the expansion-panel
// timeline into raw activities. Selector misses degrade to empty values,
// never to errors.
func (a *Adapter) Adapt(_ context.Context, raw ports.RawInput) (*ports.AdapterPayload, error) {
	if raw.HTML == "" {
		return nil, errors.New("aircanada: expected an HTML payload")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw.HTML))
	if err != nil {
		return nil, err
	}

	origin, destination := summaryRoute(doc)
	payload := &ports.AdapterPayload{
		Summary: ports.Summary{
			CarrierName:  "Air Canada Cargo",
			ScrapingType: scrapingType,
			Mode:         domain.ModeAir,
			Origin:       origin,
			Destination:  destination,
		},
		Legs: extractSegments(doc),
		Units: []domain.RawActivitySet{{
			Activities: extractActivities(doc),
			// The page lists the newest panel first.
			Order: domain.OrderNewestFirst,
		}},
	}
	return payload, nil
}

// summaryRoute reads the "From X to Y" booking summary line.
func summaryRoute(doc *goquery.Document) (origin, destination string) {
	m := fromToRe.FindStringSubmatch(doc.Text())
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// extractSegments turns flight segment cards into raw legs: the first
// segment's origin is the port of loading, the last segment's destination
// the port of discharge, and the airports between are transshipments.
func extractSegments(doc *goquery.Document) []domain.RawLeg {
	var legs []domain.RawLeg
	segments := doc.Find("div.segment-item")
	total := segments.Length()

	segments.Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		route := routeRe.FindStringSubmatch(text)
		if route == nil {
			return
		}
		leg := domain.RawLeg{
			FromPort: route[2],
			ToPort:   route[4],
			FromType: domain.PortTypeTSP,
			ToType:   domain.PortTypeTSP,
			Sequence: i,
		}
		if i == 0 {
			leg.FromType = domain.PortTypePOL
		}
		if i == total-1 {
			leg.ToType = domain.PortTypePOD
		}
		if flight := flightRe.FindStringSubmatch(text); flight != nil {
			leg.VesselName = flight[1]
		}
		if dep := departureRe.FindStringSubmatch(text); dep != nil {
			leg.Departure = strings.TrimSpace(dep[1])
		}
		legs = append(legs, leg)
	})
	return legs
}

// extractActivities walks the expansion panels: each panel header carries
// the date, each expanded row a status, time, and location.
func extractActivities(doc *goquery.Document) []domain.RawActivity {
	var acts []domain.RawActivity
	seq := 0

	doc.Find("mat-expansion-panel").Each(func(_ int, panel *goquery.Selection) {
		title := strings.TrimSpace(panel.Find("mat-expansion-panel-header mat-panel-title").First().Text())
		date := panelDate(panelDateRe.ReplaceAllString(title, ""))

		panel.Find(".m-expanded-panel").Each(func(_ int, item *goquery.Selection) {
			status := strings.TrimSpace(item.Find("div.m-left-panel").First().Text())

			var timeText, location string
			spans := item.Find("div.m-right-panel-content span")
			if spans.Length() >= 2 {
				timeText = strings.TrimSpace(spans.Eq(0).Text())
				location = strings.TrimSpace(spans.Eq(1).Text())
			}

			description := strings.TrimSpace(item.Find("div.m-package-status").First().Text())
			if status == "" && description == "" && location == "" {
				return
			}
			if status == "" {
				status = description
			}
			acts = append(acts, domain.RawActivity{
				Status:   status,
				Date:     date,
				Time:     timeText,
				Location: location,
				Sequence: seq,
			})
			seq++
		})
	})
	return acts
}

// panelDate canonicalizes the "Aug 18, 2025" panel header date; text that
// does not parse is carried through unchanged.
func panelDate(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	if t, err := time.Parse("Jan 2, 2006", s); err == nil {
		return t.Format("02-Jan-2006")
	}
	return s
}
