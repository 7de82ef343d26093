package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/mapping"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

// RefreshRecorder receives successfully tracked references so they can
// be kept fresh in the background.
type RefreshRecorder interface {
	Record(input ports.TrackInput)
}

type TrackingHandler struct {
	service   ports.TrackingService
	assembler *mapping.Assembler
	refresher RefreshRecorder
}

// NewTrackingHandler builds the tracking endpoints. refresher may be nil
// when background refreshing is disabled.
func NewTrackingHandler(service ports.TrackingService, assembler *mapping.Assembler, refresher RefreshRecorder) *TrackingHandler {
	return &TrackingHandler{service: service, assembler: assembler, refresher: refresher}
}

type mapRequest struct {
	RefNum  string         `json:"refNum"  validate:"required"`
	RefType string         `json:"refType" validate:"omitempty,oneof=CONTAINER BOL AWB BOOKING"`
	HTML    string         `json:"html"`
	JSON    map[string]any `json:"json"`
}

// Track scrapes the carrier live (or serves a cached document) and
// returns the canonical tracking JSON. A mapping failure still yields a
// well-shaped document so downstream consumers never see a bare error
// body for a reference the engine recognized.
func (h *TrackingHandler) Track(c echo.Context) error {
	input := ports.TrackInput{
		Carrier: c.Param("carrier"),
		RefNum:  c.Param("refNum"),
		RefType: refType(c.QueryParam("refType")),
	}

	doc, err := h.service.Track(c.Request().Context(), input)
	if err != nil {
		if errorsIsAny(err, domain.ErrFetchFailed, domain.ErrBadPayload) {
			return c.JSON(http.StatusInternalServerError,
				h.assembler.FailureDocument(input, err))
		}
		return err
	}
	if h.refresher != nil {
		h.refresher.Record(input)
	}
	return c.JSON(http.StatusOK, doc)
}

// MapRaw maps a caller-supplied raw payload without fetching, for
// replaying captured pages and offline processing.
func (h *TrackingHandler) MapRaw(c echo.Context) error {
	var req mapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	// refType is case-insensitive, same as the track endpoint.
	req.RefType = strings.ToUpper(strings.TrimSpace(req.RefType))
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.HTML == "" && req.JSON == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "either html or json must be provided")
	}

	input := ports.TrackInput{
		Carrier: c.Param("carrier"),
		RefNum:  req.RefNum,
		RefType: refType(req.RefType),
	}
	doc, err := h.service.MapRaw(c.Request().Context(), input, ports.RawInput{
		HTML: req.HTML,
		JSON: req.JSON,
	})
	if err != nil {
		if errorsIsAny(err, domain.ErrBadPayload) {
			return c.JSON(http.StatusInternalServerError,
				h.assembler.FailureDocument(input, err))
		}
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// refType maps the query value to a reference type, defaulting to
// container tracking.
func refType(v string) domain.RefType {
	switch strings.ToUpper(v) {
	case "BOL":
		return domain.RefTypeBOL
	case "AWB":
		return domain.RefTypeAWB
	case "BOOKING":
		return domain.RefTypeBooking
	default:
		return domain.RefTypeContainer
	}
}
