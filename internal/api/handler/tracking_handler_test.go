package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/mapping"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

type stubTrackingService struct {
	doc *domain.ShipmentTracking
	err error

	gotInput ports.TrackInput
}

func (s *stubTrackingService) Track(_ context.Context, input ports.TrackInput) (*domain.ShipmentTracking, error) {
	s.gotInput = input
	return s.doc, s.err
}

func (s *stubTrackingService) Refresh(_ context.Context, input ports.TrackInput) (*domain.ShipmentTracking, error) {
	return s.doc, s.err
}

func (s *stubTrackingService) MapRaw(_ context.Context, input ports.TrackInput, _ ports.RawInput) (*domain.ShipmentTracking, error) {
	s.gotInput = input
	return s.doc, s.err
}

func fixedAssembler() *mapping.Assembler {
	return mapping.NewDeterministicAssembler(
		func() time.Time { return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC) },
		func() string { return "id-1" },
	)
}

func trackContext(svc ports.TrackingService, refTypeParam string) (echo.Context, *httptest.ResponseRecorder, *TrackingHandler) {
	e := echo.New()
	e.Validator = NewValidator()
	target := "/zim/v1/track/ZIMU1234567"
	if refTypeParam != "" {
		target += "?refType=" + refTypeParam
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/:carrier/v1/track/:refNum")
	c.SetParamNames("carrier", "refNum")
	c.SetParamValues("zim", "ZIMU1234567")
	return c, rec, NewTrackingHandler(svc, fixedAssembler(), nil)
}

func TestTrackHandler(t *testing.T) {
	doc := domain.NewShipmentTracking()
	doc.RefNum = domain.Str("ZIMU1234567")
	svc := &stubTrackingService{doc: doc}

	c, rec, h := trackContext(svc, "")
	if err := h.Track(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotInput.RefType != domain.RefTypeContainer {
		t.Errorf("default refType = %v", svc.gotInput.RefType)
	}
	if !strings.Contains(rec.Body.String(), `"refNum":"ZIMU1234567"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestTrackHandlerRefTypeQuery(t *testing.T) {
	svc := &stubTrackingService{doc: domain.NewShipmentTracking()}
	c, _, h := trackContext(svc, "bol")
	if err := h.Track(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if svc.gotInput.RefType != domain.RefTypeBOL {
		t.Errorf("refType = %v", svc.gotInput.RefType)
	}
}

func TestTrackHandlerFailureDocument(t *testing.T) {
	svc := &stubTrackingService{err: fmt.Errorf("upstream: %w", domain.ErrFetchFailed)}

	c, rec, h := trackContext(svc, "")
	if err := h.Track(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	// Mapping failures yield the full schema with explanatory logs, not a
	// bare error body.
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["refNum"] != "ZIMU1234567" {
		t.Errorf("refNum = %v", body["refNum"])
	}
	if _, ok := body["containers"]; !ok {
		t.Errorf("failure document missing containers key")
	}
	logs, _ := body["logs"].([]any)
	if len(logs) != 1 {
		t.Errorf("expected one failure log, got %v", body["logs"])
	}
}

func TestTrackHandlerUnknownCarrierPropagates(t *testing.T) {
	svc := &stubTrackingService{err: fmt.Errorf("%w: maersk", domain.ErrUnknownCarrier)}
	c, _, h := trackContext(svc, "")
	// Unknown carriers are not wrapped in a failure document; the error
	// handler maps them to 404.
	if err := h.Track(c); err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestMapRawHandlerValidation(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/zim/v1/map",
		strings.NewReader(`{"refType":"CONTAINER"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("carrier")
	c.SetParamValues("zim")

	h := NewTrackingHandler(&stubTrackingService{}, fixedAssembler(), nil)
	err := h.MapRaw(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing refNum, got %v", err)
	}
}

func TestMapRawHandlerLowercaseRefType(t *testing.T) {
	svc := &stubTrackingService{doc: domain.NewShipmentTracking()}

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/zim/v1/map",
		strings.NewReader(`{"refNum":"ZIMUHFA1234567","refType":"bol","json":{"data":{}}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("carrier")
	c.SetParamValues("zim")

	h := NewTrackingHandler(svc, fixedAssembler(), nil)
	// Case-insensitive, same as the refType query parameter on track.
	if err := h.MapRaw(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotInput.RefType != domain.RefTypeBOL {
		t.Errorf("refType = %v", svc.gotInput.RefType)
	}
}

func TestMapRawHandler(t *testing.T) {
	doc := domain.NewShipmentTracking()
	svc := &stubTrackingService{doc: doc}

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/zim/v1/map",
		strings.NewReader(`{"refNum":"ZIMU1234567","refType":"BOOKING","json":{"data":{}}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("carrier")
	c.SetParamValues("zim")

	h := NewTrackingHandler(svc, fixedAssembler(), nil)
	if err := h.MapRaw(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotInput.RefType != domain.RefTypeBooking {
		t.Errorf("refType = %v", svc.gotInput.RefType)
	}
}
