package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/mapping"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

type stubAdapter struct {
	name    string
	payload *ports.AdapterPayload
	err     error
}

func (a *stubAdapter) Carrier() string { return a.name }
func (a *stubAdapter) Adapt(context.Context, ports.RawInput) (*ports.AdapterPayload, error) {
	return a.payload, a.err
}

type stubFetcher struct {
	raw     ports.RawInput
	err     error
	fetches int
}

func (f *stubFetcher) Fetch(context.Context, string, string) (ports.RawInput, error) {
	f.fetches++
	return f.raw, f.err
}

type stubCache struct {
	docs map[string]*domain.ShipmentTracking
	sets int
}

func newStubCache() *stubCache {
	return &stubCache{docs: make(map[string]*domain.ShipmentTracking)}
}

func (c *stubCache) Get(_ context.Context, carrier string, refType domain.RefType, refNum string) (*domain.ShipmentTracking, bool, error) {
	doc, ok := c.docs[carrier+"/"+string(refType)+"/"+refNum]
	return doc, ok, nil
}

func (c *stubCache) Set(_ context.Context, carrier string, refType domain.RefType, refNum string, doc *domain.ShipmentTracking) error {
	c.sets++
	c.docs[carrier+"/"+string(refType)+"/"+refNum] = doc
	return nil
}

type stubHistory struct {
	latest  *domain.ShipmentTracking
	inserts int
}

func (h *stubHistory) Insert(context.Context, string, domain.RefType, string, *domain.ShipmentTracking) error {
	h.inserts++
	return nil
}

func (h *stubHistory) FindLatest(context.Context, string, domain.RefType, string) (*domain.ShipmentTracking, error) {
	return h.latest, nil
}

func testService(adapter ports.SourceAdapter, fetcher ports.Fetcher, cache ports.DocumentCache, history ports.HistoryRepository) ports.TrackingService {
	assembler := mapping.NewDeterministicAssembler(
		func() time.Time { return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC) },
		func() string { return "id" },
	)
	return NewTrackingService([]ports.SourceAdapter{adapter}, fetcher, cache, history, assembler, zerolog.Nop())
}

func trackInput() ports.TrackInput {
	return ports.TrackInput{Carrier: "zim", RefNum: "ZIMU1234567", RefType: domain.RefTypeContainer}
}

func TestTrackUnknownCarrier(t *testing.T) {
	svc := testService(&stubAdapter{name: "zim"}, &stubFetcher{}, nil, nil)

	_, err := svc.Track(context.Background(), ports.TrackInput{Carrier: "maersk", RefNum: "X"})
	if !errors.Is(err, domain.ErrUnknownCarrier) {
		t.Fatalf("expected ErrUnknownCarrier, got %v", err)
	}
}

func TestTrackCacheHit(t *testing.T) {
	cache := newStubCache()
	cached := domain.NewShipmentTracking()
	cached.RefNum = domain.Str("ZIMU1234567")
	cache.docs["zim/Container/ZIMU1234567"] = cached

	fetcher := &stubFetcher{}
	svc := testService(&stubAdapter{name: "zim", payload: &ports.AdapterPayload{}}, fetcher, cache, nil)

	doc, err := svc.Track(context.Background(), trackInput())
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if doc != cached {
		t.Fatalf("expected the cached document")
	}
	if fetcher.fetches != 0 {
		t.Fatalf("cache hit must not fetch, got %d fetches", fetcher.fetches)
	}
}

func TestTrackMissFetchesAndStores(t *testing.T) {
	cache := newStubCache()
	history := &stubHistory{}
	svc := testService(
		&stubAdapter{name: "zim", payload: &ports.AdapterPayload{}},
		&stubFetcher{raw: ports.RawInput{JSON: map[string]any{}}},
		cache, history,
	)

	doc, err := svc.Track(context.Background(), trackInput())
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if doc == nil || *doc.RefNum != "ZIMU1234567" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if cache.sets != 1 || history.inserts != 1 {
		t.Fatalf("expected cache set and history insert, got %d/%d", cache.sets, history.inserts)
	}
}

func TestTrackFetchFailureServesStale(t *testing.T) {
	stale := domain.NewShipmentTracking()
	stale.RefNum = domain.Str("ZIMU1234567")
	history := &stubHistory{latest: stale}

	svc := testService(
		&stubAdapter{name: "zim", payload: &ports.AdapterPayload{}},
		&stubFetcher{err: errors.New("connection refused")},
		nil, history,
	)

	doc, err := svc.Track(context.Background(), trackInput())
	if err != nil {
		t.Fatalf("expected stale fallback, got error %v", err)
	}
	if doc != stale {
		t.Fatalf("expected the historical document")
	}
}

func TestTrackFetchFailureNoHistory(t *testing.T) {
	svc := testService(
		&stubAdapter{name: "zim", payload: &ports.AdapterPayload{}},
		&stubFetcher{err: errors.New("connection refused")},
		nil, nil,
	)

	_, err := svc.Track(context.Background(), trackInput())
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestMapRawAdapterError(t *testing.T) {
	svc := testService(
		&stubAdapter{name: "zim", err: errors.New("not a zim payload")},
		&stubFetcher{}, nil, nil,
	)

	_, err := svc.MapRaw(context.Background(), trackInput(), ports.RawInput{HTML: "<html></html>"})
	if !errors.Is(err, domain.ErrBadPayload) {
		t.Fatalf("expected ErrBadPayload, got %v", err)
	}
}

type panickingAdapter struct{}

func (panickingAdapter) Carrier() string { return "zim" }
func (panickingAdapter) Adapt(context.Context, ports.RawInput) (*ports.AdapterPayload, error) {
	var m map[string]any
	m["boom"] = true // nil map write
	return nil, nil
}

func TestMapRawPanicRecovery(t *testing.T) {
	svc := testService(panickingAdapter{}, &stubFetcher{}, nil, nil)

	_, err := svc.MapRaw(context.Background(), trackInput(), ports.RawInput{JSON: map[string]any{}})
	if !errors.Is(err, domain.ErrBadPayload) {
		t.Fatalf("expected ErrBadPayload from panic recovery, got %v", err)
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	cache := newStubCache()
	cached := domain.NewShipmentTracking()
	cache.docs["zim/Container/ZIMU1234567"] = cached

	fetcher := &stubFetcher{raw: ports.RawInput{JSON: map[string]any{}}}
	svc := testService(&stubAdapter{name: "zim", payload: &ports.AdapterPayload{}}, fetcher, cache, nil)

	doc, err := svc.Refresh(context.Background(), trackInput())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if doc == cached {
		t.Fatalf("refresh must not serve from cache")
	}
	if fetcher.fetches != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.fetches)
	}
}
