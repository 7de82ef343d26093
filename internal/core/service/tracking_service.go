package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jtrack/tracking-system/internal/api/metrics"
	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/mapping"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

type trackingService struct {
	adapters  map[string]ports.SourceAdapter
	fetcher   ports.Fetcher
	cache     ports.DocumentCache
	history   ports.HistoryRepository
	assembler *mapping.Assembler
	log       zerolog.Logger
}

// NewTrackingService wires the scrape-and-map pipeline. cache and history
// may be nil; the service then runs fetch-and-map only.
func NewTrackingService(
	adapters []ports.SourceAdapter,
	fetcher ports.Fetcher,
	cache ports.DocumentCache,
	history ports.HistoryRepository,
	assembler *mapping.Assembler,
	log zerolog.Logger,
) ports.TrackingService {
	byName := make(map[string]ports.SourceAdapter, len(adapters))
	for _, a := range adapters {
		byName[strings.ToLower(a.Carrier())] = a
	}
	return &trackingService{
		adapters:  byName,
		fetcher:   fetcher,
		cache:     cache,
		history:   history,
		assembler: assembler,
		log:       log,
	}
}

// Track serves from cache when possible, otherwise fetches, adapts, and
// maps. When the live fetch fails and history holds a previous mapping,
// the stale document is returned with a log entry noting the staleness.
func (s *trackingService) Track(ctx context.Context, input ports.TrackInput) (*domain.ShipmentTracking, error) {
	adapter, err := s.adapter(input.Carrier)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		doc, hit, cacheErr := s.cache.Get(ctx, input.Carrier, input.RefType, input.RefNum)
		if cacheErr != nil {
			s.log.Warn().Err(cacheErr).Str("ref_num", input.RefNum).Msg("cache read failed, fetching anyway")
		} else if hit {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("carrier", input.Carrier).Str("ref_num", input.RefNum).Msg("served from cache")
			return doc, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	return s.fetchAndMap(ctx, adapter, input)
}

// Refresh bypasses the cache read so the background workers always pull a
// fresh page.
func (s *trackingService) Refresh(ctx context.Context, input ports.TrackInput) (*domain.ShipmentTracking, error) {
	adapter, err := s.adapter(input.Carrier)
	if err != nil {
		return nil, err
	}
	return s.fetchAndMap(ctx, adapter, input)
}

// MapRaw maps a caller-supplied raw payload without touching the fetcher.
func (s *trackingService) MapRaw(ctx context.Context, input ports.TrackInput, raw ports.RawInput) (*domain.ShipmentTracking, error) {
	adapter, err := s.adapter(input.Carrier)
	if err != nil {
		return nil, err
	}
	return s.mapInput(ctx, adapter, input, raw)
}

func (s *trackingService) fetchAndMap(ctx context.Context, adapter ports.SourceAdapter, input ports.TrackInput) (*domain.ShipmentTracking, error) {
	raw, err := s.fetcher.Fetch(ctx, input.Carrier, input.RefNum)
	if err != nil {
		metrics.ScrapesTotal.WithLabelValues(input.Carrier, "fetch_error").Inc()
		if s.history != nil {
			if stale, histErr := s.history.FindLatest(ctx, input.Carrier, input.RefType, input.RefNum); histErr == nil && stale != nil {
				s.log.Warn().Err(err).Str("ref_num", input.RefNum).Msg("fetch failed, serving last known document")
				return stale, nil
			}
		}
		return nil, fmt.Errorf("track %s %s: %w: %v", input.Carrier, input.RefNum, domain.ErrFetchFailed, err)
	}

	doc, err := s.mapInput(ctx, adapter, input, raw)
	if err != nil {
		return nil, err
	}

	if s.history != nil {
		if err := s.history.Insert(ctx, input.Carrier, input.RefType, input.RefNum, doc); err != nil {
			s.log.Warn().Err(err).Str("ref_num", input.RefNum).Msg("failed to record scrape history")
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, input.Carrier, input.RefType, input.RefNum, doc); err != nil {
			s.log.Warn().Err(err).Str("ref_num", input.RefNum).Msg("failed to cache document")
		}
	}
	return doc, nil
}

// mapInput runs the adapter and engine inside a recover boundary: a
// misbehaving payload shape must surface as ErrBadPayload, never as a
// process crash.
func (s *trackingService) mapInput(ctx context.Context, adapter ports.SourceAdapter, input ports.TrackInput, raw ports.RawInput) (doc *domain.ShipmentTracking, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ScrapesTotal.WithLabelValues(input.Carrier, "panic").Inc()
			doc = nil
			err = fmt.Errorf("map %s %s: %w: %v", input.Carrier, input.RefNum, domain.ErrBadPayload, r)
		}
	}()

	start := time.Now()
	payload, err := adapter.Adapt(ctx, raw)
	if err != nil {
		metrics.ScrapesTotal.WithLabelValues(input.Carrier, "adapt_error").Inc()
		return nil, fmt.Errorf("map %s %s: %w: %v", input.Carrier, input.RefNum, domain.ErrBadPayload, err)
	}

	doc = s.assembler.Assemble(input, *payload)
	metrics.MappingDuration.WithLabelValues(input.Carrier).Observe(time.Since(start).Seconds())
	metrics.ScrapesTotal.WithLabelValues(input.Carrier, "ok").Inc()

	s.log.Info().
		Str("carrier", input.Carrier).
		Str("ref_num", input.RefNum).
		Int("containers", len(doc.Containers)).
		Msg("tracking document assembled")
	return doc, nil
}

func (s *trackingService) adapter(carrier string) (ports.SourceAdapter, error) {
	a, ok := s.adapters[strings.ToLower(carrier)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCarrier, carrier)
	}
	return a, nil
}
