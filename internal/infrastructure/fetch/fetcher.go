// Package fetch implements the carrier page fetcher over HTTP. Carriers
// that expose a JSON API yield a decoded object; the rest yield the page
// HTML for the adapters to parse.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

// Endpoint describes how to reach one carrier: a URL template with a %s
// placeholder for the reference number, and whether the response body is
// JSON or HTML.
type Endpoint struct {
	URLTemplate string
	JSON        bool
}

type Fetcher struct {
	client    *resty.Client
	endpoints map[string]Endpoint
}

// New builds a Fetcher with retries on transient failures. endpoints is
// keyed by lowercase carrier name.
func New(endpoints map[string]Endpoint, timeout time.Duration, retryCount int) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(2 * time.Second).
		SetHeader("User-Agent", "jtrack-tracking/1.0")

	return &Fetcher{client: client, endpoints: endpoints}
}

func (f *Fetcher) Fetch(ctx context.Context, carrier, refNum string) (ports.RawInput, error) {
	endpoint, ok := f.endpoints[strings.ToLower(carrier)]
	if !ok {
		return ports.RawInput{}, fmt.Errorf("%w: %s", domain.ErrUnknownCarrier, carrier)
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf(endpoint.URLTemplate, refNum))
	if err != nil {
		return ports.RawInput{}, fmt.Errorf("fetch %s %s: %w", carrier, refNum, err)
	}
	if resp.IsError() {
		return ports.RawInput{}, fmt.Errorf("fetch %s %s: status %d", carrier, refNum, resp.StatusCode())
	}

	if endpoint.JSON {
		var body map[string]any
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return ports.RawInput{}, fmt.Errorf("fetch %s %s: decode: %w", carrier, refNum, err)
		}
		return ports.RawInput{JSON: body}, nil
	}
	return ports.RawInput{HTML: string(resp.Body())}, nil
}
