// Package regionapi reads Indonesian administrative divisions from the public
// api-wilayah-indonesia directory.
package regionapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pupuk/storefront/internal/domain/region"
	"github.com/pupuk/storefront/internal/infrastructure/telemetry"
)

// DefaultBaseURL is the public directory root.
const DefaultBaseURL = "https://emsifa.github.io/api-wilayah-indonesia/api"

const maxResponseSize = 4 << 20

// Observer receives one call per lookup. Implemented by the metrics package.
type Observer interface {
	ObserveRegionLookup(level region.Level, ok bool, elapsed time.Duration)
}

// Option configures a Client
type Option func(*Client)

// WithObserver reports every lookup to o
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// Client implements region.Catalog over HTTP. Lookups never return errors;
// any failure yields an empty slice and a warning log.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	observer   Observer
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("regionapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListProvinces(ctx context.Context) []region.Node {
	return c.fetch(ctx, region.LevelProvince, "", "/provinces.json")
}

func (c *Client) ListRegencies(ctx context.Context, provinceID string) []region.Node {
	return c.fetch(ctx, region.LevelRegency, provinceID, "/regencies/"+url.PathEscape(provinceID)+".json")
}

func (c *Client) ListDistricts(ctx context.Context, regencyID string) []region.Node {
	return c.fetch(ctx, region.LevelDistrict, regencyID, "/districts/"+url.PathEscape(regencyID)+".json")
}

func (c *Client) ListVillages(ctx context.Context, districtID string) []region.Node {
	return c.fetch(ctx, region.LevelVillage, districtID, "/villages/"+url.PathEscape(districtID)+".json")
}

func (c *Client) fetch(ctx context.Context, level region.Level, parentID, path string) []region.Node {
	attrs := []any{telemetry.SpanAttrRegionLevel, level.String()}
	if parentID != "" {
		attrs = append(attrs, telemetry.SpanAttrParentID, parentID)
	}
	ctx, span := telemetry.StartClientSpan(ctx, "regionapi", "fetch", attrs...)
	defer span.End()

	start := time.Now()
	nodes, err := c.get(ctx, path)
	if c.observer != nil {
		c.observer.ObserveRegionLookup(level, err == nil, time.Since(start))
	}
	if err != nil {
		telemetry.RecordError(span, err)
		c.logger.Warn("Region lookup failed",
			zap.String("level", level.String()),
			zap.String("path", path),
			zap.Error(err),
		)
		return []region.Node{}
	}
	SortByName(nodes)
	return nodes
}

func (c *Client) get(ctx context.Context, path string) ([]region.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected HTTP %d", resp.StatusCode)
	}

	var nodes []region.Node
	if err := json.Unmarshal(body, &nodes); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return nodes, nil
}

// SortByName orders nodes by name using Indonesian collation.
func SortByName(nodes []region.Node) {
	col := collate.New(language.Indonesian, collate.Loose)
	slices.SortStableFunc(nodes, func(a, b region.Node) int {
		return col.CompareString(a.Name, b.Name)
	})
}

var _ region.Catalog = (*Client)(nil)
