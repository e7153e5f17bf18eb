package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
	"github.com/meet0129/Travion.ai-sub000/internal/app/observability/metrics"
)

var _ Gateway = (*GoogleGateway)(nil)

// Gateway is the single narrow seam between the engine and the places
// provider. The engine never talks to the network except through it.
type Gateway interface {
	// SearchText runs a free-text search and returns the provider's
	// relevance-ordered records.
	SearchText(ctx context.Context, query string) ([]PlaceRecord, error)
	// SearchNearby returns records within radiusMeters of the given
	// coordinate. placeType and keyword are both optional.
	SearchNearby(ctx context.Context, lat, lng float64, radiusMeters int, placeType, keyword string) ([]PlaceRecord, error)
}

// GoogleGateway talks to the Google Places Web Service.
type GoogleGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGoogleGateway(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *GoogleGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleGateway{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (g *GoogleGateway) SearchText(ctx context.Context, query string) ([]PlaceRecord, error) {
	ctx, span := otel.Tracer("PlacesGateway").Start(ctx, "SearchText", trace.WithAttributes(
		attribute.String("places.query", query),
	))
	defer span.End()

	params := url.Values{}
	params.Set("query", query)

	records, err := g.search(ctx, "textsearch", params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Text search failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("places.results", len(records)))
	span.SetStatus(codes.Ok, "Text search completed")
	return records, nil
}

func (g *GoogleGateway) SearchNearby(ctx context.Context, lat, lng float64, radiusMeters int, placeType, keyword string) ([]PlaceRecord, error) {
	ctx, span := otel.Tracer("PlacesGateway").Start(ctx, "SearchNearby", trace.WithAttributes(
		attribute.Float64("places.lat", lat),
		attribute.Float64("places.lng", lng),
		attribute.Int("places.radius_m", radiusMeters),
		attribute.String("places.type", placeType),
		attribute.String("places.keyword", keyword),
	))
	defer span.End()

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", strconv.Itoa(radiusMeters))
	if placeType != "" {
		params.Set("type", placeType)
	}
	if keyword != "" {
		params.Set("keyword", keyword)
	}

	records, err := g.search(ctx, "nearbysearch", params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Nearby search failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("places.results", len(records)))
	span.SetStatus(codes.Ok, "Nearby search completed")
	return records, nil
}

// search issues one request against the given endpoint. Any non-success
// outcome surfaces as ErrProviderUnavailable carrying the upstream
// status and message; ZERO_RESULTS is success with an empty list.
func (g *GoogleGateway) search(ctx context.Context, endpoint string, params url.Values) (records []PlaceRecord, err error) {
	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("%s/%s/json?%s", g.baseURL, endpoint, params.Encode())

	start := time.Now()
	defer func() {
		m := metrics.Get()
		m.ProviderCallDuration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("endpoint", endpoint)))
		if err != nil {
			m.ProviderCallErrorsTotal.Add(ctx, 1,
				metric.WithAttributes(attribute.String("endpoint", endpoint)))
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", models.ErrProviderUnavailable, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("Places request failed",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("Places request returned non-OK status",
			zap.String("endpoint", endpoint),
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: http status %d", models.ErrProviderUnavailable, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", models.ErrProviderUnavailable, err)
	}

	switch body.Status {
	case "OK", "ZERO_RESULTS":
	default:
		g.logger.Warn("Places request rejected by provider",
			zap.String("endpoint", endpoint),
			zap.String("provider_status", body.Status),
			zap.String("provider_message", body.ErrorMessage))
		return nil, fmt.Errorf("%w: %s: %s", models.ErrProviderUnavailable, body.Status, body.ErrorMessage)
	}

	g.logger.Debug("Places request completed",
		zap.String("endpoint", endpoint),
		zap.Int("results", len(body.Results)),
		zap.Duration("elapsed", time.Since(start)))

	return body.Results, nil
}
