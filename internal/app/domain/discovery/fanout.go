package discovery

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/places"
	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

// fanoutResult carries one sub-query's outcome.
type fanoutResult struct {
	spec    QuerySpec
	records []places.PlaceRecord
	err     error
}

// executeFanout runs every query spec concurrently against the gateway
// and flattens the successful results. A failed sub-query contributes
// zero records; the call fails only when all sub-queries fail. The join
// is full: the caller resumes once every sub-query has settled.
func (s *ServiceImpl) executeFanout(ctx context.Context, anchor models.GeoAnchor, specs []QuerySpec) ([]places.PlaceRecord, error) {
	ctx, span := otel.Tracer("DiscoveryService").Start(ctx, "executeFanout", trace.WithAttributes(
		attribute.Int("fanout.queries", len(specs)),
	))
	defer span.End()

	if len(specs) == 0 {
		return nil, nil
	}

	resultCh := make(chan fanoutResult, len(specs))

	var wg sync.WaitGroup
	for _, spec := range specs {
		wg.Add(1)
		go func(spec QuerySpec) {
			defer wg.Done()
			records, err := s.gateway.SearchNearby(ctx, anchor.Latitude, anchor.Longitude, spec.RadiusMeters, spec.PlaceType, spec.Keyword)
			resultCh <- fanoutResult{spec: spec, records: records, err: err}
		}(spec)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var combined []places.PlaceRecord
	failures := 0
	for result := range resultCh {
		if result.err != nil {
			failures++
			s.logger.Warn("Sub-query failed",
				zap.String("type", result.spec.PlaceType),
				zap.String("keyword", result.spec.Keyword),
				zap.Int("radius_m", result.spec.RadiusMeters),
				zap.Error(result.err))
			continue
		}
		combined = append(combined, result.records...)
	}

	span.SetAttributes(
		attribute.Int("fanout.failures", failures),
		attribute.Int("fanout.records", len(combined)),
	)

	if failures == len(specs) {
		span.SetStatus(codes.Error, "All sub-queries failed")
		return nil, fmt.Errorf("%w: all %d sub-queries failed", models.ErrProviderUnavailable, len(specs))
	}

	span.SetStatus(codes.Ok, "Fan-out completed")
	return combined, nil
}
