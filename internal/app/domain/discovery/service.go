package discovery

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/places"
	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
	"github.com/meet0129/Travion.ai-sub000/internal/app/observability/metrics"
	"github.com/meet0129/Travion.ai-sub000/internal/pkg/cache"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the caller-facing contract of the discovery engine.
type Service interface {
	// ResolveDestination turns free-text into a geographic anchor.
	ResolveDestination(ctx context.Context, destination string) (models.GeoAnchor, error)

	// DiscoverCategory runs the plan -> fan-out -> aggregate pipeline
	// for one category around the anchor.
	DiscoverCategory(ctx context.Context, anchor models.GeoAnchor, category models.Category, perCategoryCap int) ([]models.PlaceItem, error)

	// DiscoverCategories runs DiscoverCategory for each requested
	// category independently and concurrently. A category whose
	// sub-queries all fail yields an empty list, never a hard error.
	DiscoverCategories(ctx context.Context, anchor models.GeoAnchor, categories []models.Category, perCategoryCap int) (map[models.Category][]models.PlaceItem, error)

	// FindSimilar fetches up to limit places like the base item,
	// excluding the base itself and every token in exclude.
	FindSimilar(ctx context.Context, base models.PlaceItem, exclude map[string]struct{}, limit int) ([]models.PlaceItem, error)
}

// ServiceImpl implements Service on top of the provider gateway.
type ServiceImpl struct {
	gateway  places.Gateway
	pipeline *Pipeline
	caches   *cache.CacheManager
	logger   *zap.Logger

	// Collapses concurrent resolutions of the same destination text
	// into one provider call.
	resolveGroup singleflight.Group
}

func NewService(gateway places.Gateway, pipeline *Pipeline, caches *cache.CacheManager, logger *zap.Logger) *ServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceImpl{
		gateway:  gateway,
		pipeline: pipeline,
		caches:   caches,
		logger:   logger,
	}
}

func (s *ServiceImpl) DiscoverCategory(ctx context.Context, anchor models.GeoAnchor, category models.Category, perCategoryCap int) ([]models.PlaceItem, error) {
	ctx, span := otel.Tracer("DiscoveryService").Start(ctx, "DiscoverCategory", trace.WithAttributes(
		attribute.String("discovery.category", category.String()),
		attribute.Float64("discovery.lat", anchor.Latitude),
		attribute.Float64("discovery.lng", anchor.Longitude),
		attribute.Int("discovery.cap", perCategoryCap),
	))
	defer span.End()

	if _, err := models.ParseCategory(category.String()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid category")
		return nil, err
	}

	cacheKey := cache.NewCacheKeyBuilder().
		AddAnchor(anchor.Latitude, anchor.Longitude).
		AddCategory(category.String()).
		Add("cap", perCategoryCap).
		BuildOrDefault()
	if cacheKey != "" {
		if items, ok := s.caches.CategoryResults.Get(cacheKey); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return items, nil
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	records, err := s.executeFanout(ctx, anchor, QueryPlan(category))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Fan-out failed")
		return nil, err
	}

	items := s.pipeline.Aggregate(records, perCategoryCap)

	s.logger.Info("Category discovery completed",
		zap.String("category", category.String()),
		zap.Int("raw_records", len(records)),
		zap.Int("ranked_items", len(items)))

	metrics.Get().DiscoveryRequestsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("category", category.String())))

	if cacheKey != "" {
		s.caches.CategoryResults.Set(cacheKey, items)
	}

	span.SetAttributes(attribute.Int("discovery.results", len(items)))
	span.SetStatus(codes.Ok, "Category discovery completed")
	return items, nil
}

func (s *ServiceImpl) DiscoverCategories(ctx context.Context, anchor models.GeoAnchor, categories []models.Category, perCategoryCap int) (map[models.Category][]models.PlaceItem, error) {
	ctx, span := otel.Tracer("DiscoveryService").Start(ctx, "DiscoverCategories", trace.WithAttributes(
		attribute.Int("discovery.categories", len(categories)),
	))
	defer span.End()

	results := make(map[models.Category][]models.PlaceItem, len(categories))
	if len(categories) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, category := range categories {
		g.Go(func() error {
			items, err := s.DiscoverCategory(gctx, anchor, category, perCategoryCap)
			if err != nil {
				// Provider trouble for one category degrades to an
				// empty list; the session keeps its other categories.
				s.logger.Warn("Category discovery degraded to empty",
					zap.String("category", category.String()),
					zap.Error(err))
				items = []models.PlaceItem{}
			}
			mu.Lock()
			results[category] = items
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Category discovery aborted")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Category discovery completed")
	return results, nil
}
