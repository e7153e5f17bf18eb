package discovery

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

// ResolveDestination resolves free-text into an anchor coordinate using
// the provider's free-text search, trusting its relevance ranking: the
// first returned record wins. Zero records or a record without a usable
// coordinate resolve to ErrNotFound; transport failures surface as
// ErrProviderUnavailable. No retry happens at this layer.
func (s *ServiceImpl) ResolveDestination(ctx context.Context, destination string) (models.GeoAnchor, error) {
	ctx, span := otel.Tracer("DiscoveryService").Start(ctx, "ResolveDestination")
	defer span.End()

	destination = strings.TrimSpace(destination)
	span.SetAttributes(attribute.String("discovery.destination", destination))

	if destination == "" {
		span.SetStatus(codes.Error, "Empty destination")
		return models.GeoAnchor{}, models.ErrNotFound
	}

	cacheKey := strings.ToLower(destination)
	if anchor, ok := s.caches.Anchors.Get(cacheKey); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return anchor, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	result, err, _ := s.resolveGroup.Do(cacheKey, func() (interface{}, error) {
		return s.resolveUncached(ctx, destination)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Resolution failed")
		return models.GeoAnchor{}, err
	}

	anchor := result.(models.GeoAnchor)
	s.caches.Anchors.Set(cacheKey, anchor)

	span.SetAttributes(
		attribute.Float64("anchor.lat", anchor.Latitude),
		attribute.Float64("anchor.lng", anchor.Longitude),
	)
	span.SetStatus(codes.Ok, "Destination resolved")
	return anchor, nil
}

func (s *ServiceImpl) resolveUncached(ctx context.Context, destination string) (models.GeoAnchor, error) {
	records, err := s.gateway.SearchText(ctx, destination)
	if err != nil {
		return models.GeoAnchor{}, err
	}
	if len(records) == 0 {
		s.logger.Info("Destination resolved to zero records",
			zap.String("destination", destination))
		return models.GeoAnchor{}, models.ErrNotFound
	}

	first := records[0]
	loc := first.Geometry.Location
	if !models.ValidateCoordinates(loc.Lat, loc.Lng) {
		s.logger.Warn("First record carries no usable coordinate",
			zap.String("destination", destination),
			zap.String("place_id", first.PlaceID))
		return models.GeoAnchor{}, models.ErrNotFound
	}

	return models.GeoAnchor{
		Name:      first.Name,
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
	}, nil
}
