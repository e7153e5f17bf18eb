package discovery

import (
	"context"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

// FindSimilar replenishes a pool with places like the base item: one
// nearby query centered on the base, keyed by its dominant type tag (or
// failing that the first token of its name), fed through the same
// aggregation pipeline, then stripped of the base and the exclude set.
// An empty result is not an error; it means nothing similar qualified.
func (s *ServiceImpl) FindSimilar(ctx context.Context, base models.PlaceItem, exclude map[string]struct{}, limit int) ([]models.PlaceItem, error) {
	ctx, span := otel.Tracer("DiscoveryService").Start(ctx, "FindSimilar", trace.WithAttributes(
		attribute.String("similar.base_id", base.ID),
		attribute.Int("similar.exclude", len(exclude)),
		attribute.Int("similar.limit", limit),
	))
	defer span.End()

	if limit <= 0 {
		return []models.PlaceItem{}, nil
	}

	keyword := similarityKeyword(base)
	span.SetAttributes(attribute.String("similar.keyword", keyword))

	records, err := s.gateway.SearchNearby(ctx, base.Latitude, base.Longitude, radiusExpander, "", keyword)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Similarity search failed")
		return nil, err
	}

	// Aggregate without a cap first; the cap applies after stripping
	// the base and already-known tokens.
	ranked := s.pipeline.Aggregate(records, len(records))

	out := make([]models.PlaceItem, 0, limit)
	for _, item := range ranked {
		if item.ID == base.ID {
			continue
		}
		if _, excluded := exclude[item.ID]; excluded {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}

	s.logger.Info("Similarity expansion completed",
		zap.String("base_id", base.ID),
		zap.String("keyword", keyword),
		zap.Int("candidates", len(ranked)),
		zap.Int("returned", len(out)))

	span.SetAttributes(attribute.Int("similar.results", len(out)))
	span.SetStatus(codes.Ok, "Similarity expansion completed")
	return out, nil
}

// similarityKeyword derives the follow-up query keyword: the first type
// tag when present, otherwise the first word of the name.
func similarityKeyword(base models.PlaceItem) string {
	if len(base.Types) > 0 && base.Types[0] != "" {
		return strings.ReplaceAll(base.Types[0], "_", " ")
	}
	tokens := strings.FieldsFunc(base.Name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(tokens) == 0 {
		return base.Name
	}
	return tokens[0]
}
