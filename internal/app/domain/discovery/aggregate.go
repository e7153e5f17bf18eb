package discovery

import (
	"math"
	"sort"

	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/places"
	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

const (
	// ratingTieWindow treats ratings within this delta as equal; the
	// tie breaks on rating count instead.
	ratingTieWindow = 0.1
	// minRatingCount is the confidence floor for the quality filter.
	minRatingCount = 5
)

// Pipeline is the normalize -> dedup -> quality-filter -> rank -> cap
// aggregation shared by category discovery and the similarity expander.
// It is pure: same raw input and limit always yield the same output.
type Pipeline struct {
	photoBaseURL string
	apiKey       string
}

func NewPipeline(photoBaseURL, apiKey string) *Pipeline {
	return &Pipeline{photoBaseURL: photoBaseURL, apiKey: apiKey}
}

// Aggregate runs the full pipeline over raw provider records and
// returns at most limit ranked items. Duplicates across sub-queries are
// routine and collapse silently to the first occurrence.
func (p *Pipeline) Aggregate(records []places.PlaceRecord, limit int) []models.PlaceItem {
	items := p.normalize(records)
	items = dedupe(items)
	items = qualityFilter(items)
	rank(items)

	if limit < 0 {
		limit = 0
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Normalize maps a single raw record to a PlaceItem, resolving the
// photo URL when a reference is present.
func (p *Pipeline) Normalize(rec places.PlaceRecord) models.PlaceItem {
	return models.PlaceItem{
		ID:               rec.PlaceID,
		Name:             rec.Name,
		Address:          rec.Address(),
		Rating:           rec.Rating,
		UserRatingsTotal: rec.UserRatingsTotal,
		PhotoURL:         places.PhotoURL(p.photoBaseURL, rec.PhotoReference(), p.apiKey),
		PriceLevel:       rec.PriceLevel,
		Types:            rec.Types,
		Latitude:         rec.Geometry.Location.Lat,
		Longitude:        rec.Geometry.Location.Lng,
	}
}

func (p *Pipeline) normalize(records []places.PlaceRecord) []models.PlaceItem {
	items := make([]models.PlaceItem, 0, len(records))
	for _, rec := range records {
		items = append(items, p.Normalize(rec))
	}
	return items
}

// dedupe keeps the first occurrence of each identity token, preserving
// encounter order.
func dedupe(items []models.PlaceItem) []models.PlaceItem {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// qualityFilter drops items missing any of: rating, rating count of at
// least minRatingCount, resolved photo URL, name, address. Low
// confidence or visually incomplete entries never reach callers.
func qualityFilter(items []models.PlaceItem) []models.PlaceItem {
	out := items[:0]
	for _, item := range items {
		if item.Rating == nil {
			continue
		}
		if item.UserRatingsTotal == nil || *item.UserRatingsTotal < minRatingCount {
			continue
		}
		if item.PhotoURL == "" || item.Name == "" || item.Address == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// rank sorts by rating descending; ratings within ratingTieWindow
// compare by rating count descending. The window is inclusive: ratings
// exactly 0.1 apart are a tie, and since provider ratings come in 0.1
// steps the raw subtraction lands a hair above the window (4.7-4.6 is
// not exactly 0.1 in float64), so the comparison carries epsilon
// slack. The sort is stable, so full ties keep encounter order.
func rank(items []models.PlaceItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		diff := *a.Rating - *b.Rating
		if math.Abs(diff) > ratingTieWindow+1e-9 {
			return diff > 0
		}
		return *a.UserRatingsTotal > *b.UserRatingsTotal
	})
}
