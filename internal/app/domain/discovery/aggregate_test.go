package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/places"
	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// qualified returns a record that passes every quality filter condition.
func qualified(id string, rating float64, count int) places.PlaceRecord {
	return places.PlaceRecord{
		PlaceID:          id,
		Name:             "Place " + id,
		FormattedAddress: "1 Main St",
		Rating:           floatPtr(rating),
		UserRatingsTotal: intPtr(count),
		Photos:           []places.Photo{{PhotoReference: "photo-" + id}},
		Geometry:         places.Geometry{Location: places.Location{Lat: 41.38, Lng: 2.17}},
	}
}

func newTestPipeline() *Pipeline {
	return NewPipeline("https://maps.googleapis.com/maps/api/place", "test-key")
}

func TestAggregateDeduplicatesKeepingFirst(t *testing.T) {
	p := newTestPipeline()

	first := qualified("a", 4.0, 100)
	first.Name = "First A"
	second := qualified("a", 4.9, 900)
	second.Name = "Second A"

	items := p.Aggregate([]places.PlaceRecord{first, second, qualified("b", 3.5, 50)}, 10)

	require.Len(t, items, 2)
	var a *models.PlaceItem
	for i := range items {
		if items[i].ID == "a" {
			a = &items[i]
		}
	}
	require.NotNil(t, a)
	assert.Equal(t, "First A", a.Name, "the first occurrence of a duplicate identity wins")
}

func TestAggregateQualityFilter(t *testing.T) {
	p := newTestPipeline()

	noRating := qualified("no-rating", 4.5, 100)
	noRating.Rating = nil

	lowCount := qualified("low-count", 4.5, 4)

	noCount := qualified("no-count", 4.5, 100)
	noCount.UserRatingsTotal = nil

	noPhoto := qualified("no-photo", 4.5, 100)
	noPhoto.Photos = nil

	noName := qualified("no-name", 4.5, 100)
	noName.Name = ""

	noAddress := qualified("no-address", 4.5, 100)
	noAddress.FormattedAddress = ""
	noAddress.Vicinity = ""

	atFloor := qualified("at-floor", 4.5, 5)

	items := p.Aggregate([]places.PlaceRecord{
		noRating, lowCount, noCount, noPhoto, noName, noAddress, atFloor,
	}, 10)

	require.Len(t, items, 1)
	assert.Equal(t, "at-floor", items[0].ID, "a rating count of exactly five passes the floor")
}

func TestAggregateVicinityServesAsAddress(t *testing.T) {
	p := newTestPipeline()

	rec := qualified("v", 4.2, 40)
	rec.FormattedAddress = ""
	rec.Vicinity = "Old Town"

	items := p.Aggregate([]places.PlaceRecord{rec}, 10)

	require.Len(t, items, 1)
	assert.Equal(t, "Old Town", items[0].Address)
}

func TestAggregateRanksByRatingThenCount(t *testing.T) {
	p := newTestPipeline()

	items := p.Aggregate([]places.PlaceRecord{
		qualified("mid", 4.3, 5000),
		qualified("top", 4.8, 120),
		qualified("low", 3.9, 9000),
	}, 10)

	require.Len(t, items, 3)
	assert.Equal(t, []string{"top", "mid", "low"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestAggregateTieWindowBreaksOnCount(t *testing.T) {
	p := newTestPipeline()

	// 4.6 and 4.7 differ by exactly the tie window, so the higher count
	// wins; 4.4 is outside the window and ranks strictly below both.
	items := p.Aggregate([]places.PlaceRecord{
		qualified("few", 4.7, 80),
		qualified("many", 4.6, 2000),
		qualified("below", 4.4, 50000),
	}, 10)

	require.Len(t, items, 3)
	assert.Equal(t, "many", items[0].ID)
	assert.Equal(t, "few", items[1].ID)
	assert.Equal(t, "below", items[2].ID)
}

func TestAggregateTieWindowIsInclusiveAtExactTenth(t *testing.T) {
	p := newTestPipeline()

	// Every adjacent 0.1 step must tie even though the float64
	// subtraction is not exactly 0.1.
	for _, pair := range [][2]float64{{4.7, 4.6}, {4.0, 3.9}, {3.3, 3.2}, {4.9, 4.8}} {
		items := p.Aggregate([]places.PlaceRecord{
			qualified("higher-rating", pair[0], 10),
			qualified("higher-count", pair[1], 5000),
		}, 10)

		require.Len(t, items, 2)
		assert.Equal(t, "higher-count", items[0].ID,
			"%.1f vs %.1f is inside the window, count breaks the tie", pair[0], pair[1])
	}
}

func TestAggregateStableOnFullTie(t *testing.T) {
	p := newTestPipeline()

	items := p.Aggregate([]places.PlaceRecord{
		qualified("first", 4.5, 100),
		qualified("second", 4.5, 100),
	}, 10)

	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].ID, "full ties keep encounter order")
}

func TestAggregateCap(t *testing.T) {
	p := newTestPipeline()

	raw := []places.PlaceRecord{
		qualified("a", 4.9, 100),
		qualified("b", 4.5, 100),
		qualified("c", 4.1, 100),
	}

	assert.Len(t, p.Aggregate(raw, 2), 2)
	assert.Len(t, p.Aggregate(raw, 0), 0)
	assert.Len(t, p.Aggregate(raw, -3), 0, "a negative cap clamps to zero")
	assert.Len(t, p.Aggregate(raw, 50), 3, "a cap above the result size returns everything")
}

func TestAggregateMergedSubQueries(t *testing.T) {
	p := newTestPipeline()

	// Two sub-queries both returned place "a"; one also returned an
	// unrated place that the quality filter drops.
	unrated := qualified("d", 0, 0)
	unrated.Rating = nil
	unrated.UserRatingsTotal = nil

	items := p.Aggregate([]places.PlaceRecord{
		qualified("a", 4.6, 300),
		qualified("b", 4.8, 150),
		qualified("a", 4.6, 300),
		qualified("c", 4.2, 40),
		unrated,
	}, 10)

	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestNormalizeResolvesPhotoURL(t *testing.T) {
	p := newTestPipeline()

	item := p.Normalize(qualified("a", 4.0, 10))
	assert.Contains(t, item.PhotoURL, "photo_reference=photo-a")
	assert.Contains(t, item.PhotoURL, "key=test-key")

	noPhoto := qualified("b", 4.0, 10)
	noPhoto.Photos = nil
	assert.Empty(t, p.Normalize(noPhoto).PhotoURL)
}
