package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

func TestUnifiedCacheSetGet(t *testing.T) {
	c := NewUnifiedCache[models.GeoAnchor](time.Minute, "test", zap.NewNop())

	anchor := models.GeoAnchor{Name: "Barcelona", Latitude: 41.38, Longitude: 2.17}
	c.Set("barcelona", anchor)

	got, found := c.Get("barcelona")
	require.True(t, found)
	assert.Equal(t, anchor, got)

	_, found = c.Get("lisbon")
	assert.False(t, found)
}

func TestUnifiedCacheExpiry(t *testing.T) {
	c := NewUnifiedCache[string](10*time.Millisecond, "test", zap.NewNop())

	c.Set("key", "value")
	time.Sleep(25 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestUnifiedCacheClear(t *testing.T) {
	c := NewUnifiedCache[int](time.Minute, "test", zap.NewNop())

	c.Set("a", 1)
	c.Set("b", 2)
	require.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestUnifiedCacheMetrics(t *testing.T) {
	c := NewUnifiedCache[int](time.Minute, "test", zap.NewNop())

	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")

	m := c.GetMetrics()
	assert.Equal(t, int64(1), m.Sets)
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
}

func TestCacheKeyBuilderIsDeterministic(t *testing.T) {
	key1 := NewCacheKeyBuilder().AddAnchor(41.38, 2.17).AddCategory("attractions").Add("cap", 10).BuildOrDefault()
	key2 := NewCacheKeyBuilder().AddAnchor(41.38, 2.17).AddCategory("attractions").Add("cap", 10).BuildOrDefault()

	require.NotEmpty(t, key1)
	assert.Equal(t, key1, key2)
}

func TestCacheKeyBuilderDistinguishesComponents(t *testing.T) {
	base := NewCacheKeyBuilder().AddAnchor(41.38, 2.17).AddCategory("attractions").Add("cap", 10).BuildOrDefault()
	otherAnchor := NewCacheKeyBuilder().AddAnchor(38.72, -9.14).AddCategory("attractions").Add("cap", 10).BuildOrDefault()
	otherCategory := NewCacheKeyBuilder().AddAnchor(41.38, 2.17).AddCategory("food_cafes").Add("cap", 10).BuildOrDefault()
	otherCap := NewCacheKeyBuilder().AddAnchor(41.38, 2.17).AddCategory("attractions").Add("cap", 20).BuildOrDefault()

	assert.NotEqual(t, base, otherAnchor)
	assert.NotEqual(t, base, otherCategory)
	assert.NotEqual(t, base, otherCap)
}

func TestCacheManagerClearAll(t *testing.T) {
	cm := NewCacheManager(time.Minute, time.Minute, zap.NewNop())

	cm.Anchors.Set("a", models.GeoAnchor{Latitude: 1, Longitude: 2})
	cm.CategoryResults.Set("b", []models.PlaceItem{{ID: "x"}})

	cm.ClearAll()

	assert.Equal(t, 0, cm.Anchors.Size())
	assert.Equal(t, 0, cm.CategoryResults.Size())
}
