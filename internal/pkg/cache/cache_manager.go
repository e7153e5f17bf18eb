package cache

import (
	"time"

	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

// CacheManager holds the discovery engine caches
type CacheManager struct {
	// Resolved destination anchors; destinations change rarely
	Anchors *UnifiedCache[models.GeoAnchor]

	// Ranked per-category results keyed by anchor+category+cap
	CategoryResults *UnifiedCache[[]models.PlaceItem]
}

// NewCacheManager creates a new cache manager with the given TTLs
func NewCacheManager(anchorTTL, resultTTL time.Duration, logger *zap.Logger) *CacheManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheManager{
		Anchors:         NewUnifiedCache[models.GeoAnchor](anchorTTL, "anchors", logger),
		CategoryResults: NewUnifiedCache[[]models.PlaceItem](resultTTL, "category_results", logger),
	}
}

// GetAllMetrics returns metrics for all caches
func (cm *CacheManager) GetAllMetrics() map[string]CacheMetrics {
	return map[string]CacheMetrics{
		"anchors":          cm.Anchors.GetMetrics(),
		"category_results": cm.CategoryResults.GetMetrics(),
	}
}

// ClearAll clears all caches
func (cm *CacheManager) ClearAll() {
	cm.Anchors.Clear()
	cm.CategoryResults.Clear()
}
