package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

func TestQueryPlanCoversEveryCategory(t *testing.T) {
	for _, category := range models.Categories() {
		plan := QueryPlan(category)
		require.NotEmpty(t, plan, "category %s has no plan", category)
		assert.GreaterOrEqual(t, len(plan), 3)
		assert.LessOrEqual(t, len(plan), 5)
		for _, spec := range plan {
			assert.Positive(t, spec.RadiusMeters)
			assert.True(t, spec.PlaceType != "" || spec.Keyword != "",
				"a spec must carry a type or a keyword")
		}
	}
}

func TestQueryPlanRadiusBands(t *testing.T) {
	for _, spec := range QueryPlan(models.CategoryDayTrips) {
		assert.Equal(t, radiusDayTrip, spec.RadiusMeters, "day trips search the wide band")
	}
	for _, spec := range QueryPlan(models.CategoryFoodCafes) {
		assert.Equal(t, radiusFood, spec.RadiusMeters, "food stays close to the anchor")
	}
	for _, spec := range QueryPlan(models.CategoryAttractions) {
		assert.Equal(t, radiusInTown, spec.RadiusMeters)
	}
	for _, spec := range QueryPlan(models.CategoryHiddenGems) {
		assert.Equal(t, radiusHidden, spec.RadiusMeters)
	}
}

func TestQueryPlanReturnsACopy(t *testing.T) {
	plan := QueryPlan(models.CategoryAttractions)
	plan[0].Keyword = "mutated"

	fresh := QueryPlan(models.CategoryAttractions)
	assert.NotEqual(t, "mutated", fresh[0].Keyword)
}

func TestQueryPlanPanicsOnUnknownCategory(t *testing.T) {
	assert.Panics(t, func() {
		QueryPlan(models.Category("nightlife"))
	})
}
