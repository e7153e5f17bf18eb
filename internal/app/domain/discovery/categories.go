package discovery

import (
	"fmt"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

// QuerySpec is one concrete provider query. Exactly one of PlaceType or
// Keyword is usually set; both may be. Order inside a plan runs from
// most canonical for the category to most exploratory, but execution is
// concurrent and order never reaches the merged output.
type QuerySpec struct {
	PlaceType    string
	Keyword      string
	RadiusMeters int
}

const (
	radiusInTown   = 15_000
	radiusFood     = 12_000
	radiusHidden   = 25_000
	radiusDayTrip  = 60_000
	radiusExpander = 20_000
)

// categoryPlans maps each category to its hand-curated query plan. No
// single provider type approximates these groupings, so each plan mixes
// types and keywords; day trips and hidden gems search farther out.
var categoryPlans = map[models.Category][]QuerySpec{
	models.CategoryAttractions: {
		{PlaceType: "tourist_attraction", RadiusMeters: radiusInTown},
		{PlaceType: "museum", RadiusMeters: radiusInTown},
		{PlaceType: "park", RadiusMeters: radiusInTown},
		{Keyword: "landmark", RadiusMeters: radiusInTown},
	},
	models.CategoryDayTrips: {
		{PlaceType: "natural_feature", RadiusMeters: radiusDayTrip},
		{Keyword: "scenic spot", RadiusMeters: radiusDayTrip},
		{Keyword: "national park", RadiusMeters: radiusDayTrip},
		{Keyword: "day trip", RadiusMeters: radiusDayTrip},
	},
	models.CategoryFoodCafes: {
		{PlaceType: "restaurant", RadiusMeters: radiusFood},
		{PlaceType: "cafe", RadiusMeters: radiusFood},
		{PlaceType: "bakery", RadiusMeters: radiusFood},
		{Keyword: "local food", RadiusMeters: radiusFood},
	},
	models.CategoryHiddenGems: {
		{Keyword: "hidden gem", RadiusMeters: radiusHidden},
		{Keyword: "local favorite", RadiusMeters: radiusHidden},
		{PlaceType: "art_gallery", RadiusMeters: radiusHidden},
	},
}

// QueryPlan returns the ordered query specs for a category. The
// category enum is closed; an unknown value is a programming error and
// panics rather than being handled at runtime.
func QueryPlan(category models.Category) []QuerySpec {
	plan, ok := categoryPlans[category]
	if !ok {
		panic(fmt.Sprintf("discovery: no query plan for category %q", category))
	}
	specs := make([]QuerySpec, len(plan))
	copy(specs, plan)
	return specs
}
