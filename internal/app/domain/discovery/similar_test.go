package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/places"
	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

var baseItem = models.PlaceItem{
	ID:        "base",
	Name:      "Museu Picasso",
	Types:     []string{"art_gallery", "museum"},
	Latitude:  41.3853,
	Longitude: 2.1807,
}

func TestSimilarityKeyword(t *testing.T) {
	assert.Equal(t, "art gallery", similarityKeyword(baseItem),
		"the dominant type tag drives the keyword, underscores become spaces")

	untyped := models.PlaceItem{Name: "Tibidabo Amusement Park"}
	assert.Equal(t, "Tibidabo", similarityKeyword(untyped),
		"without type tags the first name token drives the keyword")

	punctuated := models.PlaceItem{Name: "  El-Born, Centre"}
	assert.Equal(t, "El", similarityKeyword(punctuated))
}

func TestFindSimilarStripsBaseAndExcluded(t *testing.T) {
	gateway := new(MockGateway)
	svc := newTestService(gateway)

	gateway.On("SearchNearby", mock.Anything, baseItem.Latitude, baseItem.Longitude, radiusExpander, "", "art gallery").
		Return([]places.PlaceRecord{
			qualified("base", 4.9, 900),
			qualified("known", 4.8, 500),
			qualified("fresh-1", 4.7, 300),
			qualified("fresh-2", 4.5, 200),
		}, nil)

	exclude := map[string]struct{}{"known": {}}
	items, err := svc.FindSimilar(context.Background(), baseItem, exclude, 5)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "fresh-1", items[0].ID)
	assert.Equal(t, "fresh-2", items[1].ID)
}

func TestFindSimilarHonorsLimitAfterStripping(t *testing.T) {
	gateway := new(MockGateway)
	svc := newTestService(gateway)

	gateway.On("SearchNearby", mock.Anything, mock.Anything, mock.Anything, radiusExpander, "", mock.Anything).
		Return([]places.PlaceRecord{
			qualified("base", 4.9, 900),
			qualified("a", 4.8, 500),
			qualified("b", 4.7, 300),
			qualified("c", 4.6, 200),
		}, nil)

	items, err := svc.FindSimilar(context.Background(), baseItem, nil, 2)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID, "the limit cuts after the base is stripped, not before")
}

func TestFindSimilarZeroLimit(t *testing.T) {
	gateway := new(MockGateway)
	svc := newTestService(gateway)

	items, err := svc.FindSimilar(context.Background(), baseItem, nil, 0)

	require.NoError(t, err)
	assert.Empty(t, items)
	gateway.AssertNotCalled(t, "SearchNearby")
}

func TestFindSimilarEmptyResultIsNotAnError(t *testing.T) {
	gateway := new(MockGateway)
	svc := newTestService(gateway)

	gateway.On("SearchNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]places.PlaceRecord{}, nil)

	items, err := svc.FindSimilar(context.Background(), baseItem, nil, 5)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFindSimilarPropagatesProviderError(t *testing.T) {
	gateway := new(MockGateway)
	svc := newTestService(gateway)

	gateway.On("SearchNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, models.ErrProviderUnavailable)

	_, err := svc.FindSimilar(context.Background(), baseItem, nil, 5)

	require.ErrorIs(t, err, models.ErrProviderUnavailable)
}
