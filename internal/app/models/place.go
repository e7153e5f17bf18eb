package models

// GeoAnchor is the resolved coordinate for a free-text destination.
// It is computed once per destination and cached for the session.
type GeoAnchor struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceItem is a normalized place suggestion returned by the engine.
// ID is the provider-assigned identity token; two items with the same
// ID are the same place everywhere (dedup, selection, pool membership).
type PlaceItem struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	PhotoURL         string   `json:"photo_url,omitempty"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	Types            []string `json:"types,omitempty"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
}

// HasCoordinates reports whether the item carries a usable coordinate.
func (p PlaceItem) HasCoordinates() bool {
	return ValidateCoordinates(p.Latitude, p.Longitude)
}

// ValidateCoordinates checks if latitude and longitude are valid.
// Latitude must be between -90 and 90, longitude between -180 and 180.
// The zero pair is treated as missing data.
func ValidateCoordinates(lat, lng float64) bool {
	if lat == 0 && lng == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
