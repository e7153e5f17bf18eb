package places

// Wire types for the Google Places Web Service responses.

type searchResponse struct {
	Results      []PlaceRecord `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// PlaceRecord is a raw place as returned by the provider.
type PlaceRecord struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Vicinity         string   `json:"vicinity,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	Types            []string `json:"types,omitempty"`
	Photos           []Photo  `json:"photos,omitempty"`
	Geometry         Geometry `json:"geometry"`
}

type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
}

type Geometry struct {
	Location Location `json:"location"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address returns the best display address the record carries. Nearby
// search responses populate vicinity, text search formatted_address.
func (r PlaceRecord) Address() string {
	if r.FormattedAddress != "" {
		return r.FormattedAddress
	}
	return r.Vicinity
}

// PhotoReference returns the first photo reference token, if any.
func (r PlaceRecord) PhotoReference() string {
	if len(r.Photos) == 0 {
		return ""
	}
	return r.Photos[0].PhotoReference
}
