package places

import (
	"fmt"
	"net/url"
)

const photoMaxWidth = 800

// PhotoURL builds a fully qualified Place Photo URL from a photo
// reference token. Either argument being empty yields an empty URL;
// callers render a placeholder in that case.
func PhotoURL(baseURL, photoReference, apiKey string) string {
	if photoReference == "" || apiKey == "" {
		return ""
	}
	params := url.Values{}
	params.Set("maxwidth", fmt.Sprintf("%d", photoMaxWidth))
	params.Set("photo_reference", photoReference)
	params.Set("key", apiKey)
	return fmt.Sprintf("%s/photo?%s", baseURL, params.Encode())
}
