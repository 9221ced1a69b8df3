package domain

import "fmt"

// ImageRef describes a web-sized rendition of an artwork image
type ImageRef struct {
	URL    string // Absolute image URL
	Width  int    // Width in pixels (> 0)
	Height int    // Height in pixels (> 0)
}

// Dimensions returns the image size as "WxH"
func (i ImageRef) Dimensions() string {
	return fmt.Sprintf("%d×%d", i.Width, i.Height)
}

// Orientation returns "landscape", "portrait" or "square"
func (i ImageRef) Orientation() string {
	switch {
	case i.Width > i.Height:
		return "landscape"
	case i.Height > i.Width:
		return "portrait"
	default:
		return "square"
	}
}

// Artwork represents a single object from the museum collection.
// Two artworks are the same object when their IDs match.
type Artwork struct {
	ID    string    // Object number, e.g. "SK-C-5"
	Title string    // Display title
	Maker string    // Principal or first maker
	Image *ImageRef // Web image, nil when the collection has none
}

// HasImage returns true if the artwork carries a usable web image
func (a Artwork) HasImage() bool {
	return a.Image != nil && a.Image.URL != ""
}

// DisplayMaker returns the maker, or a placeholder for anonymous works
func (a Artwork) DisplayMaker() string {
	if a.Maker == "" {
		return "Unknown maker"
	}
	return a.Maker
}

// SearchPage is one page of collection search results
type SearchPage struct {
	Items      []Artwork
	TotalCount int // Total matches reported by the collection
}

// IsEmpty returns true if the page holds no artworks
func (p SearchPage) IsEmpty() bool {
	return len(p.Items) == 0
}
