package collection

import (
	"net/url"

	"github.com/mmcdole/rijks/internal/domain"
)

// MapPage converts an API response into a domain SearchPage
func MapPage(resp collectionResponse) *domain.SearchPage {
	return &domain.SearchPage{
		Items:      MapArtworks(resp.ArtObjects),
		TotalCount: max(resp.Count, 0),
	}
}

// MapArtworks converts API art objects to domain artworks, preserving order
func MapArtworks(objects []artObject) []domain.Artwork {
	artworks := make([]domain.Artwork, len(objects))
	for i, obj := range objects {
		artworks[i] = MapArtwork(obj)
	}
	return artworks
}

// MapArtwork converts a single API art object
func MapArtwork(obj artObject) domain.Artwork {
	return domain.Artwork{
		ID:    obj.ObjectNumber,
		Title: obj.Title,
		Maker: obj.PrincipalOrFirstMaker,
		Image: mapImage(obj.WebImage),
	}
}

// mapImage drops images that cannot satisfy ImageRef's invariants
// (absolute URL, positive dimensions).
func mapImage(img *webImage) *domain.ImageRef {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil
	}
	u, err := url.Parse(img.URL)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return &domain.ImageRef{
		URL:    img.URL,
		Width:  img.Width,
		Height: img.Height,
	}
}
