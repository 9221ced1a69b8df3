package collection

// collectionResponse is the body of GET {base}/collection
type collectionResponse struct {
	Count      int         `json:"count"`
	ArtObjects []artObject `json:"artObjects"`
}

type artObject struct {
	ObjectNumber          string    `json:"objectNumber"`
	Title                 string    `json:"title"`
	PrincipalOrFirstMaker string    `json:"principalOrFirstMaker"`
	WebImage              *webImage `json:"webImage,omitempty"`
}

type webImage struct {
	GUID   string `json:"guid"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
