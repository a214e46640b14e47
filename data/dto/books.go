package dto

// BookForm carries the multipart form fields submitted when creating or
// updating a book. Image files travel alongside it in the multipart body.
type BookForm struct {
	Name        string
	Genre       string
	PublisherID int64
	PublishDate string
	Language    string
	Edition     string
	Cost        float64
	Pages       int32
	Description string
	Stock       int32
	Rating      float64
	AuthorIDs   []int64
}

// QsListCatalog defines query strings for the catalog browse endpoint.
type QsListCatalog struct {
	Genres []string
	Search string
}
