package data

import (
	"time"

	"github.com/emzola/librarium/internal/validator"
)

// Book defines a catalog book. The Publisher, Authors and Images fields are
// projections resolved from the publishers, authors and book_images tables;
// AuthorIDs carries the raw book_authors link set.
type Book struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Genre       string    `json:"genre"`
	PublisherID int64     `json:"publisher_id"`
	Publisher   string    `json:"publisher,omitempty"`
	PublishDate time.Time `json:"publish_date"`
	Language    string    `json:"language,omitempty"`
	Edition     string    `json:"edition,omitempty"`
	Cost        float64   `json:"cost"`
	Pages       int32     `json:"pages,omitempty"`
	Description string    `json:"description,omitempty"`
	Stock       int32     `json:"stock"`
	Rating      float64   `json:"rating,omitempty"`
	AuthorIDs   []int64   `json:"author_ids,omitempty"`
	Authors     []string  `json:"authors,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Version     int32     `json:"-"`
}

// ValidateBook validates the fields of a book submitted through the
// catalog form.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Name != "", "name", "must be provided")
	v.Check(len(book.Name) <= 500, "name", "must not be more than 500 bytes long")
	v.Check(book.Genre != "", "genre", "must be provided")
	v.Check(book.PublisherID > 0, "publisher_id", "must be a positive integer")
	v.Check(!book.PublishDate.IsZero(), "publish_date", "must be provided")
	v.Check(book.PublishDate.Before(time.Now()), "publish_date", "must not be in the future")
	v.Check(book.Cost >= 0, "cost", "must not be negative")
	v.Check(book.Pages >= 0, "pages", "must not be negative")
	v.Check(book.Stock >= 0, "stock", "must not be negative")
	v.Check(book.Rating >= 0 && book.Rating <= 5, "rating", "must be between 0 and 5")
	v.Check(len(book.AuthorIDs) >= 1, "author_ids", "must contain at least 1 author")
	v.Check(validator.UniqueIDs(book.AuthorIDs), "author_ids", "must not contain duplicate values")
}
