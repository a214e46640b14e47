package data

import "github.com/emzola/librarium/internal/validator"

// Author defines a book author. Authors exist independently of books and
// are linked through the book_authors table.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"author_name"`
}

// ValidateAuthor validates an author's display name.
func ValidateAuthor(v *validator.Validator, author *Author) {
	v.Check(author.Name != "", "author_name", "must be provided")
	v.Check(len(author.Name) <= 500, "author_name", "must not be more than 500 bytes long")
}
