package data

import "github.com/emzola/librarium/internal/validator"

// Publisher defines a book publisher. Every book must reference an
// existing publisher.
type Publisher struct {
	ID   int64  `json:"id"`
	Name string `json:"publisher_name"`
}

// ValidatePublisher validates a publisher's display name.
func ValidatePublisher(v *validator.Validator, publisher *Publisher) {
	v.Check(publisher.Name != "", "publisher_name", "must be provided")
	v.Check(len(publisher.Name) <= 500, "publisher_name", "must not be more than 500 bytes long")
}
