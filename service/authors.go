package service

import (
	"errors"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/validator"
	"github.com/emzola/librarium/repository"
)

type authors interface {
	CreateAuthor(name string) ([]*data.Author, error)
	ShowAuthor(authorID int64) (*data.Author, error)
	ListAuthors() ([]*data.Author, error)
	UpdateAuthor(authorID int64, name string) ([]*data.Author, error)
	DeleteAuthor(authorID int64) ([]*data.Author, error)
}

// CreateAuthor service adds a new author and returns the refreshed author
// list.
func (s *service) CreateAuthor(name string) ([]*data.Author, error) {
	author := &data.Author{Name: name}
	v := validator.New()
	if data.ValidateAuthor(v, author); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.CreateAuthor(author)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return s.ListAuthors()
}

// ShowAuthor service retrieves the details of a specific author.
func (s *service) ShowAuthor(authorID int64) (*data.Author, error) {
	author, err := s.repo.GetAuthor(authorID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return author, nil
}

// ListAuthors service retrieves all authors.
func (s *service) ListAuthors() ([]*data.Author, error) {
	authors, err := s.repo.GetAllAuthors()
	if err != nil {
		return nil, err
	}
	return authors, nil
}

// UpdateAuthor service renames an author and returns the refreshed author
// list.
func (s *service) UpdateAuthor(authorID int64, name string) ([]*data.Author, error) {
	author := &data.Author{ID: authorID, Name: name}
	v := validator.New()
	if data.ValidateAuthor(v, author); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.UpdateAuthor(author)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return s.ListAuthors()
}

// DeleteAuthor service removes an author and returns the refreshed author
// list.
func (s *service) DeleteAuthor(authorID int64) ([]*data.Author, error) {
	err := s.repo.DeleteAuthor(authorID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return s.ListAuthors()
}
