package service

import (
	"errors"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/validator"
	"github.com/emzola/librarium/repository"
)

type publishers interface {
	CreatePublisher(name string) ([]*data.Publisher, error)
	ShowPublisher(publisherID int64) (*data.Publisher, error)
	ListPublishers() ([]*data.Publisher, error)
	UpdatePublisher(publisherID int64, name string) ([]*data.Publisher, error)
	DeletePublisher(publisherID int64) ([]*data.Publisher, error)
}

// CreatePublisher service adds a new publisher and returns the refreshed
// publisher list.
func (s *service) CreatePublisher(name string) ([]*data.Publisher, error) {
	publisher := &data.Publisher{Name: name}
	v := validator.New()
	if data.ValidatePublisher(v, publisher); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.CreatePublisher(publisher)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return s.ListPublishers()
}

// ShowPublisher service retrieves the details of a specific publisher.
func (s *service) ShowPublisher(publisherID int64) (*data.Publisher, error) {
	publisher, err := s.repo.GetPublisher(publisherID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return publisher, nil
}

// ListPublishers service retrieves all publishers.
func (s *service) ListPublishers() ([]*data.Publisher, error) {
	publishers, err := s.repo.GetAllPublishers()
	if err != nil {
		return nil, err
	}
	return publishers, nil
}

// UpdatePublisher service renames a publisher and returns the refreshed
// publisher list.
func (s *service) UpdatePublisher(publisherID int64, name string) ([]*data.Publisher, error) {
	publisher := &data.Publisher{ID: publisherID, Name: name}
	v := validator.New()
	if data.ValidatePublisher(v, publisher); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.UpdatePublisher(publisher)
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
	return s.ListPublishers()
}

// DeletePublisher service removes a publisher and returns the refreshed
// publisher list.
func (s *service) DeletePublisher(publisherID int64) ([]*data.Publisher, error) {
	err := s.repo.DeletePublisher(publisherID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return s.ListPublishers()
}
