package service

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/internal/validator"
	"github.com/emzola/librarium/repository"
)

type books interface {
	CreateBook(form dto.BookForm, images []*multipart.FileHeader) (*data.Book, error)
	ShowBook(bookID int64) (*data.Book, error)
	ListBooks() ([]*data.Book, error)
	ListCatalog(genres []string, search string) ([]*data.Book, error)
	UpdateBook(bookID int64, form dto.BookForm, images []*multipart.FileHeader) (*data.Book, error)
	DeleteBook(bookID int64) error
}

// bookFromForm converts a submitted catalog form into a book record.
func bookFromForm(form dto.BookForm) (*data.Book, error) {
	book := &data.Book{
		Name:        form.Name,
		Genre:       form.Genre,
		PublisherID: form.PublisherID,
		Language:    form.Language,
		Edition:     form.Edition,
		Cost:        form.Cost,
		Pages:       form.Pages,
		Description: form.Description,
		Stock:       form.Stock,
		Rating:      form.Rating,
		AuthorIDs:   form.AuthorIDs,
	}
	if form.PublishDate != "" {
		publishDate, err := time.Parse("2006-01-02", form.PublishDate)
		if err != nil {
			return nil, ErrBadRequest
		}
		book.PublishDate = publishDate
	}
	return book, nil
}

// checkBookReferences confirms that the publisher and every submitted author
// exist before anything is persisted.
func (s *service) checkBookReferences(book *data.Book) error {
	_, err := s.repo.GetPublisher(book.PublisherID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	for _, authorID := range book.AuthorIDs {
		_, err := s.repo.GetAuthor(authorID)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrRecordNotFound):
				return ErrRecordNotFound
			default:
				return err
			}
		}
	}
	return nil
}

// CreateBook service adds a new book to the catalog together with its
// author links and uploaded images.
func (s *service) CreateBook(form dto.BookForm, images []*multipart.FileHeader) (*data.Book, error) {
	book, err := bookFromForm(form)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.checkBookReferences(book)
	if err != nil {
		return nil, err
	}
	book.Images, err = s.storeImages(book.Name, images)
	if err != nil {
		return nil, err
	}
	err = s.repo.CreateBook(book)
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
	return book, nil
}

// ShowBook service retrieves the details of a specific book.
func (s *service) ShowBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves the whole catalog.
func (s *service) ListBooks() ([]*data.Book, error) {
	books, err := s.repo.GetAllBooks()
	if err != nil {
		return nil, err
	}
	return books, nil
}

// ListCatalog service retrieves the books whose genre is in the given set,
// optionally narrowed by a name search term.
func (s *service) ListCatalog(genres []string, search string) ([]*data.Book, error) {
	v := validator.New()
	v.Check(len(genres) >= 1, "genres", "must contain at least 1 genre")
	v.Check(validator.Unique(genres), "genres", "must not contain duplicate values")
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	books, err := s.repo.GetAllBooksByGenre(genres, search)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook service updates a book's fields, recomputes its author set and
// replaces its images. The book's image directory is wiped once for this
// request before the new uploads are stored.
func (s *service) UpdateBook(bookID int64, form dto.BookForm, images []*multipart.FileHeader) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	updated, err := bookFromForm(form)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if data.ValidateBook(v, updated); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.checkBookReferences(updated)
	if err != nil {
		return nil, err
	}
	oldName := book.Name
	updated.ID = book.ID
	updated.CreatedAt = book.CreatedAt
	updated.Version = book.Version
	_, err = s.store.DeleteAll(oldName)
	if err != nil {
		return nil, err
	}
	updated.Images, err = s.storeImages(updated.Name, images)
	if err != nil {
		return nil, err
	}
	err = s.repo.UpdateBook(updated)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return updated, nil
}

// DeleteBook service removes a book from the catalog along with its image
// directory. If no image directory exists for the book, the delete is
// rejected and the record is left untouched.
func (s *service) DeleteBook(bookID int64) error {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	existed, err := s.store.DeleteAll(book.Name)
	if err != nil {
		return err
	}
	if !existed {
		return ErrBadRequest
	}
	err = s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}
