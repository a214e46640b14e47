package service

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/emzola/librarium/repository"
)

// mockRepo embeds the repository interface so individual tests only stub
// the methods they exercise.
type mockRepo struct {
	repository.Repository
	getBook      func(bookID int64) (*data.Book, error)
	getPublisher func(publisherID int64) (*data.Publisher, error)
	getAuthor    func(authorID int64) (*data.Author, error)
	createBook   func(book *data.Book) error
	deleteBook   func(bookID int64) error
	createLoan   func(loan *data.Loan) error
	pendingLoans func() ([]*data.Loan, error)
	getLoan      func(loanID int64) (*data.Loan, error)
	updateLoan   func(loan *data.Loan) error

	createAuthor     func(author *data.Author) error
	createPublisher  func(publisher *data.Publisher) error
	getAllAuthors    func() ([]*data.Author, error)
	getAllPublishers func() ([]*data.Publisher, error)
}

func (m *mockRepo) GetBook(bookID int64) (*data.Book, error)       { return m.getBook(bookID) }
func (m *mockRepo) GetPublisher(id int64) (*data.Publisher, error) { return m.getPublisher(id) }
func (m *mockRepo) GetAuthor(id int64) (*data.Author, error)       { return m.getAuthor(id) }
func (m *mockRepo) CreateBook(book *data.Book) error               { return m.createBook(book) }
func (m *mockRepo) DeleteBook(bookID int64) error                  { return m.deleteBook(bookID) }
func (m *mockRepo) CreateLoan(loan *data.Loan) error               { return m.createLoan(loan) }
func (m *mockRepo) GetAllPendingLoans() ([]*data.Loan, error)      { return m.pendingLoans() }
func (m *mockRepo) GetLoan(loanID int64) (*data.Loan, error)       { return m.getLoan(loanID) }
func (m *mockRepo) UpdateLoan(loan *data.Loan) error               { return m.updateLoan(loan) }

func (m *mockRepo) CreateAuthor(author *data.Author) error       { return m.createAuthor(author) }
func (m *mockRepo) CreatePublisher(p *data.Publisher) error      { return m.createPublisher(p) }
func (m *mockRepo) GetAllAuthors() ([]*data.Author, error)       { return m.getAllAuthors() }
func (m *mockRepo) GetAllPublishers() ([]*data.Publisher, error) { return m.getAllPublishers() }

// stubStore is an in-memory media store recording which prefixes exist.
type stubStore struct {
	prefixes map[string]bool
}

func (s *stubStore) Store(data []byte, prefix, fileName string) (string, error) {
	if s.prefixes == nil {
		s.prefixes = map[string]bool{}
	}
	s.prefixes[prefix] = true
	return "bookImages/" + prefix + "/" + fileName, nil
}

func (s *stubStore) DeleteAll(prefix string) (bool, error) {
	if !s.prefixes[prefix] {
		return false, nil
	}
	delete(s.prefixes, prefix)
	return true, nil
}

func newTestService(repo repository.Repository, store *stubStore) *service {
	return &service{
		wg:     &sync.WaitGroup{},
		logger: jsonlog.New(io.Discard, jsonlog.LevelError),
		repo:   repo,
		store:  store,
	}
}

func validBookForm() dto.BookForm {
	return dto.BookForm{
		Name:        "Dune",
		Genre:       "Science Fiction",
		PublisherID: 1,
		PublishDate: "1965-08-01",
		Cost:        25,
		Pages:       412,
		Stock:       3,
		AuthorIDs:   []int64{1},
	}
}

func TestCreateBookDuplicateNameConflicts(t *testing.T) {
	repo := &mockRepo{
		getPublisher: func(int64) (*data.Publisher, error) { return &data.Publisher{ID: 1}, nil },
		getAuthor:    func(int64) (*data.Author, error) { return &data.Author{ID: 1}, nil },
		createBook:   func(*data.Book) error { return repository.ErrDuplicateRecord },
	}
	s := newTestService(repo, &stubStore{})
	_, err := s.CreateBook(validBookForm(), nil)
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Errorf("want ErrDuplicateRecord; got %v", err)
	}
}

func TestCreateBookUnknownPublisherPersistsNothing(t *testing.T) {
	created := false
	repo := &mockRepo{
		getPublisher: func(int64) (*data.Publisher, error) { return nil, repository.ErrRecordNotFound },
		createBook:   func(*data.Book) error { created = true; return nil },
	}
	store := &stubStore{}
	s := newTestService(repo, store)
	_, err := s.CreateBook(validBookForm(), nil)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("want ErrRecordNotFound; got %v", err)
	}
	if created {
		t.Error("book row was created for an unknown publisher")
	}
	if len(store.prefixes) != 0 {
		t.Error("image files were stored for an unknown publisher")
	}
}

func TestDeleteBookWithoutImageDirectoryKeepsRow(t *testing.T) {
	deleted := false
	repo := &mockRepo{
		getBook:    func(int64) (*data.Book, error) { return &data.Book{ID: 5, Name: "Dune"}, nil },
		deleteBook: func(int64) error { deleted = true; return nil },
	}
	s := newTestService(repo, &stubStore{})
	err := s.DeleteBook(5)
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("want ErrBadRequest; got %v", err)
	}
	if deleted {
		t.Error("book row was deleted despite the missing image directory")
	}
}

func TestDeleteBookRemovesRowAndImages(t *testing.T) {
	deleted := false
	repo := &mockRepo{
		getBook:    func(int64) (*data.Book, error) { return &data.Book{ID: 5, Name: "Dune"}, nil },
		deleteBook: func(int64) error { deleted = true; return nil },
	}
	store := &stubStore{prefixes: map[string]bool{"Dune": true}}
	s := newTestService(repo, store)
	err := s.DeleteBook(5)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Error("book row was not deleted")
	}
	if store.prefixes["Dune"] {
		t.Error("image directory was not removed")
	}
}

// A registration-through-duplicate walkthrough: a publisher and an author
// are created, a book referencing them succeeds once, and resubmitting the
// same book name is reported as a conflict.
func TestCatalogWalkthrough(t *testing.T) {
	books := map[string]bool{}
	repo := &mockRepo{
		createPublisher:  func(p *data.Publisher) error { p.ID = 1; return nil },
		createAuthor:     func(a *data.Author) error { a.ID = 1; return nil },
		getAllPublishers: func() ([]*data.Publisher, error) { return []*data.Publisher{{ID: 1, Name: "Penguin"}}, nil },
		getAllAuthors:    func() ([]*data.Author, error) { return []*data.Author{{ID: 1, Name: "Jane Doe"}}, nil },
		getPublisher:     func(int64) (*data.Publisher, error) { return &data.Publisher{ID: 1, Name: "Penguin"}, nil },
		getAuthor:        func(int64) (*data.Author, error) { return &data.Author{ID: 1, Name: "Jane Doe"}, nil },
		createBook: func(b *data.Book) error {
			if books[b.Name] {
				return repository.ErrDuplicateRecord
			}
			books[b.Name] = true
			b.ID = 1
			return nil
		},
	}
	s := newTestService(repo, &stubStore{})

	publishers, err := s.CreatePublisher("Penguin")
	if err != nil {
		t.Fatal(err)
	}
	if len(publishers) != 1 {
		t.Fatalf("want 1 publisher in refreshed list; got %d", len(publishers))
	}
	authors, err := s.CreateAuthor("Jane Doe")
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 1 {
		t.Fatalf("want 1 author in refreshed list; got %d", len(authors))
	}

	book, err := s.CreateBook(validBookForm(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if book.ID != 1 {
		t.Errorf("want book ID 1; got %d", book.ID)
	}
	_, err = s.CreateBook(validBookForm(), nil)
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Errorf("want ErrDuplicateRecord on resubmission; got %v", err)
	}
}
