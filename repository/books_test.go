package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/emzola/librarium/data"
	"github.com/lib/pq"
)

func TestCreateBookDuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books")).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "books_name_key"`))
	mock.ExpectRollback()

	repo := New(db)
	book := &data.Book{Name: "Dune", Genre: "Science Fiction", PublisherID: 1}
	err = repo.CreateBook(book)
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Errorf("want ErrDuplicateRecord; got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateBookUnknownAuthorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).AddRow(1, time.Now(), 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO book_authors")).
		WillReturnError(errors.New(`pq: insert or update on table "book_authors" violates foreign key constraint "book_authors_author_id_fkey"`))
	mock.ExpectRollback()

	repo := New(db)
	book := &data.Book{Name: "Dune", PublisherID: 1, AuthorIDs: []int64{99}}
	err = repo.CreateBook(book)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("want ErrRecordNotFound; got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteBookNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := New(db)
	err = repo.DeleteBook(42)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("want ErrRecordNotFound; got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateBookRecomputesAuthorLinks(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	authorIDs := []int64{1, 3}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE books")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM book_authors WHERE book_id = $1 AND author_id != ALL($2)")).
		WithArgs(int64(5), pq.Array(authorIDs)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO book_authors")).
		WithArgs(int64(5), pq.Array(authorIDs)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM book_images WHERE book_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := New(db)
	book := &data.Book{ID: 5, Name: "Dune", Genre: "Science Fiction", PublisherID: 1, Version: 1, AuthorIDs: authorIDs}
	err = repo.UpdateBook(book)
	if err != nil {
		t.Fatal(err)
	}
	if book.Version != 2 {
		t.Errorf("want version 2 after update; got %d", book.Version)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
