package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/emzola/librarium/data"
	"github.com/lib/pq"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(bookID int64) (*data.Book, error)
	GetAllBooks() ([]*data.Book, error)
	GetAllBooksByGenre(genres []string, search string) ([]*data.Book, error)
	UpdateBook(book *data.Book) error
	DeleteBook(bookID int64) error
}

// bookProjection selects a book row together with its resolved publisher
// name, author link set, author names and image URLs.
const bookProjection = `
	SELECT books.id, books.created_at, books.name, books.genre, books.publisher_id, publishers.name, books.publish_date, books.language, books.edition, books.cost, books.pages, books.description, books.stock, books.rating, books.version,
		(SELECT COALESCE(array_agg(ba.author_id ORDER BY ba.author_id), '{}') FROM book_authors ba WHERE ba.book_id = books.id),
		(SELECT COALESCE(array_agg(a.name ORDER BY a.id), '{}') FROM book_authors ba INNER JOIN authors a ON a.id = ba.author_id WHERE ba.book_id = books.id),
		(SELECT COALESCE(array_agg(bi.image_url ORDER BY bi.id), '{}') FROM book_images bi WHERE bi.book_id = books.id)
	FROM books
	INNER JOIN publishers ON publishers.id = books.publisher_id`

func scanBook(row interface{ Scan(...interface{}) error }, book *data.Book) error {
	return row.Scan(
		&book.ID,
		&book.CreatedAt,
		&book.Name,
		&book.Genre,
		&book.PublisherID,
		&book.Publisher,
		&book.PublishDate,
		&book.Language,
		&book.Edition,
		&book.Cost,
		&book.Pages,
		&book.Description,
		&book.Stock,
		&book.Rating,
		&book.Version,
		pq.Array(&book.AuthorIDs),
		pq.Array(&book.Authors),
		pq.Array(&book.Images),
	)
}

// CreateBook creates a new book record together with its author links and
// image rows in a single transaction, so a failed link insert persists
// nothing.
func (r *repository) CreateBook(book *data.Book) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		INSERT INTO books (name, genre, publisher_id, publish_date, language, edition, cost, pages, description, stock, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, version`
	args := []interface{}{
		book.Name,
		book.Genre,
		book.PublisherID,
		book.PublishDate,
		book.Language,
		book.Edition,
		book.Cost,
		book.Pages,
		book.Description,
		book.Stock,
		book.Rating,
	}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "books_name_key"`:
			return ErrDuplicateRecord
		case strings.Contains(err.Error(), "books_publisher_id_fkey"):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	for _, authorID := range book.AuthorIDs {
		_, err = tx.ExecContext(ctx, `INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`, book.ID, authorID)
		if err != nil {
			switch {
			case strings.Contains(err.Error(), "book_authors_author_id_fkey"):
				return ErrRecordNotFound
			default:
				return err
			}
		}
	}
	for _, imageURL := range book.Images {
		_, err = tx.ExecContext(ctx, `INSERT INTO book_images (book_id, image_url) VALUES ($1, $2)`, book.ID, imageURL)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(bookID int64) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := bookProjection + `
	WHERE books.id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := scanBook(r.db.QueryRowContext(ctx, query, bookID), &book)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves every book record with its full projection.
func (r *repository) GetAllBooks() ([]*data.Book, error) {
	query := bookProjection + `
	ORDER BY books.id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := scanBook(rows, &book)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// GetAllBooksByGenre retrieves books whose genre is in the given set,
// optionally narrowed by a case-insensitive name substring.
func (r *repository) GetAllBooksByGenre(genres []string, search string) ([]*data.Book, error) {
	query := bookProjection + `
	WHERE books.genre = ANY($1)
	AND (books.name ILIKE '%' || $2 || '%' OR $2 = '')
	ORDER BY books.id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, pq.Array(genres), search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := scanBook(rows, &book)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook updates a book record, recomputes its author link set by
// set-difference against the submitted author IDs, and replaces its image
// rows wholesale. Everything happens in one transaction guarded by the
// book's version.
func (r *repository) UpdateBook(book *data.Book) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		UPDATE books
		SET name = $1, genre = $2, publisher_id = $3, publish_date = $4, language = $5, edition = $6, cost = $7, pages = $8, description = $9, stock = $10, rating = $11, version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING version`
	args := []interface{}{
		book.Name,
		book.Genre,
		book.PublisherID,
		book.PublishDate,
		book.Language,
		book.Edition,
		book.Cost,
		book.Pages,
		book.Description,
		book.Stock,
		book.Rating,
		book.ID,
		book.Version,
	}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&book.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		case err.Error() == `pq: duplicate key value violates unique constraint "books_name_key"`:
			return ErrDuplicateRecord
		case strings.Contains(err.Error(), "books_publisher_id_fkey"):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM book_authors WHERE book_id = $1 AND author_id != ALL($2)`, book.ID, pq.Array(book.AuthorIDs))
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO book_authors (book_id, author_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, book.ID, pq.Array(book.AuthorIDs))
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "book_authors_author_id_fkey"):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM book_images WHERE book_id = $1`, book.ID)
	if err != nil {
		return err
	}
	for _, imageURL := range book.Images {
		_, err = tx.ExecContext(ctx, `INSERT INTO book_images (book_id, image_url) VALUES ($1, $2)`, book.ID, imageURL)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteBook deletes a book record. Author links and image rows cascade.
func (r *repository) DeleteBook(bookID int64) error {
	if bookID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, bookID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
