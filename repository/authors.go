package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/librarium/data"
)

type authors interface {
	CreateAuthor(author *data.Author) error
	GetAuthor(authorID int64) (*data.Author, error)
	GetAllAuthors() ([]*data.Author, error)
	UpdateAuthor(author *data.Author) error
	DeleteAuthor(authorID int64) error
}

// CreateAuthor creates a new author record.
func (r *repository) CreateAuthor(author *data.Author) error {
	query := `
		INSERT INTO authors (name)
		VALUES ($1)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, author.Name).Scan(&author.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "authors_name_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetAuthor retrieves an author record by its ID.
func (r *repository) GetAuthor(authorID int64) (*data.Author, error) {
	if authorID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, name
		FROM authors
		WHERE id = $1`
	var author data.Author
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, authorID).Scan(&author.ID, &author.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &author, nil
}

// GetAllAuthors retrieves all author records.
func (r *repository) GetAllAuthors() ([]*data.Author, error) {
	query := `
		SELECT id, name
		FROM authors
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	authors := []*data.Author{}
	for rows.Next() {
		var author data.Author
		err := rows.Scan(&author.ID, &author.Name)
		if err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

// UpdateAuthor updates an author record.
func (r *repository) UpdateAuthor(author *data.Author) error {
	query := `
		UPDATE authors
		SET name = $1
		WHERE id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, author.Name, author.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "authors_name_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
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

// DeleteAuthor deletes an author record. The delete is unguarded: any
// book_authors links for the author cascade away with it.
func (r *repository) DeleteAuthor(authorID int64) error {
	if authorID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM authors
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, authorID)
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
