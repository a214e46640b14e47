package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/librarium/data"
)

type publishers interface {
	CreatePublisher(publisher *data.Publisher) error
	GetPublisher(publisherID int64) (*data.Publisher, error)
	GetAllPublishers() ([]*data.Publisher, error)
	UpdatePublisher(publisher *data.Publisher) error
	DeletePublisher(publisherID int64) error
}

// CreatePublisher creates a new publisher record.
func (r *repository) CreatePublisher(publisher *data.Publisher) error {
	query := `
		INSERT INTO publishers (name)
		VALUES ($1)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, publisher.Name).Scan(&publisher.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "publishers_name_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetPublisher retrieves a publisher record by its ID.
func (r *repository) GetPublisher(publisherID int64) (*data.Publisher, error) {
	if publisherID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, name
		FROM publishers
		WHERE id = $1`
	var publisher data.Publisher
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, publisherID).Scan(&publisher.ID, &publisher.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &publisher, nil
}

// GetAllPublishers retrieves all publisher records.
func (r *repository) GetAllPublishers() ([]*data.Publisher, error) {
	query := `
		SELECT id, name
		FROM publishers
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	publishers := []*data.Publisher{}
	for rows.Next() {
		var publisher data.Publisher
		err := rows.Scan(&publisher.ID, &publisher.Name)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, &publisher)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return publishers, nil
}

// UpdatePublisher updates a publisher record.
func (r *repository) UpdatePublisher(publisher *data.Publisher) error {
	query := `
		UPDATE publishers
		SET name = $1
		WHERE id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, publisher.Name, publisher.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "publishers_name_key"`:
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

// DeletePublisher deletes a publisher record. Books still referencing the
// publisher will surface a foreign key error from the database; no
// referential check is made here.
func (r *repository) DeletePublisher(publisherID int64) error {
	if publisherID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM publishers
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, publisherID)
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
