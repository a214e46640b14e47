package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/librarium/data"
)

type loans interface {
	CreateLoan(loan *data.Loan) error
	GetLoan(loanID int64) (*data.Loan, error)
	GetAllPendingLoans() ([]*data.Loan, error)
	GetAllLoansForUser(userEmail, status string, filters data.Filters) ([]*data.Loan, data.Metadata, error)
	UpdateLoan(loan *data.Loan) error
}

// CreateLoan creates a new loan record. Issued date, due date and status
// come from the database defaults (now, now, Pending).
func (r *repository) CreateLoan(loan *data.Loan) error {
	query := `
		INSERT INTO loans (book_id, user_email, days)
		VALUES ($1, $2, $3)
		RETURNING id, issued_date, due_date, status, version`
	args := []interface{}{loan.BookID, loan.UserEmail, loan.Days}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&loan.ID,
		&loan.IssuedDate,
		&loan.DueDate,
		&loan.Status,
		&loan.Version,
	)
	if err != nil {
		switch {
		case err.Error() == `pq: insert or update on table "loans" violates foreign key constraint "loans_book_id_fkey"`:
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// GetLoan retrieves a loan record by its ID.
func (r *repository) GetLoan(loanID int64) (*data.Loan, error) {
	if loanID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, book_id, user_email, days, issued_date, due_date, status, version
		FROM loans
		WHERE id = $1`
	var loan data.Loan
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, loanID).Scan(
		&loan.ID,
		&loan.BookID,
		&loan.UserEmail,
		&loan.Days,
		&loan.IssuedDate,
		&loan.DueDate,
		&loan.Status,
		&loan.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &loan, nil
}

// GetAllPendingLoans retrieves the loan records still awaiting a decision.
// The match is an exact, case-sensitive comparison against Pending.
func (r *repository) GetAllPendingLoans() ([]*data.Loan, error) {
	query := `
		SELECT id, book_id, user_email, days, issued_date, due_date, status, version
		FROM loans
		WHERE status = $1
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, data.LoanStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	loans := []*data.Loan{}
	for rows.Next() {
		var loan data.Loan
		err := rows.Scan(
			&loan.ID,
			&loan.BookID,
			&loan.UserEmail,
			&loan.Days,
			&loan.IssuedDate,
			&loan.DueDate,
			&loan.Status,
			&loan.Version,
		)
		if err != nil {
			return nil, err
		}
		loans = append(loans, &loan)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}

// GetAllLoansForUser retrieves a paginated list of loan records belonging to
// a user, optionally filtered by status.
func (r *repository) GetAllLoansForUser(userEmail, status string, filters data.Filters) ([]*data.Loan, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, book_id, user_email, days, issued_date, due_date, status, version
		FROM loans
		WHERE user_email = $1
		AND (status = $2 OR $2 = '')
		ORDER BY %s %s, id ASC
		LIMIT $3 OFFSET $4`, filters.SortColumn(), filters.SortDirection())
	args := []interface{}{userEmail, status, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	loans := []*data.Loan{}
	for rows.Next() {
		var loan data.Loan
		err := rows.Scan(
			&totalRecords,
			&loan.ID,
			&loan.BookID,
			&loan.UserEmail,
			&loan.Days,
			&loan.IssuedDate,
			&loan.DueDate,
			&loan.Status,
			&loan.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		loans = append(loans, &loan)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return loans, metadata, nil
}

// UpdateLoan updates a loan record.
func (r *repository) UpdateLoan(loan *data.Loan) error {
	query := `
		UPDATE loans
		SET book_id = $1, user_email = $2, days = $3, issued_date = $4, due_date = $5, status = $6, version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version`
	args := []interface{}{
		loan.BookID,
		loan.UserEmail,
		loan.Days,
		loan.IssuedDate,
		loan.DueDate,
		loan.Status,
		loan.ID,
		loan.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&loan.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}
