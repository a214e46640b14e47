package service

import (
	"errors"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/validator"
	"github.com/emzola/librarium/repository"
)

type loans interface {
	RequestLoan(userEmail string, bookID int64, days int32) (*data.Loan, error)
	ListPendingLoans() ([]*data.Loan, error)
	ApproveLoan(loanID int64, ops []data.PatchOp) (*data.Loan, error)
	ListUserLoans(userEmail string, status string, filters data.Filters) ([]*data.Loan, data.Metadata, error)
}

// RequestLoan service records a borrow request for a book. The request is
// created with status Pending; a librarian decides it later through the
// patch endpoint.
func (s *service) RequestLoan(userEmail string, bookID int64, days int32) (*data.Loan, error) {
	loan := &data.Loan{
		BookID:    bookID,
		UserEmail: userEmail,
		Days:      days,
	}
	v := validator.New()
	if data.ValidateLoan(v, loan); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	// The book must exist before any loan row is written.
	_, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	err = s.repo.CreateLoan(loan)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return loan, nil
}

// ListPendingLoans service retrieves the loan requests still awaiting a
// decision.
func (s *service) ListPendingLoans() ([]*data.Loan, error) {
	loans, err := s.repo.GetAllPendingLoans()
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// ApproveLoan service applies a patch document to a loan and persists the
// result. A missing loan is reported as not found.
func (s *service) ApproveLoan(loanID int64, ops []data.PatchOp) (*data.Loan, error) {
	loan, err := s.repo.GetLoan(loanID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	err = loan.ApplyPatch(ops)
	if err != nil {
		return nil, ErrBadRequest
	}
	v := validator.New()
	v.Check(loan.Status != "", "status", "must be provided")
	v.Check(loan.UserEmail != "", "user_email", "must be provided")
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateLoan(loan)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return loan, nil
}

// ListUserLoans service retrieves a paginated list of a user's own loans.
// Records can be filtered by status and sorted.
func (s *service) ListUserLoans(userEmail string, status string, filters data.Filters) ([]*data.Loan, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, data.Metadata{}, ErrFailedValidation
	}
	loans, metadata, err := s.repo.GetAllLoansForUser(userEmail, status, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return loans, metadata, nil
}
