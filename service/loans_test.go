package service

import (
	"errors"
	"testing"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/repository"
)

func TestRequestLoanUnknownBookCreatesNoRow(t *testing.T) {
	created := false
	repo := &mockRepo{
		getBook:    func(int64) (*data.Book, error) { return nil, repository.ErrRecordNotFound },
		createLoan: func(*data.Loan) error { created = true; return nil },
	}
	s := newTestService(repo, &stubStore{})
	_, err := s.RequestLoan("reader@example.com", 999, 14)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("want ErrRecordNotFound; got %v", err)
	}
	if created {
		t.Error("loan row was created for an unknown book")
	}
}

func TestApproveLoanUnknownLoanIsNotFound(t *testing.T) {
	repo := &mockRepo{
		getLoan: func(int64) (*data.Loan, error) { return nil, repository.ErrRecordNotFound },
	}
	s := newTestService(repo, &stubStore{})
	ops := []data.PatchOp{{Op: "replace", Path: "/status", Value: []byte(`"Approved"`)}}
	_, err := s.ApproveLoan(42, ops)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("want ErrRecordNotFound; got %v", err)
	}
}

func TestApproveLoanAppliesPatchAndPersists(t *testing.T) {
	var persisted *data.Loan
	repo := &mockRepo{
		getLoan: func(int64) (*data.Loan, error) {
			return &data.Loan{ID: 42, BookID: 7, UserEmail: "reader@example.com", Days: 14, Status: data.LoanStatusPending, Version: 1}, nil
		},
		updateLoan: func(loan *data.Loan) error { persisted = loan; return nil },
	}
	s := newTestService(repo, &stubStore{})
	ops := []data.PatchOp{{Op: "replace", Path: "/status", Value: []byte(`"Approved"`)}}
	loan, err := s.ApproveLoan(42, ops)
	if err != nil {
		t.Fatal(err)
	}
	if loan.Status != "Approved" {
		t.Errorf("want status Approved; got %q", loan.Status)
	}
	if persisted == nil || persisted.Status != "Approved" {
		t.Error("patched loan was not persisted")
	}
}

func TestListPendingLoansPassesThrough(t *testing.T) {
	repo := &mockRepo{
		pendingLoans: func() ([]*data.Loan, error) {
			return []*data.Loan{{ID: 1, Status: data.LoanStatusPending}}, nil
		},
	}
	s := newTestService(repo, &stubStore{})
	loans, err := s.ListPendingLoans()
	if err != nil {
		t.Fatal(err)
	}
	if len(loans) != 1 || loans[0].Status != data.LoanStatusPending {
		t.Errorf("unexpected pending loans: %+v", loans)
	}
}
