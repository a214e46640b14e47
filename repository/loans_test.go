package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/emzola/librarium/data"
)

func TestCreateLoanUsesDatabaseDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO loans")).
		WithArgs(int64(7), "reader@example.com", int32(14)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "issued_date", "due_date", "status", "version"}).
			AddRow(1, now, now, data.LoanStatusPending, 1))

	repo := New(db)
	loan := &data.Loan{BookID: 7, UserEmail: "reader@example.com", Days: 14}
	if err = repo.CreateLoan(loan); err != nil {
		t.Fatal(err)
	}
	if loan.Status != data.LoanStatusPending {
		t.Errorf("want status %q; got %q", data.LoanStatusPending, loan.Status)
	}
	if !loan.DueDate.Equal(loan.IssuedDate) {
		t.Errorf("want due date equal to issued date; got %v and %v", loan.DueDate, loan.IssuedDate)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetAllPendingLoansFiltersOnStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1")).
		WithArgs(data.LoanStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "book_id", "user_email", "days", "issued_date", "due_date", "status", "version"}).
			AddRow(1, 7, "reader@example.com", 14, now, now, data.LoanStatusPending, 1))

	repo := New(db)
	loans, err := repo.GetAllPendingLoans()
	if err != nil {
		t.Fatal(err)
	}
	if len(loans) != 1 {
		t.Fatalf("want 1 loan; got %d", len(loans))
	}
	if loans[0].Status != data.LoanStatusPending {
		t.Errorf("want status %q; got %q", data.LoanStatusPending, loans[0].Status)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
