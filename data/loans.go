package data

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/emzola/librarium/internal/validator"
)

// LoanStatusPending is the only status the loan workflow assigns itself.
// Librarians move loans to other free-form status values through the patch
// endpoint; no closed set of statuses is enforced.
const LoanStatusPending = "Pending"

// Loan defines a borrow request for a book. IssuedDate and DueDate both
// default to the creation time; the requested duration in days is recorded
// but deliberately not applied to DueDate, matching the approval workflow
// where a librarian sets the real dates.
type Loan struct {
	ID         int64     `json:"id"`
	BookID     int64     `json:"book_id"`
	UserEmail  string    `json:"user_email"`
	Days       int32     `json:"days"`
	IssuedDate time.Time `json:"issued_date"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"`
	Version    int32     `json:"-"`
}

// ValidateLoan validates a borrow request.
func ValidateLoan(v *validator.Validator, loan *Loan) {
	v.Check(loan.BookID > 0, "book_id", "must be a positive integer")
	v.Check(loan.Days > 0, "days", "must be greater than zero")
	v.Check(loan.Days <= 365, "days", "must not be more than 365")
	v.Check(loan.UserEmail != "", "user_email", "must be provided")
}

// PatchOp is a single field-level operation in a loan patch document.
type PatchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// ApplyPatch applies a patch document to the loan, one operation at a
// time. "add" and "replace" both set a field; "remove" resets a field to
// its zero value. An unknown op or path aborts the whole patch.
func (l *Loan) ApplyPatch(ops []PatchOp) error {
	for _, op := range ops {
		switch op.Op {
		case "add", "replace":
			err := l.setField(op.Path, op.Value)
			if err != nil {
				return err
			}
		case "remove":
			err := l.setField(op.Path, nil)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported patch op %q", op.Op)
		}
	}
	return nil
}

func (l *Loan) setField(path string, value json.RawMessage) error {
	unmarshal := func(dst interface{}) error {
		if value == nil {
			return nil
		}
		return json.Unmarshal(value, dst)
	}
	switch strings.TrimPrefix(path, "/") {
	case "status":
		l.Status = ""
		return unmarshal(&l.Status)
	case "days":
		l.Days = 0
		return unmarshal(&l.Days)
	case "user_email":
		l.UserEmail = ""
		return unmarshal(&l.UserEmail)
	case "book_id":
		l.BookID = 0
		return unmarshal(&l.BookID)
	case "issued_date":
		l.IssuedDate = time.Time{}
		return unmarshal(&l.IssuedDate)
	case "due_date":
		l.DueDate = time.Time{}
		return unmarshal(&l.DueDate)
	default:
		return fmt.Errorf("unknown patch path %q", path)
	}
}
