package data

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLoanApplyPatch(t *testing.T) {
	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	loan := &Loan{
		ID:         1,
		BookID:     7,
		UserEmail:  "patron@example.com",
		Days:       14,
		IssuedDate: issued,
		DueDate:    issued,
		Status:     LoanStatusPending,
	}

	due := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	dueJSON, _ := json.Marshal(due)
	ops := []PatchOp{
		{Op: "replace", Path: "/status", Value: json.RawMessage(`"Approved"`)},
		{Op: "replace", Path: "/due_date", Value: dueJSON},
	}
	if err := loan.ApplyPatch(ops); err != nil {
		t.Fatal(err)
	}
	if loan.Status != "Approved" {
		t.Errorf("expected status Approved; got %q", loan.Status)
	}
	if !loan.DueDate.Equal(due) {
		t.Errorf("expected due date %v; got %v", due, loan.DueDate)
	}
	if loan.Days != 14 {
		t.Errorf("untouched field changed: days = %d", loan.Days)
	}
}

func TestLoanApplyPatchRemove(t *testing.T) {
	loan := &Loan{Status: LoanStatusPending, Days: 14}
	ops := []PatchOp{{Op: "remove", Path: "/days"}}
	if err := loan.ApplyPatch(ops); err != nil {
		t.Fatal(err)
	}
	if loan.Days != 0 {
		t.Errorf("expected days to be zeroed; got %d", loan.Days)
	}
}

func TestLoanApplyPatchRejectsUnknowns(t *testing.T) {
	loan := &Loan{Status: LoanStatusPending}
	if err := loan.ApplyPatch([]PatchOp{{Op: "replace", Path: "/id", Value: json.RawMessage(`9`)}}); err == nil {
		t.Error("expected an error for an unknown path")
	}
	if err := loan.ApplyPatch([]PatchOp{{Op: "test", Path: "/status", Value: json.RawMessage(`"x"`)}}); err == nil {
		t.Error("expected an error for an unsupported op")
	}
}
