package dto

import "github.com/emzola/librarium/data"

// CreateLoanRequestBody defines a request body for RequestLoan.
type CreateLoanRequestBody struct {
	BookID int64 `json:"book_id"`
	Days   int32 `json:"days"`
}

// PatchLoanRequestBody is the patch document applied by ApproveLoan.
type PatchLoanRequestBody []data.PatchOp

// QsListUserLoans defines query strings for ListUserLoans.
type QsListUserLoans struct {
	Status  string
	Filters data.Filters
}
