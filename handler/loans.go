package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/internal/validator"
	"github.com/emzola/librarium/service"
)

// RequestLoan godoc
// @Summary Request a book loan
// @Description This endpoint records a borrow request for a book with status Pending
// @Tags loans
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateLoanRequestBody true "JSON payload required to request a loan"
// @Success 201 {object} data.Loan
// @Failure 400
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /v1/loans [post]
func (h *Handler) requestLoanHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateLoanRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	loan, err := h.service.RequestLoan(user.Email, requestBody.BookID, requestBody.Days)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/loans/%d", loan.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"loan": loan}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListPendingLoans godoc
// @Summary List pending loan requests
// @Description This endpoint lists the loan requests still awaiting a decision
// @Tags loans
// @Produce json
// @Param token header string true "Bearer token"
// @Success 200 {array} data.Loan
// @Failure 403
// @Failure 500
// @Router /v1/loans/pending [get]
func (h *Handler) listPendingLoansHandler(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListPendingLoans()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loans": loans}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ApproveLoan godoc
// @Summary Decide a loan request
// @Description This endpoint applies a field-level patch document to a loan, e.g. [{"op":"replace","path":"/status","value":"Approved"}]
// @Tags loans
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param loanId path int true "ID of loan to patch"
// @Param body body dto.PatchLoanRequestBody true "Patch document"
// @Success 200 {object} data.Loan
// @Failure 400
// @Failure 404
// @Failure 409
// @Failure 422
// @Failure 500
// @Router /v1/loans/{loanId}/status [patch]
func (h *Handler) approveLoanHandler(w http.ResponseWriter, r *http.Request) {
	loanID, err := h.readIDParam(r, "loanId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.PatchLoanRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	loan, err := h.service.ApproveLoan(loanID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrBadRequest):
			h.badRequestResponse(w, r, errors.New("invalid patch document"))
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loan": loan}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listUserLoansHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListUserLoans
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Status = h.readString(qs, "status", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "id")
	qsInput.Filters.SortSafeList = []string{"id", "issued_date", "due_date", "-id", "-issued_date", "-due_date"}
	user := h.contextGetUser(r)
	loans, metadata, err := h.service.ListUserLoans(user.Email, qsInput.Status, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loans": loans, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
