package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/service"
	"github.com/julienschmidt/httprouter"
)

// withLoanID attaches a loanId route parameter the way the router would.
func withLoanID(r *http.Request, id string) *http.Request {
	params := httprouter.Params{{Key: "loanId", Value: id}}
	ctx := context.WithValue(r.Context(), httprouter.ParamsKey, params)
	return r.WithContext(ctx)
}

func TestApproveLoanUnknownLoanIsNotFound(t *testing.T) {
	svc := &stubService{
		approveLoan: func(int64, []data.PatchOp) (*data.Loan, error) {
			return nil, service.ErrRecordNotFound
		},
	}
	h := newTestHandler(svc)
	body := strings.NewReader(`[{"op":"replace","path":"/status","value":"Approved"}]`)
	r := httptest.NewRequest(http.MethodPatch, "/v1/loans/99/status", body)
	rr := httptest.NewRecorder()
	h.approveLoanHandler(rr, withLoanID(r, "99"))
	if rr.Code != http.StatusNotFound {
		t.Errorf("want status %d; got %d", http.StatusNotFound, rr.Code)
	}
}

func TestApproveLoanReturnsPatchedLoan(t *testing.T) {
	svc := &stubService{
		approveLoan: func(loanID int64, ops []data.PatchOp) (*data.Loan, error) {
			return &data.Loan{ID: loanID, Status: "Approved"}, nil
		},
	}
	h := newTestHandler(svc)
	body := strings.NewReader(`[{"op":"replace","path":"/status","value":"Approved"}]`)
	r := httptest.NewRequest(http.MethodPatch, "/v1/loans/42/status", body)
	rr := httptest.NewRecorder()
	h.approveLoanHandler(rr, withLoanID(r, "42"))
	if rr.Code != http.StatusOK {
		t.Errorf("want status %d; got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Approved") {
		t.Errorf("response body missing patched status: %q", rr.Body.String())
	}
}
