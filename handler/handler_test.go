package handler

import (
	"io"

	"github.com/emzola/librarium/config"
	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/emzola/librarium/service"
)

// stubService embeds the service interface so individual tests only stub
// the methods the handler under test calls.
type stubService struct {
	service.Service
	listCatalog func(genres []string, search string) ([]*data.Book, error)
	approveLoan func(loanID int64, ops []data.PatchOp) (*data.Loan, error)
}

func (s *stubService) ListCatalog(genres []string, search string) ([]*data.Book, error) {
	return s.listCatalog(genres, search)
}

func (s *stubService) ApproveLoan(loanID int64, ops []data.PatchOp) (*data.Loan, error) {
	return s.approveLoan(loanID, ops)
}

func newTestHandler(svc service.Service) *Handler {
	return New(config.Config{}, jsonlog.New(io.Discard, jsonlog.LevelError), svc)
}
