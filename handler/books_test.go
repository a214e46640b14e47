package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emzola/librarium/data"
)

func TestListCatalogEmptyResultIsNoContent(t *testing.T) {
	svc := &stubService{
		listCatalog: func(genres []string, search string) ([]*data.Book, error) {
			return []*data.Book{}, nil
		},
	}
	h := newTestHandler(svc)
	r := httptest.NewRequest(http.MethodGet, "/v1/catalog?genres=Horror", nil)
	rr := httptest.NewRecorder()
	h.listCatalogHandler(rr, r)
	if rr.Code != http.StatusNoContent {
		t.Errorf("want status %d; got %d", http.StatusNoContent, rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("want empty body; got %q", rr.Body.String())
	}
}

func TestListCatalogReturnsMatches(t *testing.T) {
	var gotGenres []string
	svc := &stubService{
		listCatalog: func(genres []string, search string) ([]*data.Book, error) {
			gotGenres = genres
			return []*data.Book{{ID: 1, Name: "Dune", Genre: "Science Fiction"}}, nil
		},
	}
	h := newTestHandler(svc)
	r := httptest.NewRequest(http.MethodGet, "/v1/catalog?genres=Science+Fiction,Horror&search=du", nil)
	rr := httptest.NewRecorder()
	h.listCatalogHandler(rr, r)
	if rr.Code != http.StatusOK {
		t.Errorf("want status %d; got %d", http.StatusOK, rr.Code)
	}
	if len(gotGenres) != 2 {
		t.Errorf("want 2 genres passed through; got %v", gotGenres)
	}
	if !strings.Contains(rr.Body.String(), "Dune") {
		t.Errorf("response body missing book: %q", rr.Body.String())
	}
}
