package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/internal/validator"
	"github.com/julienschmidt/httprouter"
)

type envelope map[string]interface{}

// readIDParam pulls a url id parameter from the request and returns it or an error if any.
func (h *Handler) readIDParam(r *http.Request, param string) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName(param), 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// encodeJSON serializes data to JSON and writes the appropriate HTTP status code and headers if necessary.
func (h *Handler) encodeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')
	for k, v := range headers {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

// readString returns a string value from the query string, or the provided default value
// if no matching key could be found.
func (h *Handler) readString(qs url.Values, key string, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// readCSV reads a string value from the query string and then splits it into a slice
// on the comma character. If no matching key could be found, it returns the provided
// default value.
func (h *Handler) readCSV(qs url.Values, key string, defaultValue []string) []string {
	csv := qs.Get(key)
	if csv == "" {
		return defaultValue
	}
	return strings.Split(csv, ",")
}

// readInt reads a string value from the query string and converts it to an integer
// before returning. If no matching key could be found it returns the provided default
// value. If the value couldn't be converted to an integer, then we record an error
// message in the provided Validator instance.
func (h *Handler) readInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

// parseBookForm reads the multipart catalog form into a BookForm along with
// the uploaded image file headers. Numeric fields that fail to parse are
// reported as a bad request by the caller.
func (h *Handler) parseBookForm(r *http.Request) (dto.BookForm, []*multipart.FileHeader, error) {
	var form dto.BookForm
	err := r.ParseMultipartForm(10 << 20)
	if err != nil {
		return form, nil, err
	}
	form.Name = r.FormValue("name")
	form.Genre = r.FormValue("genre")
	form.PublishDate = r.FormValue("publish_date")
	form.Language = r.FormValue("language")
	form.Edition = r.FormValue("edition")
	form.Description = r.FormValue("description")
	if s := r.FormValue("publisher_id"); s != "" {
		form.PublisherID, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return form, nil, fmt.Errorf("form field publisher_id must be an integer")
		}
	}
	if s := r.FormValue("cost"); s != "" {
		form.Cost, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return form, nil, fmt.Errorf("form field cost must be a number")
		}
	}
	if s := r.FormValue("rating"); s != "" {
		form.Rating, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return form, nil, fmt.Errorf("form field rating must be a number")
		}
	}
	if s := r.FormValue("pages"); s != "" {
		pages, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return form, nil, fmt.Errorf("form field pages must be an integer")
		}
		form.Pages = int32(pages)
	}
	if s := r.FormValue("stock"); s != "" {
		stock, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return form, nil, fmt.Errorf("form field stock must be an integer")
		}
		form.Stock = int32(stock)
	}
	for _, s := range r.MultipartForm.Value["author_ids"] {
		for _, field := range strings.Split(s, ",") {
			authorID, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
			if err != nil {
				return form, nil, fmt.Errorf("form field author_ids must contain integers")
			}
			form.AuthorIDs = append(form.AuthorIDs, authorID)
		}
	}
	return form, r.MultipartForm.File["images"], nil
}
