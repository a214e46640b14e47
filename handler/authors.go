package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/service"
)

// CreateAuthor godoc
// @Summary Create a new author
// @Description This endpoint creates a new author and returns the refreshed author list
// @Tags authors
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateAuthorRequestBody true "JSON payload required to create an author"
// @Success 201 {array} data.Author
// @Failure 400
// @Failure 409
// @Failure 422
// @Failure 500
// @Router /v1/authors [post]
func (h *Handler) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateAuthorRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	authors, err := h.service.CreateAuthor(requestBody.AuthorName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"authors": authors}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.readIDParam(r, "authorId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	author, err := h.service.ShowAuthor(authorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"author": author}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.ListAuthors()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"authors": authors}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.readIDParam(r, "authorId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateAuthorRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	authors, err := h.service.UpdateAuthor(authorID, requestBody.AuthorName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"authors": authors}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.readIDParam(r, "authorId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	authors, err := h.service.DeleteAuthor(authorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"authors": authors}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
