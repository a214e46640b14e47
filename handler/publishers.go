package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/service"
)

func (h *Handler) createPublisherHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreatePublisherRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	publishers, err := h.service.CreatePublisher(requestBody.PublisherName)
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
	err = h.encodeJSON(w, http.StatusCreated, envelope{"publishers": publishers}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showPublisherHandler(w http.ResponseWriter, r *http.Request) {
	publisherID, err := h.readIDParam(r, "publisherId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	publisher, err := h.service.ShowPublisher(publisherID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"publisher": publisher}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listPublishersHandler(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.service.ListPublishers()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"publishers": publishers}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updatePublisherHandler(w http.ResponseWriter, r *http.Request) {
	publisherID, err := h.readIDParam(r, "publisherId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdatePublisherRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	publishers, err := h.service.UpdatePublisher(publisherID, requestBody.PublisherName)
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"publishers": publishers}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deletePublisherHandler(w http.ResponseWriter, r *http.Request) {
	publisherID, err := h.readIDParam(r, "publisherId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	publishers, err := h.service.DeletePublisher(publisherID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"publishers": publishers}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
