package httphandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ericfisherdev/personauth/internal/application"
	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// ListPersons returns every stored person.
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.persons.FindAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := make([]PersonResponse, 0, len(persons))
	for _, p := range persons {
		resp = append(resp, toPersonResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetPerson returns a single person by id.
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	person, err := h.persons.FindByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if person == nil {
		writeError(w, http.StatusNotFound, errTypeNotFound, "person "+strconv.FormatInt(id, 10)+" not found")
		return
	}

	writeJSON(w, http.StatusOK, toPersonResponse(*person))
}

// SignUp registers a new person with a hashed password. The response has no
// body.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req PersonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := h.persons.SignUp(r.Context(), req.toModel()); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// CreatePerson stores the request body as-is and echoes the saved record.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req PersonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	saved, err := h.persons.Create(r.Context(), req.toModel())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPersonResponse(saved))
}

// UpdatePerson replaces the stored record identified by the body's id.
func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req PersonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.persons.Update(r.Context(), req.toModel()); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// PatchPerson overwrites the fields present in the body and echoes the body.
func (h *Handler) PatchPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var fields map[string]string
	if !decodeBody(w, r, &fields) {
		return
	}
	if fields == nil {
		fields = map[string]string{}
	}

	echoed, err := h.persons.PartialUpdate(r.Context(), id, fields)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, echoed)
}

// DeletePerson removes the person identified by the path id.
func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.persons.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// writeServiceError maps a service error onto a status code and error body.
// Unclassified errors are logged and reported without their message.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case application.IsValidation(err):
		writeError(w, http.StatusBadRequest, errTypeValidation, err.Error())
	case application.IsNotFound(err):
		writeError(w, http.StatusNotFound, errTypeNotFound, err.Error())
	case errors.Is(err, driven.ErrLoginTaken):
		writeError(w, http.StatusConflict, errTypeConflict, "login already taken")
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, errTypeInternal, "internal server error")
	}
}

// pathID parses the {id} path segment, writing a 400 response on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errTypeValidation, "invalid person id")
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into v, writing a 400 response on
// failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errTypeValidation, "invalid request body")
		return false
	}
	return true
}
