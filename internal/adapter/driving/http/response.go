package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/personauth/internal/domain/model"
)

// Error kinds reported in the "type" member of an error body.
const (
	errTypeValidation   = "ValidationError"
	errTypeNotFound     = "NotFoundError"
	errTypeConflict     = "ConflictError"
	errTypeUnauthorized = "UnauthorizedError"
	errTypeInternal     = "InternalError"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"internal server error","type":"InternalError"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error body of the given kind.
func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, errorResponse{Message: message, Type: errType})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// PersonResponse is the JSON representation of a stored person. Password
// carries whatever the store holds, normally a bcrypt hash.
type PersonResponse struct {
	ID       int64  `json:"id"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// PersonRequest is the JSON body for sign-up, create and full update.
type PersonRequest struct {
	ID       int64  `json:"id"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func (r PersonRequest) toModel() model.Person {
	return model.Person{ID: r.ID, Login: r.Login, Password: r.Password}
}

// toPersonResponse converts a domain Person to its JSON representation.
func toPersonResponse(p model.Person) PersonResponse {
	return PersonResponse{
		ID:       p.ID,
		Login:    p.Login,
		Password: p.Password,
	}
}
