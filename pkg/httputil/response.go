package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an ErrorResponse and returns the status used.
func WriteError(w http.ResponseWriter, r *http.Request, err error) int {
	status := StatusFor(err)
	resp := ErrorResponse{
		Code:      errs.GetCode(err),
		Message:   errs.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	}
	if status == http.StatusRequestEntityTooLarge {
		resp.Code = errs.ErrCodeInvalidInput
		resp.Message = "request body too large"
	}
	if resp.Code == "" {
		resp.Code = errs.ErrCodeInternal
		resp.Message = "internal error"
	}
	_ = WriteJSON(w, status, resp)
	return status
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidPath,
		errs.ErrCodeShape, errs.ErrCodeOutOfRange, errs.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
