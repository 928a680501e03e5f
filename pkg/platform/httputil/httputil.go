// Package httputil centralizes JSON encoding and error translation for HTTP
// handlers so every endpoint speaks the same envelope.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	dErrors "attrisk/pkg/domain-errors"
)

// Validatable is implemented by request types that can validate themselves
// after decoding. DecodeAndPrepare calls it before handing the request to
// the handler.
type Validatable interface {
	Validate() error
}

// Normalizable is optionally implemented by request types that trim or
// canonicalize fields before validation.
type Normalizable interface {
	Normalize()
}

type errorBody struct {
	Error            string                   `json:"error"`
	ErrorDescription string                   `json:"error_description,omitempty"`
	Violations       []dErrors.FieldViolation `json:"violations,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the shared error envelope.
// Internal errors omit the description so infrastructure detail never
// reaches the caller; everything else echoes the caller-safe message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := errorBody{Error: string(code)}
	if code != dErrors.CodeInternal {
		body.ErrorDescription = dErrors.MessageOf(err)
	}
	if code == dErrors.CodeValidation {
		body.Violations = dErrors.ViolationsOf(err)
	}
	WriteJSON(w, dErrors.HTTPStatus(code), body)
}

// DecodeAndPrepare decodes the JSON request body into T, normalizes it when
// supported, and validates it. On any failure it writes the error response
// and returns ok=false; the handler should simply return.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, decodeError(err))
		return nil, false
	}

	if n, ok := any(&req).(Normalizable); ok {
		n.Normalize()
	}

	if v, ok := any(&req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			logger.WarnContext(ctx, "request validation failed",
				"request_id", requestID,
				"error", err,
			)
			WriteError(w, err)
			return nil, false
		}
	}

	return &req, true
}

// decodeError distinguishes a type mismatch on a known field (a validation
// failure the caller can itemize) from an undecodable body.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return dErrors.NewValidation([]dErrors.FieldViolation{{
			Field:  typeErr.Field,
			Reason: fmt.Sprintf("must be of type %s", typeErr.Type),
		}})
	}
	return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
}
