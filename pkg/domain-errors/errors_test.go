package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	err := New(CodeValidation, "age out of range")
	if CodeOf(err) != CodeValidation {
		t.Fatalf("expected %s, got %s", CodeValidation, CodeOf(err))
	}

	wrapped := fmt.Errorf("handler: %w", err)
	if CodeOf(wrapped) != CodeValidation {
		t.Fatalf("expected code to survive wrapping, got %s", CodeOf(wrapped))
	}

	if CodeOf(errors.New("plain")) != CodeInternal {
		t.Fatalf("expected untyped error to map to internal")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "storage unavailable")

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the cause")
	}
	if MessageOf(err) != "storage unavailable" {
		t.Fatalf("expected caller-safe message, got %q", MessageOf(err))
	}
}

func TestMessageOfUntypedError(t *testing.T) {
	if got := MessageOf(errors.New("pq: relation does not exist")); got != "internal error" {
		t.Fatalf("untyped error leaked its message: %q", got)
	}
}

func TestNewValidationCarriesAllViolations(t *testing.T) {
	violations := []FieldViolation{
		{Field: "age", Reason: "must be between 18 and 70"},
		{Field: "revenu_mensuel", Reason: "must be greater than or equal to 0"},
	}
	err := NewValidation(violations)

	got := ViolationsOf(fmt.Errorf("predict: %w", err))
	if len(got) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(got))
	}
	if got[0].Field != "age" || got[1].Field != "revenu_mensuel" {
		t.Fatalf("unexpected violation fields: %+v", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeValidation:   http.StatusUnprocessableEntity,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeNotFound:     http.StatusNotFound,
		CodeUnavailable:  http.StatusServiceUnavailable,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatus(code); got != want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}
