package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_KindMapping(t *testing.T) {
	cases := []struct {
		kind   domain.ErrorKind
		status int
	}{
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindUnauthorized, http.StatusUnauthorized},
		{domain.KindValidation, http.StatusBadRequest},
		{domain.KindForbidden, http.StatusForbidden},
		{domain.KindConflict, http.StatusConflict},
		{domain.KindConfig, http.StatusInternalServerError},
		{domain.KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			rec, body := render(t, domain.E(tc.kind, "boom"))
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if body["message"] != "boom" {
				t.Fatalf("expected message preserved, got %v", body["message"])
			}
			if int(body["statusCode"].(float64)) != tc.status {
				t.Fatalf("statusCode field mismatch: %v", body["statusCode"])
			}
		})
	}
}

func TestErrorHandler_ValidationDetailsBecomeSubErrors(t *testing.T) {
	rec, body := render(t, domain.Validation("validation failed",
		"username is required", "email must be a valid email"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) != 2 {
		t.Fatalf("expected two sub-errors, got %v", body["errors"])
	}
	if errs[0] != "username is required" {
		t.Fatalf("unexpected first sub-error: %v", errs[0])
	}
}

func TestErrorHandler_UnclassifiedErrorIsGeneric500(t *testing.T) {
	rec, body := render(t, errors.New("database exploded: password=hunter2"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["message"] != "internal server error" {
		t.Fatalf("internal details must not leak, got %v", body["message"])
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	rec, body := render(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if body["message"] != "method not allowed" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}
