package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"novelhub/internal/pkg/apperr"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"invalid token", apperr.ErrInvalidToken, http.StatusUnauthorized, 40102},
		{"expired token", apperr.ErrTokenExpired, http.StatusGone, 41001},
		{"unknown user", apperr.ErrUnknownUser, http.StatusUnauthorized, 40103},
		{"not found", apperr.NotFound("novel 1"), http.StatusNotFound, 40401},
		{"validation", apperr.Validation("title is required"), http.StatusBadRequest, 40001},
		{"invalid page", apperr.InvalidPage("index must be >= 1"), http.StatusBadRequest, 40002},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden, 40301},
		{"conflict", apperr.ErrConflict, http.StatusConflict, 40901},
		{"credentials", apperr.ErrInvalidCredentials, http.StatusUnauthorized, 40101},
		{"rate limited", apperr.ErrTooManyRequests, http.StatusTooManyRequests, 42901},
		{"store failure", apperr.Store(errors.New("boom")), http.StatusInternalServerError, 50001},
		{"wrapped", fmt.Errorf("outer: %w", apperr.ErrNotFound), http.StatusNotFound, 40401},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := FromError(tt.err)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if resp.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestFromError_HidesInternalDetail(t *testing.T) {
	_, resp := FromError(apperr.Store(errors.New("dial tcp 10.0.0.1:3306: refused")))
	if resp.Detail != "" {
		t.Fatalf("internal detail leaked: %q", resp.Detail)
	}

	_, resp = FromError(apperr.Validation("title is required"))
	if resp.Detail != "title is required" {
		t.Fatalf("detail = %q", resp.Detail)
	}
}
