package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/inclureach/inclureach/internal/db"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate email", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"bad credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user missing", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"duplicate application", db.ErrAlreadyApplied, http.StatusBadRequest},
		{"wrapped duplicate application", fmt.Errorf("apply: %w", db.ErrAlreadyApplied), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
