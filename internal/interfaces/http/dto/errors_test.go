package dto

import (
	"net/http"
	"testing"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusForKind(t *testing.T) {
	tests := []struct {
		name string
		kind shared.ErrorKind
		want int
	}{
		{"validation maps to 400", shared.ErrKindValidation, http.StatusBadRequest},
		{"not found maps to 404", shared.ErrKindNotFound, http.StatusNotFound},
		{"conflict maps to 409", shared.ErrKindConflict, http.StatusConflict},
		{"data integrity maps to 500", shared.ErrKindDataIntegrity, http.StatusInternalServerError},
		{"unknown kind maps to 500", shared.ErrorKind("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusForKind(tt.kind))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewSuccessResponseWithMetaZeroPageSize(t *testing.T) {
	resp := NewSuccessResponseWithMeta(nil, 10, 1, 0)

	assert.Equal(t, 0, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Product not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Product not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Nil(t, resp.Error.Fields)
}

func TestNewFieldErrorResponse(t *testing.T) {
	fields := map[string][]string{
		"items[0].price": {"must be positive"},
	}
	resp := NewFieldErrorResponse(ErrCodeValidation, "Request validation failed", "req-456", fields)

	assert.False(t, resp.Success)
	assert.Equal(t, fields, resp.Error.Fields)
}
