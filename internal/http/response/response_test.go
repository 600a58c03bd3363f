package response

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/ecommerce-store/internal/errs"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "conflict", err: errs.ErrConflict, want: http.StatusConflict},
		{name: "not found", err: errs.ErrNotFound, want: http.StatusNotFound},
		{name: "unauthorized", err: errs.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "forbidden", err: errs.ErrForbidden, want: http.StatusForbidden},
		{name: "invalid", err: errs.ErrInvalid, want: http.StatusBadRequest},
		{name: "upstream", err: errs.ErrUpstream, want: http.StatusBadGateway},
		{name: "wrapped", err: fmt.Errorf("op: %w", errs.ErrNotFound), want: http.StatusNotFound},
		{name: "unknown", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestEnvelope(t *testing.T) {
	ok := OK("logged out successfully")
	assert.True(t, ok.Success)
	assert.Equal(t, "logged out successfully", ok.Message)
	assert.Nil(t, ok.Data)

	withData := OKWithData(map[string]any{"id": 1})
	assert.True(t, withData.Success)
	assert.NotNil(t, withData.Data)

	errResp := Error("invalid request body")
	assert.False(t, errResp.Success)
	assert.Equal(t, "invalid request body", errResp.Message)
}
