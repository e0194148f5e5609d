package errs

import (
	"fmt"
	"net/http"
	"testing"
)

func TestGetErrorStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: ErrNotFound, want: http.StatusNotFound},
		{name: "wrapped client error", err: fmt.Errorf("%w: main image is required", ErrClient), want: http.StatusBadRequest},
		{name: "store unavailable", err: ErrStoreUnavailable, want: http.StatusServiceUnavailable},
		{name: "storage fault", err: ErrStorage, want: http.StatusInternalServerError},
		{name: "unknown error falls back to 500", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorStatusCode(tt.err); got != tt.want {
				t.Errorf("GetErrorStatusCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
