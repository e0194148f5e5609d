package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusNotLoggedIn            = http.StatusUnauthorized
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
	ErrStatusConflict               = http.StatusConflict
	ErrStatusUnavailable            = http.StatusServiceUnavailable
)

var (
	ErrInternalServer   = errors.New("Internal server error")
	ErrClient           = errors.New("Bad request")
	ErrNotLoggedIn      = errors.New("Unauthorized access")
	ErrNotFound         = errors.New("Resource not found")
	ErrNotAnImage       = errors.New("Uploaded file is not an image")
	ErrConflict         = errors.New("Conflicting record found")
	ErrFileTooLarge     = errors.New("Uploaded file exceeds the size limit")
	ErrStoreUnavailable = errors.New("Image store is not ready")
	ErrStorage          = errors.New("Storage failure")
)

var errorMap = map[error]int{
	ErrInternalServer:   ErrStatusInternalServer,
	ErrClient:           ErrStatusClient,
	ErrNotLoggedIn:      ErrStatusNotLoggedIn,
	ErrNotFound:         ErrStatusNotFound,
	ErrNotAnImage:       ErrStatusClient,
	ErrConflict:         ErrStatusConflict,
	ErrFileTooLarge:     ErrStatusFileSizeExceedingLimit,
	ErrStoreUnavailable: ErrStatusUnavailable,
	ErrStorage:          ErrStatusInternalServer,
}

// GetErrorStatusCode resolves err to an HTTP status code, unwrapping
// wrapped sentinels so callers can attach context with fmt.Errorf.
func GetErrorStatusCode(err error) int {
	for sentinel, code := range errorMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}

	return ErrStatusInternalServer
}
