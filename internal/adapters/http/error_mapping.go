package httpadapter

import (
	"net/http"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

// Validation and loader failures are the caller's fault; everything else,
// including provider and timeout failures, is operational.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrEmptySource):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
