package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
)

// ParsePathUUID extracts and validates a UUID path parameter. A malformed
// identifier is a validation failure, never a lookup miss.
func ParsePathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "missing path parameter").WithDetails(map[string]any{"param": name})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed identifier").WithDetails(map[string]any{"param": name})
	}
	return id, nil
}

// RequireQuery returns the trimmed query value or a validation failure when absent.
func RequireQuery(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter required").WithDetails(map[string]any{"param": key})
	}
	return value, nil
}
