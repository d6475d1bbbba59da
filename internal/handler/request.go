package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/planner/backend/internal/validate"
)

// decodeJSON reads the request body into dst and validates it.
// A body that is not JSON is reported as a validation error on "body".
// A body cut off by the size limit keeps its *http.MaxBytesError so it maps to 413.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return validate.Errors{"body": {"Invalid JSON"}}
	}
	return validate.Struct(dst)
}

// pathUUID binds the named chi path parameter into a UUID the same way the
// oapi-codegen chi server does for path parameters.
func pathUUID(r *http.Request, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return openapi_types.UUID{}, validate.Errors{name: {"Invalid uuid"}}
	}
	return id, nil
}

// writeJSON writes v as the JSON body with the given status.
// Encoding errors are ignored: the header is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
