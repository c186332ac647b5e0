package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams returns the named route parameter exactly as routed.
func ExtractIDFromParams(r *http.Request, paramName string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(paramName)
}

// ResolveID looks raw up with find. The API also accepts /api/park/park-1.json,
// so when raw itself is unknown a trailing ".json" is dropped and the lookup
// retried. An id that really ends in ".json" still matches first.
func ResolveID[T any](raw string, find func(string) (T, bool)) (T, bool) {
	if v, ok := find(raw); ok {
		return v, true
	}
	if id, cut := strings.CutSuffix(raw, ".json"); cut && id != "" {
		return find(id)
	}
	var zero T
	return zero, false
}
