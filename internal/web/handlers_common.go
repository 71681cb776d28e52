package web

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/kazandelikates/catalog/internal/logging"
)

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// attachment builds a Content-Disposition value for a download.
func attachment(filename string) string {
	return `attachment; filename="` + strings.ReplaceAll(filename, `"`, "") + `"`
}

// writeBody sends a fully rendered body. Rendering into a buffer first
// lets handlers still answer with a proper error status on failure.
func writeBody(w http.ResponseWriter, r *http.Request, contentType string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	if _, err := body.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("response write failed", "error", err)
	}
}
