package apierr

import (
	"net/http"
	"strings"

	"github.com/fluxsave/fluxsave-go/utils"
)

// Parse turns a (size-limited) error body into an *APIError. The body is
// decoded the same way success bodies are: JSON object or array when it
// parses, raw text otherwise. The message comes from the object's "message"
// field when present, else the status text stands in; the taxonomy code is
// resolved from that same message.
func Parse(slurp []byte, status int) *APIError {
	payload := utils.DecodeBody(slurp)

	message := http.StatusText(status)
	if obj, ok := payload.(map[string]any); ok {
		if msg, ok := getString(obj, "message"); ok && msg != "" {
			message = msg
		}
	}

	e := New(status, message, payload)
	e.Raw = strings.TrimSpace(string(slurp))
	return e
}

func getString(m map[string]any, key string) (string, bool) {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}
