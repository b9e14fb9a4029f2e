package response

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/halitebot/internal/api/apierr"
)

// JSON writes data as a JSON response. data is encoded before the status
// goes out, so a value that cannot be encoded becomes a 500 rather than a
// truncated success.
func JSON(w http.ResponseWriter, status int, data any) {
	var body []byte
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			apierr.WriteError(w, apierr.NewInternalError())
			return
		}
		body = append(b, '\n')
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
