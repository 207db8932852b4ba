package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/promanage/promanage-api/internal/api/shared"
)

// DecodeJSON decodes the request body into v. Unknown fields are not
// rejected; the public API tolerates extra fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	shared.RespondWithJSON(w, r, status, data)
}

// RespondWithError writes a JSON error response with the given status code and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	shared.RespondWithError(w, r, status, message)
}
