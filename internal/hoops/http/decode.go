package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/hoops/pkg/httpx"
)

// decodeJSON reads a bounded JSON body into v. Unknown fields are ignored so
// that an id_token riding along for authentication does not fail decoding.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
