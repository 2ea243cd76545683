package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds request bodies read by PeekJSONField.
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned when a peeked body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("httpx: request body too large")

// PeekJSONField reads a top-level string field from a JSON request body and
// restores the body so later handlers can decode it again. A body that is not
// a JSON object, or a field that is not a string, reports ok=false.
func PeekJSONField(r *http.Request, field string) (value string, ok bool, err error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", false, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return "", false, fmt.Errorf("httpx: read body: %w", err)
	}
	if len(raw) > MaxBodyBytes {
		return "", false, ErrBodyTooLarge
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil {
		return "", false, nil
	}
	v, present := fields[field]
	if !present {
		return "", false, nil
	}
	if json.Unmarshal(v, &value) != nil {
		return "", false, nil
	}
	return value, true, nil
}
