// internal/app/system/httpjson/httpjson.go

// Package httpjson is the request/response glue for the JSON API: bounded
// body decoding with typed shape errors, and a single response writer.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/inputval"
)

// maxBodyBytes bounds request bodies; nothing in this API legitimately
// approaches it.
const maxBodyBytes = 1 << 20

// Decode reads the request body into dst. Type mismatches come back as
// *inputval.ShapeError keyed on the offending field, so a non-numeric
// coordinate reads the same as any other validation failure; other decode
// problems come back as a plain error for a generic 400.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return inputval.NewShapeError(field, fmt.Sprintf("must be of type %s", typeErr.Type))
		}
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("malformed JSON: %w", err)
	}

	// A second document in the body means the client is confused.
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// Write serializes v with the given status. A nil v writes only headers.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
