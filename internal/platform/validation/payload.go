package validation

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"time"

	"libraryapi/internal/apperr"
)

// MsgInvalidBody is reported when the request body is not a JSON object.
const MsgInvalidBody = "Request body must be a valid JSON object"

// Payload is a decoded JSON object. Numbers are kept as json.Number.
type Payload map[string]any

// Decode reads a JSON object. An empty body decodes to an empty payload.
func Decode(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Payload{}, nil
		}
		return nil, apperr.Validation(MsgInvalidBody)
	}
	if p == nil {
		return nil, apperr.Validation(MsgInvalidBody)
	}
	return p, nil
}

// Has reports whether the key was supplied.
func (p Payload) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// String returns the value as a string, or nil when absent or null.
func (p Payload) String(name string) *string {
	switch v := p[name].(type) {
	case string:
		return &v
	case json.Number:
		s := v.String()
		return &s
	}
	return nil
}

// Int returns the value as an integer, or nil when absent or not an integer.
func (p Payload) Int(name string) *int64 {
	var s string
	switch v := p[name].(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	default:
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// Time returns the value parsed as an ISO-8601 date, or nil.
func (p Payload) Time(name string) *time.Time {
	s, ok := p[name].(string)
	if !ok {
		return nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil
	}
	return &t
}
