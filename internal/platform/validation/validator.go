// Package validation evaluates per-field rule sets against decoded JSON
// request bodies. Rules are expressed as go-playground/validator tags so the
// same predicates serve create and update requests.
package validation

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"libraryapi/internal/apperr"
)

var validate *validator.Validate

// Layouts accepted for date fields, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func init() {
	validate = validator.New()

	validate.RegisterValidation("is_string", validateIsString)
	validate.RegisterValidation("is_int", validateIsInt)
	validate.RegisterValidation("int_gte", validateIntGTE)
	validate.RegisterValidation("int_lte", validateIntLTE)
	validate.RegisterValidation("iso8601", validateISO8601)
}

// literal is the string form of a JSON value that was not a JSON string.
// Keeping it a distinct type lets is_string tell the two apart while every
// other tag sees an ordinary string.
type literal string

var plainString = reflect.TypeOf("")

func validateIsString(fl validator.FieldLevel) bool {
	return fl.Field().Type() == plainString
}

// validateIsInt accepts only values that fit in an int64.
func validateIsInt(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	return err == nil
}

func validateIntGTE(fl validator.FieldLevel) bool {
	min, v, ok := intBound(fl)
	return ok && v >= min
}

func validateIntLTE(fl validator.FieldLevel) bool {
	max, v, ok := intBound(fl)
	return ok && v <= max
}

func intBound(fl validator.FieldLevel) (bound, value int64, ok bool) {
	bound, err := strconv.ParseInt(fl.Param(), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	value, err = strconv.ParseInt(fl.Field().String(), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return bound, value, true
}

func validateISO8601(fl validator.FieldLevel) bool {
	_, err := ParseTime(fl.Field().String())
	return err == nil
}

// ParseTime parses an ISO-8601 date or date-time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// scalar converts a decoded JSON value into the string form checks run against.
func scalar(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return literal(t.String())
	case bool:
		return literal(strconv.FormatBool(t))
	default:
		return literal("[object]")
	}
}

// ParseID validates a path identifier. It must be a positive integer.
func ParseID(raw string, message string) (int64, error) {
	if err := validate.Var(raw, "is_int,int_gte=1"); err != nil {
		return 0, apperr.Validation(message)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation(message)
	}
	return id, nil
}
