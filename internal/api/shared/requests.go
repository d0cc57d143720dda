package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes bounds JSON request bodies. A full import batch of
// word IDs fits comfortably.
const MaxRequestBodyBytes = 1 << 20

var (
	// ErrEmptyBody is returned when the request has no body.
	ErrEmptyBody = errors.New("request body is empty")

	// ErrMalformedBody is returned when the body is not a single JSON object
	// matching the request type.
	ErrMalformedBody = errors.New("request body is malformed")
)

// validate reports fields by their JSON names, so "ids[0]" rather than
// "IDs[0]" reaches clients.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}

// DecodeRequest decodes and validates a JSON request body of type T.
// Decoding failures wrap ErrEmptyBody or ErrMalformedBody; anything else is
// a validation error from ValidateRequest.
func DecodeRequest[T any](r *http.Request) (T, error) {
	var req T
	if err := DecodeJSON(r, &req); err != nil {
		return req, err
	}
	if err := ValidateRequest(&req); err != nil {
		return req, err
	}
	return req, nil
}

// DecodeJSON decodes the request body into v. Unknown fields and trailing
// data are rejected.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON body", ErrMalformedBody)
	}
	return nil
}

// ValidateRequest runs v's own Validate method when it has one and the
// struct tag validator otherwise.
func ValidateRequest(v any) error {
	if sv, ok := v.(interface{ Validate() error }); ok {
		return sv.Validate()
	}
	return validate.Struct(v)
}

// IsDecodeError reports whether err came from reading the body rather than
// from validation.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrEmptyBody) || errors.Is(err, ErrMalformedBody)
}
