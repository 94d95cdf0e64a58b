package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const multipartMemory = 10 << 20

// pathID parses the {id} URL parameter as a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// fieldReader converts raw request values into typed fields and remembers
// every value that could not be parsed.
type fieldReader struct {
	values map[string]string
	errs   validator.ValidationErrors
}

func newQueryReader(q url.Values) *fieldReader {
	values := make(map[string]string, len(q))
	for key := range q {
		values[key] = strings.TrimSpace(q.Get(key))
	}
	return &fieldReader{values: values}
}

// has reports whether the field was sent, even if empty.
func (f *fieldReader) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f *fieldReader) String(key string) string {
	return f.values[key]
}

func (f *fieldReader) OptionalString(key string) *string {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	return &v
}

// Int sets *dst when the field is present and non-empty.
func (f *fieldReader) Int(key, label string, dst *int) {
	v := f.values[key]
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errs.Add(key, label+" must be a number")
		return
	}
	*dst = n
}

func (f *fieldReader) OptionalInt(key, label string) *int {
	if f.values[key] == "" {
		return nil
	}
	var n int
	before := len(f.errs)
	f.Int(key, label, &n)
	if len(f.errs) > before {
		return nil
	}
	return &n
}

func (f *fieldReader) OptionalInt64(key, label string) *int64 {
	v := f.values[key]
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f.errs.Add(key, label+" must be a number")
		return nil
	}
	return &n
}

func (f *fieldReader) OptionalDecimal(key, label string) *decimal.Decimal {
	v := f.values[key]
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		f.errs.Add(key, label+" must be a number")
		return nil
	}
	return &d
}

// merge combines parse errors with the result of a DTO's Validate. Rules that
// failed only because a field could not be parsed are dropped.
func (f *fieldReader) merge(validateErr error) error {
	if validateErr == nil {
		return f.errs.Err()
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(validateErr, &fieldErrs) {
		return validateErr
	}
	if len(f.errs) == 0 {
		return fieldErrs
	}

	unparsed := make(map[string]bool, len(f.errs))
	for _, e := range f.errs {
		unparsed[e.Field] = true
	}

	merged := append(validator.ValidationErrors{}, f.errs...)
	for _, e := range fieldErrs {
		if !unparsed[e.Field] {
			merged = append(merged, e)
		}
	}
	return merged
}

// decodeJSONFields flattens a JSON object into string values so JSON and form
// bodies share one parsing path. Null members are treated as absent.
func decodeJSONFields(r *http.Request) (map[string]string, error) {
	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	values := make(map[string]string, len(raw))
	for key, v := range raw {
		switch t := v.(type) {
		case nil:
		case string:
			values[key] = t
		case json.Number:
			values[key] = t.String()
		case bool:
			values[key] = strconv.FormatBool(t)
		default:
			return nil, fmt.Errorf("field %q has unsupported type", key)
		}
	}
	return values, nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func isURLEncoded(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// formFields returns the first value of every form field.
func formFields(form url.Values) map[string]string {
	values := make(map[string]string, len(form))
	for key := range form {
		values[key] = form.Get(key)
	}
	return values
}

// readFields reads a JSON, urlencoded or multipart body into string fields.
func readFields(r *http.Request) (map[string]string, error) {
	switch {
	case isMultipart(r):
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, err
		}
		return formFields(r.MultipartForm.Value), nil
	case isURLEncoded(r):
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return formFields(r.PostForm), nil
	default:
		return decodeJSONFields(r)
	}
}
