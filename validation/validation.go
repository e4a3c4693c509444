package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nijaru/video-api/errors"
	"github.com/nijaru/video-api/models"
)

// maxPage keeps (page-1)*per_page well inside int range.
const maxPage = math.MaxInt32

type Validator struct {
	fields []models.Field
}

// NewValidator returns a validator for the given field definitions, normally
// models.VideoFields.
func NewValidator(fields []models.Field) *Validator {
	return &Validator{fields: fields}
}

// RequestValidationOpts holds options for request validation
type RequestValidationOpts struct {
	MaxContentLength int64
}

// ValidateRequest rejects requests whose declared body size exceeds the limit.
// Bodies sent without a Content-Length are bounded while reading instead.
func (v *Validator) ValidateRequest(r *http.Request, opts RequestValidationOpts) error {
	const op = "Validator.ValidateRequest"

	if opts.MaxContentLength > 0 && r.ContentLength > opts.MaxContentLength {
		return errors.InvalidInput(op, nil, "Request body too large")
	}

	return nil
}

// ValidateCreate checks a create payload. Every required field must be present
// and valid; nothing is written before this succeeds.
func (v *Validator) ValidateCreate(body []byte) (models.VideoInput, error) {
	const op = "Validator.ValidateCreate"

	values, err := v.parse(op, body, true)
	if err != nil {
		return models.VideoInput{}, err
	}

	var in models.VideoInput
	for name, value := range values {
		switch name {
		case "name":
			in.Name = value.(string)
		case "views":
			in.Views = value.(int64)
		case "likes":
			in.Likes = value.(int64)
		}
	}
	return in, nil
}

// ValidateUpdate checks a partial update payload. Omitted and null fields stay
// nil in the returned patch.
func (v *Validator) ValidateUpdate(body []byte) (models.VideoPatch, error) {
	const op = "Validator.ValidateUpdate"

	values, err := v.parse(op, body, false)
	if err != nil {
		return models.VideoPatch{}, err
	}

	var patch models.VideoPatch
	for name, value := range values {
		switch name {
		case "name":
			s := value.(string)
			patch.Name = &s
		case "views":
			n := value.(int64)
			patch.Views = &n
		case "likes":
			n := value.(int64)
			patch.Likes = &n
		}
	}
	return patch, nil
}

func (v *Validator) parse(op string, body []byte, requireAll bool) (map[string]any, error) {
	obj, err := decodeObject(op, body)
	if err != nil {
		return nil, err
	}

	if requireAll {
		var missing []string
		for _, f := range v.fields {
			if f.Required && !present(obj, f.Name) {
				missing = append(missing, "'"+f.Name+"'")
			}
		}
		if len(missing) > 0 {
			return nil, errors.InvalidInput(op, nil, "Missing required fields: "+strings.Join(missing, ", "))
		}
	}

	values := make(map[string]any, len(v.fields))
	for _, f := range v.fields {
		if !present(obj, f.Name) {
			continue
		}
		value, err := checkField(op, f, obj[f.Name])
		if err != nil {
			return nil, err
		}
		values[f.Name] = value
	}
	return values, nil
}

func checkField(op string, f models.Field, raw json.RawMessage) (any, error) {
	switch f.Type {
	case models.FieldString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errors.InvalidInput(op, err, fmt.Sprintf("'%s' must be a string", f.Name))
		}
		if utf8.RuneCountInString(s) < f.MinLength {
			return nil, errors.InvalidInput(op, nil, fmt.Sprintf("'%s' must not be empty", f.Name))
		}
		return s, nil

	case models.FieldInteger:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		// Decoding into any keeps quoted numbers as strings.
		var decoded any
		if err := dec.Decode(&decoded); err != nil {
			return nil, errors.InvalidInput(op, err, fmt.Sprintf("'%s' must be an integer", f.Name))
		}
		num, ok := decoded.(json.Number)
		if !ok {
			return nil, errors.InvalidInput(op, nil, fmt.Sprintf("'%s' must be an integer", f.Name))
		}
		n, err := num.Int64()
		if err != nil {
			return nil, errors.InvalidInput(op, err, fmt.Sprintf("'%s' must be an integer", f.Name))
		}
		if f.Minimum != nil && n < *f.Minimum {
			if *f.Minimum == 0 {
				return nil, errors.InvalidInput(op, nil, fmt.Sprintf("'%s' must be a non-negative integer", f.Name))
			}
			return nil, errors.InvalidInput(op, nil, fmt.Sprintf("'%s' must be at least %d", f.Name, *f.Minimum))
		}
		return n, nil
	}

	return nil, errors.Internal(op, nil, fmt.Sprintf("unsupported field type %q", f.Type))
}

// decodeObject parses body as a JSON object. An empty body is an empty object.
func decodeObject(op string, body []byte) (map[string]json.RawMessage, error) {
	obj := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) == 0 {
		return obj, nil
	}
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, errors.InvalidInput(op, err, "Request body must be a JSON object")
	}
	return obj, nil
}

func present(obj map[string]json.RawMessage, name string) bool {
	raw, ok := obj[name]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// ParsePageRequest reads page and per_page from the query string. Missing or
// unparseable values fall back to the defaults; results are clamped.
func ParsePageRequest(query url.Values) models.PageRequest {
	page := intParam(query, "page", models.DefaultPage)
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	perPage := intParam(query, "per_page", models.DefaultPerPage)
	if perPage < 1 {
		perPage = 1
	}
	if perPage > models.MaxPerPage {
		perPage = models.MaxPerPage
	}

	return models.PageRequest{Page: page, PerPage: perPage}
}

func intParam(query url.Values, key string, def int) int {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// ParseID parses a video id taken from the request path.
func ParseID(raw string) (int64, error) {
	const op = "validation.ParseID"

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, errors.NotFound(op, err, fmt.Sprintf("Video with ID %s not found", raw))
	}
	return id, nil
}
