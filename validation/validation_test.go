package validation

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nijaru/video-api/errors"
	"github.com/nijaru/video-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreate(t *testing.T) {
	validator := NewValidator(models.VideoFields)

	tests := []struct {
		name           string
		body           string
		want           models.VideoInput
		wantErr        bool
		wantErrMessage string
	}{
		{
			name: "valid payload",
			body: `{"name": "Test Video", "views": 10, "likes": 2}`,
			want: models.VideoInput{Name: "Test Video", Views: 10, Likes: 2},
		},
		{
			name: "zero counters",
			body: `{"name": "A", "views": 0, "likes": 0}`,
			want: models.VideoInput{Name: "A"},
		},
		{
			name: "unknown fields ignored",
			body: `{"id": 99, "name": "A", "views": 1, "likes": 1, "extra": true}`,
			want: models.VideoInput{Name: "A", Views: 1, Likes: 1},
		},
		{
			name:           "missing likes",
			body:           `{"name": "A", "views": 1}`,
			wantErr:        true,
			wantErrMessage: "'likes'",
		},
		{
			name:           "null name counts as missing",
			body:           `{"name": null, "views": 1, "likes": 1}`,
			wantErr:        true,
			wantErrMessage: "'name'",
		},
		{
			name:           "empty body",
			body:           ``,
			wantErr:        true,
			wantErrMessage: "missing required fields",
		},
		{
			name:           "empty name",
			body:           `{"name": "", "views": 1, "likes": 1}`,
			wantErr:        true,
			wantErrMessage: "must not be empty",
		},
		{
			name:           "negative views",
			body:           `{"name": "A", "views": -1, "likes": 1}`,
			wantErr:        true,
			wantErrMessage: "non-negative",
		},
		{
			name:           "negative likes",
			body:           `{"name": "A", "views": 1, "likes": -3}`,
			wantErr:        true,
			wantErrMessage: "non-negative",
		},
		{
			name:           "fractional views",
			body:           `{"name": "A", "views": 1.5, "likes": 1}`,
			wantErr:        true,
			wantErrMessage: "must be an integer",
		},
		{
			name:           "string views",
			body:           `{"name": "A", "views": "ten", "likes": 1}`,
			wantErr:        true,
			wantErrMessage: "must be an integer",
		},
		{
			name:           "numeric name",
			body:           `{"name": 5, "views": 1, "likes": 1}`,
			wantErr:        true,
			wantErrMessage: "must be a string",
		},
		{
			name:           "malformed json",
			body:           `{"name": "A",`,
			wantErr:        true,
			wantErrMessage: "json object",
		},
		{
			name:           "array body",
			body:           `[1, 2, 3]`,
			wantErr:        true,
			wantErrMessage: "json object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.ValidateCreate([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidInput(err))
				assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tt.wantErrMessage))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	validator := NewValidator(models.VideoFields)

	t.Run("views only", func(t *testing.T) {
		patch, err := validator.ValidateUpdate([]byte(`{"views": 50}`))
		require.NoError(t, err)
		require.NotNil(t, patch.Views)
		assert.Equal(t, int64(50), *patch.Views)
		assert.Nil(t, patch.Name)
		assert.Nil(t, patch.Likes)
	})

	t.Run("null is omitted", func(t *testing.T) {
		patch, err := validator.ValidateUpdate([]byte(`{"name": null, "likes": 4}`))
		require.NoError(t, err)
		assert.Nil(t, patch.Name)
		require.NotNil(t, patch.Likes)
		assert.Equal(t, int64(4), *patch.Likes)
	})

	t.Run("empty body", func(t *testing.T) {
		patch, err := validator.ValidateUpdate(nil)
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})

	t.Run("negative likes", func(t *testing.T) {
		_, err := validator.ValidateUpdate([]byte(`{"name": "ok", "likes": -1}`))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
		assert.Contains(t, err.Error(), "'likes'")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := validator.ValidateUpdate([]byte(`{"name": ""}`))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
		assert.Contains(t, err.Error(), "'name' must not be empty")
	})

	t.Run("bad type", func(t *testing.T) {
		_, err := validator.ValidateUpdate([]byte(`{"views": true}`))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
	})
}

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.PageRequest
	}{
		{"defaults", "", models.PageRequest{Page: 1, PerPage: 10}},
		{"explicit", "page=2&per_page=5", models.PageRequest{Page: 2, PerPage: 5}},
		{"per_page clamped high", "per_page=100", models.PageRequest{Page: 1, PerPage: 50}},
		{"per_page clamped low", "per_page=0", models.PageRequest{Page: 1, PerPage: 1}},
		{"negative page", "page=-3", models.PageRequest{Page: 1, PerPage: 10}},
		{"unparseable values", "page=abc&per_page=x", models.PageRequest{Page: 1, PerPage: 10}},
		{"huge page", "page=9999999999999", models.PageRequest{Page: maxPage, PerPage: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParsePageRequest(query))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "-1", "99999999999999999999"} {
		_, err := ParseID(raw)
		assert.True(t, errors.IsNotFound(err), "raw=%q", raw)
	}
}

func TestValidateRequest(t *testing.T) {
	validator := NewValidator(models.VideoFields)
	opts := RequestValidationOpts{MaxContentLength: 1024 * 1024}

	tests := []struct {
		name          string
		contentLength int64
		options       RequestValidationOpts
		wantErr       bool
	}{
		{
			name:    "no limit",
			options: RequestValidationOpts{},
		},
		{
			name:          "within limit",
			contentLength: 100,
			options:       opts,
		},
		{
			name:          "unknown length",
			contentLength: -1,
			options:       opts,
		},
		{
			name:          "excessive content length",
			contentLength: 2 * 1024 * 1024,
			options:       opts,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/videos/1", nil)
			req.ContentLength = tt.contentLength

			err := validator.ValidateRequest(req, tt.options)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInput(err))
			assert.Contains(t, err.Error(), "body too large")
		})
	}
}
