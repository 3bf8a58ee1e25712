package documents_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platdesign/i18ngoose/modules/documents"
	"github.com/platdesign/i18ngoose/pkg/i18n"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

func articleSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := i18n.Transform(schema.MustNew(
		schema.Scalar("title", schema.KindString, schema.Options{schema.OptionI18n: true, schema.OptionRequired: true}),
		schema.Scalar("plain", schema.KindString, nil),
		schema.Array("items", schema.MustNew(
			schema.Scalar("name", schema.KindString, schema.Options{schema.OptionI18n: true}),
		), nil),
	), i18n.Options{Languages: []string{"de", "en"}, DefaultLanguage: "de"})
	require.NoError(t, err)
	return s
}

type fixture struct {
	server  *httptest.Server
	storage *documents.MemoryStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := articleSchema(t)
	storage := documents.NewMemoryStorage(s)
	srv := httptest.NewServer(documents.Router(documents.Options{
		Schema:    s,
		Storage:   storage,
		Languages: []string{"de", "en"},
	}))
	t.Cleanup(srv.Close)
	return &fixture{server: srv, storage: storage}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func (f *fixture) create(t *testing.T, lang string, raw map[string]any) string {
	t.Helper()
	status, body := f.do(t, http.MethodPost, "/?lang="+lang, raw)
	require.Equal(t, http.StatusCreated, status, body)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestRouter_Lifecycle(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	id := f.create(t, "de", map[string]any{
		"title": "Hallo",
		"plain": "P",
		"items": []any{map[string]any{"name": "Eins"}},
	})
	assert.Equal(t, 1, f.storage.Len())

	status, body := f.do(t, http.MethodPut, "/"+id+"?lang=en", map[string]any{
		"title": "Hello",
		"items": []any{map[string]any{"name": "One"}},
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Hello", body["title"])
	assert.Equal(t, id, body["_id"])

	status, body = f.do(t, http.MethodGet, "/"+id+"?lang=de", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hallo", body["title"])
	assert.Equal(t, "P", body["plain"])
	assert.Equal(t, []any{map[string]any{"name": "Eins"}}, body["items"])

	status, body = f.do(t, http.MethodGet, "/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"de": "Hallo", "en": "Hello"}, body["title"])
	assert.Equal(t, []any{map[string]any{"name": map[string]any{"de": "Eins", "en": "One"}}}, body["items"])

	status, _ = f.do(t, http.MethodDelete, "/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, 0, f.storage.Len())

	status, _ = f.do(t, http.MethodGet, "/"+id+"?lang=de", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_ContentLanguageHeader(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/", strings.NewReader(`{"title":"Hallo"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Language", "DE")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_Errors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	id := f.create(t, "de", map[string]any{"title": "Hallo"})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"create without language", http.MethodPost, "/", map[string]any{"title": "x"}, http.StatusBadRequest},
		{"unsupported language", http.MethodPost, "/?lang=fr", map[string]any{"title": "x"}, http.StatusBadRequest},
		{"body is not an object", http.MethodPost, "/?lang=de", []any{1, 2}, http.StatusBadRequest},
		{"cast failure", http.MethodPost, "/?lang=de", map[string]any{"title": 5}, http.StatusBadRequest},
		{"missing required default language", http.MethodPost, "/?lang=en", map[string]any{"title": "x"}, http.StatusUnprocessableEntity},
		{"update without language", http.MethodPut, "/" + id, map[string]any{"title": "x"}, http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/missing?lang=de", map[string]any{"title": "x"}, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/missing", nil, http.StatusNotFound},
		{"method not allowed", http.MethodPatch, "/" + id, nil, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := f.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}

	t.Run("validation fields", func(t *testing.T) {
		status, body := f.do(t, http.MethodPost, "/?lang=en", map[string]any{"title": "x"})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, map[string]any{"title.de": "is required"}, body["fields"])
	})

	t.Run("failed update keeps the stored document", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPut, "/"+id+"?lang=de", map[string]any{"title": ""})
		require.Equal(t, http.StatusUnprocessableEntity, status)

		status, body := f.do(t, http.MethodGet, "/"+id+"?lang=de", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Hallo", body["title"])
	})
}

func TestRouter_PanicsWithoutDependencies(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { documents.Router(documents.Options{}) })
}
