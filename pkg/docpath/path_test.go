package docpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platdesign/i18ngoose/pkg/docpath"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want docpath.Path
	}{
		{"", nil},
		{"title", docpath.Path{"title"}},
		{"sub.test.de", docpath.Path{"sub", "test", "de"}},
		{".a..b.", docpath.Path{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got := docpath.Parse(tt.in)
			assert.Equal(t, len(tt.want), len(got))
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestPath_Helpers(t *testing.T) {
	t.Parallel()

	p := docpath.Parse("sub.test.de")

	assert.Equal(t, "sub.test.de", p.String())
	assert.Equal(t, "de", p.Last())
	assert.Equal(t, "sub.test", p.Parent().String())
	assert.True(t, p.HasPrefix(docpath.Parse("sub")))
	assert.False(t, p.HasPrefix(docpath.Parse("sub.other")))
	assert.False(t, docpath.Parse("sub").HasPrefix(p))
	assert.True(t, docpath.Path(nil).IsZero())
	assert.Equal(t, "", docpath.Path(nil).Last())

	t.Run("child does not alias parent", func(t *testing.T) {
		parent := p.Parent()
		en := parent.Child("en")
		de := parent.Child("de")

		assert.Equal(t, "sub.test.en", en.String())
		assert.Equal(t, "sub.test.de", de.String())
		assert.Equal(t, "sub.test.de", p.String())
	})
}

func TestGetSet(t *testing.T) {
	t.Parallel()

	t.Run("creates intermediate maps", func(t *testing.T) {
		doc := map[string]any{}
		docpath.Set(doc, docpath.Parse("sub.test.de"), "Hallo")

		v, ok := docpath.Get(doc, docpath.Parse("sub.test.de"))
		require.True(t, ok)
		assert.Equal(t, "Hallo", v)
		assert.Equal(t, map[string]any{"sub": map[string]any{"test": map[string]any{"de": "Hallo"}}}, doc)
	})

	t.Run("replaces scalar intermediates", func(t *testing.T) {
		doc := map[string]any{"title": "plain"}
		docpath.Set(doc, docpath.Parse("title.en"), "Title")

		assert.Equal(t, map[string]any{"en": "Title"}, doc["title"])
	})

	t.Run("indexes into slices", func(t *testing.T) {
		doc := map[string]any{
			"items": []any{
				map[string]any{"name": "a"},
				map[string]any{"name": "b"},
			},
		}

		v, ok := docpath.Get(doc, docpath.Parse("items.1.name"))
		require.True(t, ok)
		assert.Equal(t, "b", v)

		docpath.Set(doc, docpath.Parse("items.0.name"), "z")
		assert.Equal(t, "z", doc["items"].([]any)[0].(map[string]any)["name"])

		_, ok = docpath.Get(doc, docpath.Parse("items.2.name"))
		assert.False(t, ok)
		_, ok = docpath.Get(doc, docpath.Parse("items.x"))
		assert.False(t, ok)
	})

	t.Run("nil values exist", func(t *testing.T) {
		doc := map[string]any{"title": nil}

		v, ok := docpath.Get(doc, docpath.Parse("title"))
		assert.True(t, ok)
		assert.Nil(t, v)
		assert.True(t, docpath.Exists(doc, docpath.Parse("title")))
		assert.False(t, docpath.Exists(doc, docpath.Parse("title.de")))
	})

	t.Run("root path", func(t *testing.T) {
		doc := map[string]any{"a": 1}

		v, ok := docpath.Get(doc, nil)
		require.True(t, ok)
		assert.Equal(t, doc, v)

		docpath.Set(doc, nil, "ignored")
		assert.Equal(t, map[string]any{"a": 1}, doc)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"title": map[string]any{"de": "T", "en": "E"}}

	assert.True(t, docpath.Delete(doc, docpath.Parse("title.en")))
	assert.False(t, docpath.Delete(doc, docpath.Parse("title.en")))
	assert.False(t, docpath.Delete(doc, docpath.Parse("missing.en")))
	assert.False(t, docpath.Delete(doc, nil))
	assert.Equal(t, map[string]any{"title": map[string]any{"de": "T"}}, doc)
}
