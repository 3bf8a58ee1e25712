package i18n_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platdesign/i18ngoose/pkg/i18n"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

func catalogSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := schema.MustNew(
		schema.Scalar("title", schema.KindString, translatable),
		schema.Scalar("plain", schema.KindString, nil),
		schema.Scalar("sub.test", schema.KindString, translatable),
		schema.Array("items", schema.MustNew(
			schema.Scalar("name", schema.KindString, translatable),
			schema.Scalar("qty", schema.KindNumber, nil),
		), nil),
		schema.Object("meta", schema.MustNew(
			schema.Scalar("caption", schema.KindString, translatable),
		), nil),
		schema.Array("tags", schema.MustNew(
			schema.Scalar("slug", schema.KindString, nil),
		), nil),
	)
	_, err := i18n.Transform(s, deEnDefault)
	require.NoError(t, err)
	return s
}

func catalogObject() map[string]any {
	return map[string]any{
		"title": map[string]any{"de": "Titel", "en": "Title"},
		"plain": "P",
		"sub":   map[string]any{"test": map[string]any{"de": "Test"}},
		"items": []any{
			map[string]any{"name": map[string]any{"de": "Eins", "en": "One"}, "qty": float64(1)},
			map[string]any{"name": map[string]any{"de": "Zwei"}, "qty": float64(2)},
		},
		"meta": map[string]any{"caption": map[string]any{"en": "Caption"}},
		"tags": []any{map[string]any{"slug": "go"}},
	}
}

func TestCompileLocalizer(t *testing.T) {
	t.Parallel()

	t.Run("memoized per schema", func(t *testing.T) {
		s := catalogSchema(t)
		l := i18n.CompileLocalizer(s)
		assert.Same(t, l, i18n.CompileLocalizer(s))
		assert.NotSame(t, l, i18n.CompileLocalizer(catalogSchema(t)))
	})

	t.Run("one collapse per translatable field", func(t *testing.T) {
		s := catalogSchema(t)
		// title, sub.test, items, meta; tags has nothing to localize.
		assert.Equal(t, 4, i18n.CompileLocalizer(s).Len())
	})

	t.Run("plain schema", func(t *testing.T) {
		s := schema.MustNew(schema.Scalar("plain", schema.KindString, nil))
		assert.Equal(t, 0, i18n.CompileLocalizer(s).Len())
		assert.Equal(t, 0, i18n.CompileLocalizer(nil).Len())
	})

	t.Run("declared language-like paths are not translations", func(t *testing.T) {
		s := schema.MustNew(
			schema.Scalar("label.de", schema.KindString, nil),
			schema.Scalar("label.en", schema.KindString, nil),
		)
		_, err := i18n.Transform(s, deEn)
		require.NoError(t, err)
		assert.Equal(t, 0, i18n.CompileLocalizer(s).Len())
	})
}

func TestCompileLocalizer_SelfReference(t *testing.T) {
	t.Parallel()

	node := schema.MustNew(schema.Scalar("label", schema.KindString, translatable))
	require.NoError(t, node.Add(schema.Array("children", node, nil)))
	_, err := i18n.Transform(node, deEnDefault)
	require.NoError(t, err)

	l := i18n.CompileLocalizer(node)
	assert.Equal(t, 2, l.Len())
	assert.Same(t, l, i18n.CompileLocalizer(node))

	doc, err := i18n.InitFromRaw(node, "de", map[string]any{
		"label": "Wurzel",
		"children": []any{
			map[string]any{
				"label":    "Kind",
				"children": []any{map[string]any{"label": "Enkel"}},
			},
		},
	})
	require.NoError(t, err)
	doc, err = i18n.SetFromRaw(doc, "en", map[string]any{
		"label":    "Root",
		"children": []any{map[string]any{"label": "Child"}},
	})
	require.NoError(t, err)

	got, err := i18n.ToLocalizedObject(doc, "en")
	require.NoError(t, err)
	want := map[string]any{
		"label": "Root",
		"children": []any{
			map[string]any{
				"label": "Child",
				"children": []any{
					map[string]any{"label": nil, "children": []any{}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("localized tree mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalizer_Apply(t *testing.T) {
	t.Parallel()

	t.Run("de", func(t *testing.T) {
		obj := i18n.CompileLocalizer(catalogSchema(t)).Apply(catalogObject(), "de")
		want := map[string]any{
			"title": "Titel",
			"plain": "P",
			"sub":   map[string]any{"test": "Test"},
			"items": []any{
				map[string]any{"name": "Eins", "qty": float64(1)},
				map[string]any{"name": "Zwei", "qty": float64(2)},
			},
			"meta": map[string]any{"caption": nil},
			"tags": []any{map[string]any{"slug": "go"}},
		}
		if diff := cmp.Diff(want, obj); diff != "" {
			t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing languages become nil", func(t *testing.T) {
		obj := i18n.CompileLocalizer(catalogSchema(t)).Apply(catalogObject(), "en")
		assert.Equal(t, "Title", obj["title"])
		assert.Equal(t, map[string]any{"test": nil}, obj["sub"])
		items := obj["items"].([]any)
		require.Len(t, items, 2)
		assert.Equal(t, "One", items[0].(map[string]any)["name"])
		assert.Nil(t, items[1].(map[string]any)["name"])
		assert.Equal(t, "Caption", obj["meta"].(map[string]any)["caption"])
	})

	t.Run("missing containers are skipped", func(t *testing.T) {
		obj := i18n.CompileLocalizer(catalogSchema(t)).Apply(map[string]any{"plain": "P"}, "de")
		assert.Equal(t, map[string]any{"plain": "P", "title": nil}, obj)
	})

	t.Run("localizes in place", func(t *testing.T) {
		obj := catalogObject()
		out := i18n.CompileLocalizer(catalogSchema(t)).Apply(obj, "de")
		assert.Equal(t, "Titel", obj["title"])
		assert.Equal(t, fmt.Sprintf("%p", obj), fmt.Sprintf("%p", out))
	})

	t.Run("nil object", func(t *testing.T) {
		assert.Nil(t, i18n.CompileLocalizer(catalogSchema(t)).Apply(nil, "de"))
	})
}

func TestLocalizer_Concurrent(t *testing.T) {
	t.Parallel()

	l := i18n.CompileLocalizer(catalogSchema(t))
	langs := []string{"de", "en"}
	want := map[string]string{"de": "Titel", "en": "Title"}

	var wg sync.WaitGroup
	results := make([]map[string]any, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Apply(catalogObject(), langs[i%2])
		}(i)
	}
	wg.Wait()

	for i, obj := range results {
		assert.Equal(t, want[langs[i%2]], obj["title"])
	}
}

func TestCompileLocalizer_Concurrent(t *testing.T) {
	t.Parallel()

	s := catalogSchema(t)
	var wg sync.WaitGroup
	plans := make([]*i18n.Localizer, 20)
	for i := range plans {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plans[i] = i18n.CompileLocalizer(s)
		}(i)
	}
	wg.Wait()

	for _, p := range plans {
		assert.Same(t, plans[0], p)
	}
}
