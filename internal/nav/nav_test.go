package nav

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/session"
)

func TestExpansionToggleTwiceRestores(t *testing.T) {
	for _, id := range []string{"part-1", "part-4", "unknown"} {
		e := NewExpansion("part-1", "part-2")
		before := e.Clone()
		e.Toggle(id)
		assert.NotEqual(t, before.Has(id), e.Has(id), "first toggle flips %s", id)
		e.Toggle(id)
		assert.True(t, before.Equal(e), "toggle(toggle(%s)) changed the set", id)
	}
}

func TestExpansionClone(t *testing.T) {
	e := NewExpansion("b", "a")
	c := e.Clone()
	c.Toggle("a")
	assert.True(t, e.Has("a"))
	assert.Equal(t, []string{"a", "b"}, e.IDs())
}

func TestDefaultState(t *testing.T) {
	parts := content.Spanish().PartIDs()

	all := DefaultState(parts, nil)
	assert.Equal(t, i18n.Spanish, all.Lang)
	assert.Equal(t, []string{"part-1", "part-2", "part-3", "part-4", "part-5"}, all.Expanded.IDs())

	some := DefaultState(parts, []string{"part-[12]"})
	assert.Equal(t, []string{"part-1", "part-2"}, some.Expanded.IDs())
}

func TestLanguageRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewController(session.NewMemoryStore(), DefaultState([]string{"part-1"}, nil))

	s, err := c.Load(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, i18n.Spanish, s.Lang)

	s, err = c.ToggleLanguage(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, i18n.English, s.Lang)

	s, err = c.ToggleLanguage(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, i18n.Spanish, s.Lang)
}

func TestControllerPersistsPerVisitor(t *testing.T) {
	ctx := context.Background()
	c := NewController(session.NewMemoryStore(), DefaultState([]string{"part-1", "part-2"}, nil))

	_, err := c.TogglePart(ctx, "alice", "part-1")
	require.NoError(t, err)
	_, err = c.SetLanguage(ctx, "alice", i18n.English)
	require.NoError(t, err)

	alice, err := c.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, i18n.English, alice.Lang)
	assert.Equal(t, []string{"part-2"}, alice.Expanded.IDs())

	bob, err := c.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, i18n.Spanish, bob.Lang)
	assert.Equal(t, []string{"part-1", "part-2"}, bob.Expanded.IDs())

	// Mutating a loaded state must not leak into the defaults.
	bob.Expanded.Toggle("part-1")
	assert.True(t, c.Defaults().Expanded.Has("part-1"))
}

func TestControllerConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	c := NewController(session.NewMemoryStore(), DefaultState(nil, nil))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.TogglePart(ctx, "v", "part-3")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := c.Load(ctx, "v")
	require.NoError(t, err)
	assert.False(t, s.Expanded.Has("part-3"), "an even number of toggles leaves the part collapsed")
}

func TestResolveFoundWithNeighbors(t *testing.T) {
	cat := content.Course()
	p := Resolve(cat, i18n.Spanish, "9.2")
	require.True(t, p.Found)
	assert.Equal(t, "Estrategias de Poda (Pruning)", p.Entry.Title)
	require.NotNil(t, p.Prev)
	require.NotNil(t, p.Next)
	assert.Equal(t, "9.1", p.Prev.ID)
	assert.Equal(t, "9.5", p.Next.ID)
	assert.Equal(t, "part-3", p.Part.ID)
	assert.Equal(t, "9", p.Section.ID)
}

func TestResolveMissingGivesPlaceholder(t *testing.T) {
	cat := content.Course()
	for _, lang := range i18n.All {
		p := Resolve(cat, lang, "nonexistent-id")
		assert.False(t, p.Found)
		assert.Equal(t, content.NotFound, p.Index)
		assert.Equal(t, i18n.T(lang, i18n.MsgNotFound), p.Placeholder)
		assert.Nil(t, p.Prev)
		assert.Nil(t, p.Next)
	}
}

func TestResolveAfterToggleKeepsID(t *testing.T) {
	es := content.NewCatalog(
		&content.Tree{Lang: i18n.Spanish, Parts: []content.Part{{ID: "p", Sections: []content.Section{{ID: "s", Subsections: []content.Subsection{{ID: "solo-es"}}}}}}},
		&content.Tree{Lang: i18n.English, Parts: []content.Part{{ID: "p", Sections: []content.Section{{ID: "s", Subsections: []content.Subsection{{ID: "only-en"}}}}}}},
	)
	assert.True(t, Resolve(es, i18n.Spanish, "solo-es").Found)
	assert.False(t, Resolve(es, i18n.Spanish.Toggle(), "solo-es").Found)
}

func TestSectionTarget(t *testing.T) {
	tree := content.English()
	id, ok := SectionTarget(tree, "7")
	assert.True(t, ok)
	assert.Equal(t, "7.0", id)

	_, ok = SectionTarget(tree, "7.1")
	assert.False(t, ok)
}
