package locate_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/locate"
	"github.com/fwojciec/pagesnip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyDocument records the selectors queried on a document.
type spyDocument struct {
	pagesnip.Document

	mu      sync.Mutex
	queries []string
}

func (d *spyDocument) Query(selector string) ([]pagesnip.Element, error) {
	d.mu.Lock()
	d.queries = append(d.queries, selector)
	d.mu.Unlock()
	return d.Document.Query(selector)
}

func (d *spyDocument) Queries() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.queries...)
}

func presetDoc(t *testing.T, url string) *spyDocument {
	t.Helper()
	body := `<div id="high" ` + rect(0, 0, 400, 800) + `>` + words(100) + `</div>` +
		`<div id="low" ` + rect(0, 0, 400, 800) + `>` + words(100) + `</div>` +
		`<div id="tiny" ` + rect(0, 0, 50, 50) + `>` + words(100) + `</div>`
	return &spyDocument{Document: parse(t, url, body)}
}

func TestPresetMatcher_Locate(t *testing.T) {
	t.Parallel()

	t.Run("tries only the highest priority matching rule", func(t *testing.T) {
		t.Parallel()

		doc := presetDoc(t, "https://blog.example.com/posts/1")
		m := locate.NewPresetMatcherWithoutDefaults([]*pagesnip.PresetRule{
			{Name: "low", Patterns: []string{"example.com"}, Selectors: []string{"#low"}, Priority: 5},
			{Name: "high", Patterns: []string{"example.com"}, Selectors: []string{"#high"}, Priority: 10},
		})

		loc, err := m.Locate(doc)

		require.NoError(t, err)
		assert.Equal(t, "high", loc.Element.ID())
		assert.Equal(t, pagesnip.StrategyPreset, loc.Strategy)
		assert.Equal(t, "high", loc.Rule.Name)
		assert.Equal(t, []string{"#high"}, doc.Queries())
	})

	t.Run("tries selectors in listed order", func(t *testing.T) {
		t.Parallel()

		doc := presetDoc(t, "https://example.com/")
		m := locate.NewPresetMatcherWithoutDefaults([]*pagesnip.PresetRule{
			{Name: "site", Patterns: []string{"example.com"}, Selectors: []string{"#missing", "div[", "#tiny", "#low", "#high"}},
		})

		loc, err := m.Locate(doc)

		require.NoError(t, err)
		assert.Equal(t, "low", loc.Element.ID())
		assert.Equal(t, []string{"#missing", "div[", "#tiny", "#low"}, doc.Queries())
	})

	t.Run("falls through when every selector of a rule fails", func(t *testing.T) {
		t.Parallel()

		doc := presetDoc(t, "https://example.com/")
		m := locate.NewPresetMatcherWithoutDefaults([]*pagesnip.PresetRule{
			{Name: "high", Patterns: []string{"example.com"}, Selectors: []string{"#gone"}, Priority: 10},
			{Name: "low", Patterns: []string{"example.com"}, Selectors: []string{"#low"}, Priority: 5},
		})

		loc, err := m.Locate(doc)

		require.NoError(t, err)
		assert.Equal(t, "low", loc.Element.ID())
	})

	t.Run("keeps input order for equal priorities", func(t *testing.T) {
		t.Parallel()

		doc := presetDoc(t, "https://example.com/")
		m := locate.NewPresetMatcherWithoutDefaults([]*pagesnip.PresetRule{
			{Name: "first", Patterns: []string{"example"}, Selectors: []string{"#low"}},
			{Name: "second", Patterns: []string{"example"}, Selectors: []string{"#high"}},
		})

		for range 3 {
			loc, err := m.Locate(doc)
			require.NoError(t, err)
			assert.Equal(t, "first", loc.Rule.Name)
		}
	})

	t.Run("ignores rules for other addresses", func(t *testing.T) {
		t.Parallel()

		doc := presetDoc(t, "https://other.org/")
		m := locate.NewPresetMatcherWithoutDefaults([]*pagesnip.PresetRule{
			{Name: "site", Patterns: []string{"example.com"}, Selectors: []string{"#high"}},
		})

		_, err := m.Locate(doc)

		assert.Equal(t, pagesnip.ENOTFOUND, pagesnip.ErrorCode(err))
		assert.Empty(t, doc.Queries())
	})

	t.Run("applies built-in rules after caller rules", func(t *testing.T) {
		t.Parallel()

		m := locate.NewPresetMatcher([]*pagesnip.PresetRule{
			{Name: "mine", Patterns: []string{"github.com"}, Selectors: []string{"#high"}},
		})

		rules := m.Rules()
		require.Len(t, rules, len(locate.DefaultPresetRules())+1)
		assert.Equal(t, "mine", rules[0].Name)

		doc := &spyDocument{Document: parse(t, "https://github.com/owner/repo",
			`<article class="markdown-body" `+rect(0, 0, 800, 600)+`>`+words(300)+`</article>`)}
		loc, err := m.Locate(doc)
		require.NoError(t, err)
		assert.Equal(t, "github", loc.Rule.Name)
	})
}

func TestLocator_Locate(t *testing.T) {
	t.Parallel()

	t.Run("returns a preset hit without scoring", func(t *testing.T) {
		t.Parallel()

		var calls int
		fallback := &mock.Locator{
			LocateFn: func(doc pagesnip.Document) (*pagesnip.Location, error) {
				calls++
				return nil, errors.New("unexpected")
			},
		}
		doc := parse(t, "https://news.example.com/a/1",
			`<div class="story" `+rect(100, 100, 400, 800)+`>`+words(2000)+`</div>`)
		l := &locate.Locator{
			Presets: locate.NewPresetMatcher([]*pagesnip.PresetRule{
				{Name: "news", Patterns: []string{"news.example.com"}, Selectors: []string{".story"}, Priority: 1},
			}),
			Fallback: fallback,
		}

		loc, err := l.Locate(doc)

		require.NoError(t, err)
		assert.Equal(t, "div", loc.Element.TagName())
		assert.Equal(t, pagesnip.StrategyPreset, loc.Strategy)
		assert.Equal(t, 0, calls)
	})

	t.Run("falls back when no preset applies", func(t *testing.T) {
		t.Parallel()

		want := &pagesnip.Location{Strategy: pagesnip.StrategyHeuristic}
		l := &locate.Locator{
			Presets: locate.NewPresetMatcher(nil),
			Fallback: &mock.Locator{
				LocateFn: func(doc pagesnip.Document) (*pagesnip.Location, error) {
					return want, nil
				},
			},
		}

		loc, err := l.Locate(parse(t, "https://unknown.example/", `<p>hi</p>`))

		require.NoError(t, err)
		assert.Same(t, want, loc)
	})

	t.Run("propagates preset failures other than ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		l := &locate.Locator{
			Presets: &mock.Locator{
				LocateFn: func(doc pagesnip.Document) (*pagesnip.Location, error) {
					return nil, pagesnip.Errorf(pagesnip.EINTERNAL, "boom")
				},
			},
			Fallback: locate.NewScorer(),
		}

		_, err := l.Locate(parse(t, "https://unknown.example/", `<p>hi</p>`))

		assert.Equal(t, pagesnip.EINTERNAL, pagesnip.ErrorCode(err))
	})

	t.Run("uses presets and scorer by default", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "https://unknown.example/",
			`<main `+rect(100, 100, 800, 600)+`><p>`+words(600)+`</p></main>`)

		loc, err := locate.NewLocator(nil).Locate(doc)

		require.NoError(t, err)
		assert.Equal(t, "main", loc.Element.TagName())
		assert.Equal(t, pagesnip.StrategyHeuristic, loc.Strategy)
	})
}
