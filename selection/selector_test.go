package selection_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/csspath"
	"github.com/fwojciec/pagesnip/goquery"
	"github.com/fwojciec/pagesnip/mock"
	"github.com/fwojciec/pagesnip/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<div id="page">
	<header id="top"><h1>Title</h1></header>
	<main id="main">
		<p id="p1" style="color: red">One</p>
		<p id="p2">Two</p>
		<p id="p3">Three</p>
	</main>
</div>
</body></html>`

type harness struct {
	t        *testing.T
	doc      *goquery.Document
	surface  *mock.Surface
	notifier *mock.Notifier
	timers   *mock.Scheduler
	locator  *mock.Locator
	sel      *selection.Selector
}

func fixture(t *testing.T) *harness {
	t.Helper()

	doc, err := goquery.ParseHTML(page, "https://example.com/post")
	require.NoError(t, err)

	h := &harness{
		t:        t,
		doc:      doc,
		surface:  &mock.Surface{},
		notifier: &mock.Notifier{},
		timers:   &mock.Scheduler{},
		locator: &mock.Locator{
			LocateFn: func(pagesnip.Document) (*pagesnip.Location, error) {
				return nil, pagesnip.Errorf(pagesnip.ENOTFOUND, "nothing")
			},
		},
	}
	converter := &mock.ElementConverter{
		ConvertElementFn: func(el pagesnip.Element) (*pagesnip.Content, error) {
			return &pagesnip.Content{HTML: el.OuterHTML(), Markdown: el.Text(), Slug: el.ID()}, nil
		},
	}
	h.sel = selection.NewSelector(doc, h.surface, h.notifier, converter, h.locator)
	h.sel.AfterFunc = func(d time.Duration, f func()) selection.Timer {
		return h.timers.AfterFunc(d, f)
	}
	return h
}

func (h *harness) el(selector string) pagesnip.Element {
	h.t.Helper()
	els, err := h.doc.Query(selector)
	require.NoError(h.t, err)
	require.Len(h.t, els, 1, "selector %q", selector)
	return els[0]
}

// assertClean checks that nothing is highlighted, attached or pending, and
// that every element has its original style.
func (h *harness) assertClean() {
	h.t.Helper()
	assert.Empty(h.t, h.sel.Highlighted())
	assert.Equal(h.t, pagesnip.ListenerSet(0), h.surface.Attached())
	assert.Empty(h.t, h.timers.Pending())
	assert.Equal(h.t, pagesnip.CursorDefault, h.surface.Cursor())

	style, _ := h.el("#p1").Attr("style")
	assert.Equal(h.t, "color: red", style)
	for _, id := range []string{"#page", "#top", "#main", "#p2", "#p3"} {
		_, ok := h.el(id).Attr("style")
		assert.False(h.t, ok, "%s keeps a style attribute", id)
	}
}

func TestSelector_StartSelection(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)

		h.sel.StartSelection()
		h.sel.StartSelection()

		assert.Equal(t, pagesnip.ModeHovering, h.sel.Mode())
		assert.Equal(t, 1, h.surface.Attaches)
		assert.Equal(t, pagesnip.HoverListeners, h.surface.Attached())
		assert.Equal(t, pagesnip.CursorCrosshair, h.surface.Cursor())
		assert.Equal(t, []string{selection.HoverStatus}, h.surface.Statuses())
	})
}

func TestSelector_StopSelection(t *testing.T) {
	t.Parallel()

	t.Run("is a no-op while idle", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)

		h.sel.StopSelection()

		assert.Empty(t, h.notifier.Sent())
		assert.Equal(t, 0, h.surface.Detaches)
		assert.Equal(t, pagesnip.ModeIdle, h.sel.Mode())
	})

	t.Run("cancels an active session", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Hover(h.el("#p1"))

		h.sel.StopSelection()

		assert.Equal(t, []pagesnip.NotificationType{pagesnip.NotifySelectionStopped}, h.notifier.Types())
		assert.Equal(t, pagesnip.ModeIdle, h.sel.Mode())
		h.assertClean()
	})
}

func TestSelector_Hover(t *testing.T) {
	t.Parallel()

	t.Run("highlights one element at a time", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()

		h.surface.Hover(h.el("#p1"))
		assert.Equal(t, selection.DefaultHighlightStyle, h.el("#p1").Style())

		h.surface.Hover(h.el("#p2"))
		assert.Equal(t, selection.DefaultHighlightStyle, h.el("#p2").Style())
		style, _ := h.el("#p1").Attr("style")
		assert.Equal(t, "color: red", style)
		assert.Equal(t, []pagesnip.Element{h.el("#p2")}, h.sel.Highlighted())
	})

	t.Run("never highlights root containers", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()

		h.surface.Hover(h.doc.Body())
		h.surface.Hover(h.doc.Root())

		assert.Empty(t, h.sel.Highlighted())
		assert.Equal(t, pagesnip.Style{}, h.doc.Body().Style())
	})

	t.Run("cancels with escape", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Hover(h.el("#p1"))

		h.surface.Press(pagesnip.KeyEscape)

		assert.Equal(t, []pagesnip.NotificationType{pagesnip.NotifySelectionStopped}, h.notifier.Types())
		h.assertClean()
	})

	t.Run("ignores enter", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Hover(h.el("#p1"))

		assert.False(t, h.surface.Press(pagesnip.KeyEnter))
		h.sel.HandleEvent(pagesnip.Event{Type: pagesnip.EventKeyDown, Key: pagesnip.KeyEnter})

		assert.Equal(t, pagesnip.ModeHovering, h.sel.Mode())
		assert.Empty(t, h.notifier.Sent())
	})
}

func TestSelector_Navigate(t *testing.T) {
	t.Parallel()

	t.Run("enters navigation on click", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Hover(h.el("#p1"))

		h.surface.Click(h.el("#p1"))

		assert.Equal(t, pagesnip.ModeNavigating, h.sel.Mode())
		assert.True(t, h.sel.Anchor() == h.el("#p1"))
		assert.Equal(t, pagesnip.NavigationListeners, h.surface.Attached())
		assert.Equal(t, selection.DefaultHighlightStyle, h.el("#p1").Style())
		require.Len(t, h.timers.Pending(), 1)
		assert.Equal(t, selection.DefaultDebounce, h.timers.Pending()[0].Delay)

		// Pointer events no longer reach the selector.
		assert.False(t, h.surface.Hover(h.el("#p2")))
		assert.True(t, h.sel.Anchor() == h.el("#p1"))
	})

	t.Run("sends the debounced update for the anchor", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Click(h.el("#p2"))
		assert.Empty(t, h.notifier.Sent())

		assert.Equal(t, 1, h.timers.FireAll())

		sent := h.notifier.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, pagesnip.NotifyElementDataUpdate, sent[0].Type)
		assert.Equal(t, csspath.Generate(h.el("#p2")), sent[0].Data.Path)
		assert.Equal(t, "Two", sent[0].Data.Markdown)
		assert.Equal(t, "p2", sent[0].Data.Slug)
	})

	t.Run("coalesces rapid moves into one update for the last element", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Click(h.el("#p1"))

		for _, k := range []string{pagesnip.KeyRight, pagesnip.KeyRight, pagesnip.KeyUp, pagesnip.KeyDown, pagesnip.KeyRight} {
			require.True(t, h.surface.Press(k))
		}

		assert.Len(t, h.timers.Timers(), 6)
		assert.Len(t, h.timers.Pending(), 1)
		assert.Equal(t, 1, h.timers.FireAll())

		sent := h.notifier.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, pagesnip.NotifyElementDataUpdate, sent[0].Type)
		assert.Equal(t, "p2", sent[0].Data.Slug)
	})

	t.Run("keeps the anchor at the edges of the tree", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Click(h.el("#page"))

		h.surface.Press(pagesnip.KeyUp)
		assert.True(t, h.sel.Anchor() == h.el("#page"))

		h.sel.StopSelection()
		h.sel.StartSelection()
		h.surface.Click(h.el("h1"))

		h.surface.Press(pagesnip.KeyDown)
		assert.True(t, h.sel.Anchor() == h.el("h1"))
		assert.Equal(t, []pagesnip.Element{h.el("h1")}, h.sel.Highlighted())
	})

	t.Run("confirms with enter", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Click(h.el("#p1"))
		h.surface.Press(pagesnip.KeyRight)

		h.surface.Press(pagesnip.KeyEnter)

		assert.Equal(t, []pagesnip.NotificationType{
			pagesnip.NotifyElementSelected,
			pagesnip.NotifyNavigationExited,
		}, h.notifier.Types())
		sent := h.notifier.Sent()
		assert.Equal(t, csspath.Generate(h.el("#p2")), sent[0].Data.Path)
		assert.NotContains(t, sent[0].Data.HTML, "outline")
		assert.Nil(t, sent[1].Data)
		assert.Equal(t, pagesnip.ModeIdle, h.sel.Mode())
		assert.Equal(t, 0, h.timers.FireAll())
		h.assertClean()
	})

	t.Run("cancels mid-navigation", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Click(h.el("#p1"))
		h.surface.Press(pagesnip.KeyRight)
		h.surface.Press(pagesnip.KeyUp)

		h.surface.Press(pagesnip.KeyEscape)

		assert.Equal(t, []pagesnip.NotificationType{pagesnip.NotifySelectionStopped}, h.notifier.Types())
		assert.Equal(t, 0, h.timers.FireAll())
		h.assertClean()
	})

	t.Run("ignores moves once the anchor vanishes", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		p2 := h.el("#p2")
		h.surface.Click(p2)
		h.doc.Selection().Find("#p2").Remove()

		h.surface.Press(pagesnip.KeyRight)

		assert.True(t, h.sel.Anchor() == p2)
		assert.Len(t, h.timers.Timers(), 1)
	})

	t.Run("follows an anchor the page replaced", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Click(h.el("#p2"))
		h.doc.Selection().Find("#p2").ReplaceWithHtml(`<p id="p2">Two again</p>`)

		h.surface.Press(pagesnip.KeyRight)

		assert.True(t, h.sel.Anchor() == h.el("#p3"))
	})

	t.Run("drains the ledger after any sequence", func(t *testing.T) {
		t.Parallel()

		sequences := [][]string{
			{"hover:#p1", "hover:#p2", "key:Escape"},
			{"hover:#p1", "click:#p1", "key:ArrowUp", "key:ArrowUp", "key:Enter"},
			{"click:#p3", "key:ArrowLeft", "key:ArrowDown", "stop"},
			{"hover:#top", "click:h1", "key:ArrowUp", "key:ArrowRight", "key:ArrowDown", "key:Escape"},
			{"hover:#p1", "stop"},
		}
		for _, seq := range sequences {
			h := fixture(t)
			h.sel.StartSelection()
			for _, step := range seq {
				switch {
				case step == "stop":
					h.sel.StopSelection()
				case len(step) > 6 && step[:6] == "hover:":
					h.surface.Hover(h.el(step[6:]))
				case len(step) > 6 && step[:6] == "click:":
					h.surface.Click(h.el(step[6:]))
				case len(step) > 4 && step[:4] == "key:":
					h.surface.Press(step[4:])
				}
			}
			assert.Equal(t, pagesnip.ModeIdle, h.sel.Mode(), "%v", seq)
			h.assertClean()
		}
	})
}

func TestSelector_SmartSelect(t *testing.T) {
	t.Parallel()

	t.Run("preselects the located element", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.locator.LocateFn = func(pagesnip.Document) (*pagesnip.Location, error) {
			return &pagesnip.Location{Element: h.el("#main"), Strategy: pagesnip.StrategyHeuristic, Score: 42}, nil
		}

		loc, err := h.sel.SmartSelect()

		require.NoError(t, err)
		assert.Equal(t, 42.0, loc.Score)
		assert.Equal(t, pagesnip.ModeNavigating, h.sel.Mode())
		assert.True(t, h.sel.Anchor() == h.el("#main"))
		assert.Equal(t, pagesnip.NavigationListeners, h.surface.Attached())
		assert.Len(t, h.timers.Pending(), 1)

		h.surface.Press(pagesnip.KeyDown)
		assert.True(t, h.sel.Anchor() == h.el("#p1"))
	})

	t.Run("leaves the session unchanged on a miss", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)

		_, err := h.sel.SmartSelect()

		assert.Equal(t, pagesnip.ENOTFOUND, pagesnip.ErrorCode(err))
		assert.Equal(t, pagesnip.ModeIdle, h.sel.Mode())
		assert.Equal(t, 0, h.surface.Attaches)
		assert.Empty(t, h.notifier.Sent())
	})

	t.Run("can be confirmed programmatically", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.locator.LocateFn = func(pagesnip.Document) (*pagesnip.Location, error) {
			return &pagesnip.Location{Element: h.el("#main")}, nil
		}
		assert.Equal(t, pagesnip.ECONFLICT, pagesnip.ErrorCode(h.sel.ConfirmSelection()))

		_, err := h.sel.SmartSelect()
		require.NoError(t, err)
		require.NoError(t, h.sel.ConfirmSelection())

		assert.Equal(t, []pagesnip.NotificationType{
			pagesnip.NotifyElementSelected,
			pagesnip.NotifyNavigationExited,
		}, h.notifier.Types())
		h.assertClean()
	})
}

func TestSelector_ApplyPath(t *testing.T) {
	t.Parallel()

	t.Run("confirms the addressed element", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		path := csspath.Generate(h.el("#p3"))

		el, err := h.sel.ApplyPath(path)

		require.NoError(t, err)
		assert.True(t, el == h.el("#p3"))
		assert.Equal(t, []pagesnip.NotificationType{
			pagesnip.NotifyElementSelected,
			pagesnip.NotifyNavigationExited,
		}, h.notifier.Types())
		assert.Equal(t, path, h.notifier.Sent()[0].Data.Path)
		h.assertClean()
	})

	t.Run("reports failures without changing the session", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		h.sel.StartSelection()
		h.surface.Hover(h.el("#p1"))

		_, err := h.sel.ApplyPath("main[")
		assert.Equal(t, pagesnip.EINVALID, pagesnip.ErrorCode(err))

		_, err = h.sel.ApplyPath("article#gone")
		assert.Equal(t, pagesnip.ENOTFOUND, pagesnip.ErrorCode(err))

		_, err = h.sel.ApplyPath("body")
		assert.Equal(t, pagesnip.EINVALID, pagesnip.ErrorCode(err))

		assert.Equal(t, pagesnip.ModeHovering, h.sel.Mode())
		assert.Equal(t, pagesnip.HoverListeners, h.surface.Attached())
		assert.Equal(t, []pagesnip.Element{h.el("#p1")}, h.sel.Highlighted())
		assert.Empty(t, h.notifier.Sent())
	})
}

func TestSelector_Handle(t *testing.T) {
	t.Parallel()

	t.Run("dispatches the request vocabulary", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)

		resp := h.sel.Handle(pagesnip.Request{Action: pagesnip.ActionStartSelection})
		assert.True(t, resp.OK)
		assert.Equal(t, pagesnip.ModeHovering, h.sel.Mode())

		resp = h.sel.Handle(pagesnip.Request{Action: pagesnip.ActionStopSelection})
		assert.True(t, resp.OK)
		assert.Equal(t, pagesnip.ModeIdle, h.sel.Mode())

		path := csspath.Generate(h.el("#p2"))
		resp = h.sel.Handle(pagesnip.Request{Action: pagesnip.ActionApplyPath, Path: path})
		assert.Equal(t, &pagesnip.Response{Action: pagesnip.ActionApplyPath, OK: true, Path: path}, resp)
	})

	t.Run("reports errors with codes", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)

		resp := h.sel.Handle(pagesnip.Request{Action: pagesnip.ActionSmartSelect})
		assert.False(t, resp.OK)
		assert.Equal(t, pagesnip.ENOTFOUND, resp.Code)

		resp = h.sel.Handle(pagesnip.Request{Action: "explode"})
		assert.False(t, resp.OK)
		assert.Equal(t, pagesnip.EINVALID, resp.Code)
		assert.Contains(t, resp.Error, "explode")
	})
}

func TestSelector_Flush(t *testing.T) {
	t.Parallel()

	h := fixture(t)
	h.sel.StartSelection()
	h.surface.Click(h.el("#p1"))

	h.sel.Flush()
	h.sel.Flush()

	assert.Equal(t, []pagesnip.NotificationType{pagesnip.NotifyElementDataUpdate}, h.notifier.Types())
	assert.Empty(t, h.timers.Pending())
	assert.Equal(t, 0, h.timers.FireAll())
}

func TestSelector_Settings(t *testing.T) {
	t.Parallel()

	h := fixture(t)
	style := pagesnip.Style{Outline: "3px dashed blue"}
	h.sel.SetHighlightStyle(style)
	h.sel.SetDebounce(250 * time.Millisecond)

	h.sel.StartSelection()
	h.surface.Click(h.el("#p2"))

	assert.Equal(t, style, h.el("#p2").Style())
	require.Len(t, h.timers.Pending(), 1)
	assert.Equal(t, 250*time.Millisecond, h.timers.Pending()[0].Delay)
}

func TestSelector_NotifyFailure(t *testing.T) {
	t.Parallel()

	h := fixture(t)
	h.notifier.NotifyFn = func(pagesnip.Notification) error {
		return errors.New("channel closed")
	}

	h.sel.StartSelection()
	h.surface.Press(pagesnip.KeyEscape)

	assert.Equal(t, pagesnip.ModeIdle, h.sel.Mode())
	h.assertClean()
}
