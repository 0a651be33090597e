package selection_test

import (
	"testing"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	t.Parallel()

	t.Run("starts hovering from idle", func(t *testing.T) {
		t.Parallel()

		next, cmds := selection.Transition(selection.Idle{}, selection.Start{})

		assert.Equal(t, selection.Hovering{}, next)
		assert.Equal(t, []selection.Command{
			selection.Attach{Set: pagesnip.HoverListeners},
			selection.SetCursor{Cursor: pagesnip.CursorCrosshair},
			selection.ShowStatus{Message: selection.HoverStatus},
		}, cmds)
	})

	t.Run("ignores start while active", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		for _, s := range []selection.State{
			selection.Hovering{Hovered: h.el("#p1")},
			selection.Navigating{Anchor: h.el("#p1")},
		} {
			next, cmds := selection.Transition(s, selection.Start{})
			assert.Equal(t, s, next)
			assert.Empty(t, cmds)
		}
	})

	t.Run("ignores stop while idle", func(t *testing.T) {
		t.Parallel()

		next, cmds := selection.Transition(selection.Idle{}, selection.Stop{})

		assert.Equal(t, selection.Idle{}, next)
		assert.Empty(t, cmds)
	})

	t.Run("treats nil state as idle", func(t *testing.T) {
		t.Parallel()

		next, _ := selection.Transition(nil, selection.Start{})

		assert.Equal(t, pagesnip.ModeHovering, next.Mode())
	})

	t.Run("highlights hovered element after releasing the previous one", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		p1, p2 := h.el("#p1"), h.el("#p2")

		next, cmds := selection.Transition(selection.Hovering{Hovered: p1}, selection.PointerEnter{Target: p2})

		assert.Equal(t, selection.Hovering{Hovered: p2}, next)
		assert.Equal(t, []selection.Command{selection.Release{}, selection.Highlight{Element: p2}}, cmds)
	})

	t.Run("never hovers root containers", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		s := selection.Hovering{Hovered: h.el("#p1")}

		for _, root := range []pagesnip.Element{h.doc.Body(), h.doc.Root(), nil} {
			next, cmds := selection.Transition(s, selection.PointerEnter{Target: root})
			assert.Equal(t, s, next)
			assert.Empty(t, cmds)
		}
	})

	t.Run("swaps listener sets on click", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		p1 := h.el("#p1")

		next, cmds := selection.Transition(selection.Hovering{Hovered: p1}, selection.Click{Target: p1})

		assert.Equal(t, selection.Navigating{Anchor: p1}, next)
		assert.Equal(t, []selection.Command{
			selection.Detach{Set: pagesnip.HoverListeners},
			selection.Attach{Set: pagesnip.NavigationListeners},
			selection.ShowStatus{Message: selection.NavigationStatus},
			selection.ScheduleUpdate{Element: p1},
		}, cmds)
	})

	t.Run("moves the anchor with arrow keys", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		s := selection.State(selection.Navigating{Anchor: h.el("#p1")})

		s, cmds := selection.Transition(s, selection.Key{Key: pagesnip.KeyRight})
		assert.Equal(t, selection.Navigating{Anchor: h.el("#p2")}, s)
		assert.Equal(t, []selection.Command{
			selection.Release{},
			selection.Highlight{Element: h.el("#p2")},
			selection.ScheduleUpdate{Element: h.el("#p2")},
		}, cmds)

		s, _ = selection.Transition(s, selection.Key{Key: pagesnip.KeyLeft})
		assert.Equal(t, selection.Navigating{Anchor: h.el("#p1")}, s)

		s, _ = selection.Transition(s, selection.Key{Key: pagesnip.KeyUp})
		assert.Equal(t, selection.Navigating{Anchor: h.el("#main")}, s)

		s, _ = selection.Transition(s, selection.Key{Key: pagesnip.KeyDown})
		assert.Equal(t, selection.Navigating{Anchor: h.el("#p1")}, s)
	})

	t.Run("rejects moves onto root containers or past the tree", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		cases := []struct {
			from string
			key  string
		}{
			{"#page", pagesnip.KeyUp},
			{"#p1", pagesnip.KeyDown},
			{"#p1", pagesnip.KeyLeft},
			{"#p3", pagesnip.KeyRight},
			{"#p1", "a"},
		}
		for _, c := range cases {
			s := selection.Navigating{Anchor: h.el(c.from)}
			next, cmds := selection.Transition(s, selection.Key{Key: c.key})
			assert.Equal(t, s, next, "%s %s", c.from, c.key)
			assert.Empty(t, cmds, "%s %s", c.from, c.key)
		}
	})

	t.Run("rejects moves onto detached elements", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		p1 := h.el("#p1")
		h.doc.Selection().Find("#main").Remove()

		s := selection.Navigating{Anchor: p1}
		next, cmds := selection.Transition(s, selection.Key{Key: pagesnip.KeyUp})

		assert.Equal(t, s, next)
		assert.Empty(t, cmds)
	})

	t.Run("confirms with cleanup before notifications", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		p2 := h.el("#p2")

		next, cmds := selection.Transition(selection.Navigating{Anchor: p2}, selection.Key{Key: pagesnip.KeyEnter})

		assert.Equal(t, selection.Idle{}, next)
		assert.Equal(t, []selection.Command{
			selection.CancelUpdate{},
			selection.Detach{Set: selection.AllListeners},
			selection.Release{},
			selection.SetCursor{Cursor: pagesnip.CursorDefault},
			selection.Emit{Type: pagesnip.NotifyElementSelected, Element: p2},
			selection.Emit{Type: pagesnip.NotifyNavigationExited},
		}, cmds)
	})

	t.Run("cancels from hovering and navigating", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		want := []selection.Command{
			selection.CancelUpdate{},
			selection.Detach{Set: selection.AllListeners},
			selection.Release{},
			selection.SetCursor{Cursor: pagesnip.CursorDefault},
			selection.Emit{Type: pagesnip.NotifySelectionStopped},
		}

		for _, s := range []selection.State{
			selection.Hovering{},
			selection.Navigating{Anchor: h.el("#p1")},
		} {
			next, cmds := selection.Transition(s, selection.Key{Key: pagesnip.KeyEscape})
			assert.Equal(t, selection.Idle{}, next)
			assert.Equal(t, want, cmds)

			next, cmds = selection.Transition(s, selection.Stop{})
			assert.Equal(t, selection.Idle{}, next)
			assert.Equal(t, want, cmds)
		}
	})

	t.Run("ignores enter while hovering", func(t *testing.T) {
		t.Parallel()

		s := selection.Hovering{}
		next, cmds := selection.Transition(s, selection.Key{Key: pagesnip.KeyEnter})

		assert.Equal(t, s, next)
		assert.Empty(t, cmds)
	})

	t.Run("preselects from idle", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		main := h.el("#main")

		next, cmds := selection.Transition(selection.Idle{}, selection.Preselect{Element: main})

		assert.Equal(t, selection.Navigating{Anchor: main}, next)
		require.NotEmpty(t, cmds)
		assert.Equal(t, selection.Attach{Set: pagesnip.NavigationListeners}, cmds[0])
		assert.Equal(t, selection.ScheduleUpdate{Element: main}, cmds[len(cmds)-1])
	})

	t.Run("selects directly from any state", func(t *testing.T) {
		t.Parallel()

		h := fixture(t)
		p3 := h.el("#p3")

		next, cmds := selection.Transition(selection.Idle{}, selection.Select{Element: p3})

		assert.Equal(t, selection.Idle{}, next)
		assert.Contains(t, cmds, selection.Emit{Type: pagesnip.NotifyElementSelected, Element: p3})
	})
}
