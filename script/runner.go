package script

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/csspath"
	"github.com/fwojciec/pagesnip/selection"
)

// MaxLineSize bounds a single input line.
const MaxLineSize = 1 << 20

// Message is one input line: either a request (Action set) or a page event
// (Event set).
type Message struct {
	Action pagesnip.Action `json:"action,omitempty"`
	Path   string          `json:"path,omitempty"`

	Event  pagesnip.EventType `json:"event,omitempty"`
	Target string             `json:"target,omitempty"`
	Key    string             `json:"key,omitempty"`
}

// Runner feeds a script into a selection session.
type Runner struct {
	Selector *selection.Selector
	Surface  *Surface
	Out      *Writer
}

// Run executes the lines of r until EOF or ctx is done. Blank lines and
// lines starting with # are skipped. A pending debounced update is flushed
// at the end of input.
func (r *Runner) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := r.line(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	r.Selector.Flush()
	return nil
}

func (r *Runner) line(line string) error {
	var msg Message
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		return r.Out.WriteResponse(errorResponse("", pagesnip.Errorf(pagesnip.EINVALID, "invalid message: %v", err)))
	}

	switch {
	case msg.Event != "":
		return r.event(msg)
	case msg.Action != "":
		return r.Out.WriteResponse(r.Selector.Handle(pagesnip.Request{Action: msg.Action, Path: msg.Path}))
	default:
		return r.Out.WriteResponse(errorResponse("", pagesnip.Errorf(pagesnip.EINVALID, "message has neither action nor event")))
	}
}

func (r *Runner) event(msg Message) error {
	ev := pagesnip.Event{Type: msg.Event, Key: msg.Key}

	switch msg.Event {
	case pagesnip.EventPointerEnter, pagesnip.EventClick:
		el, err := csspath.Resolve(r.Selector.Document, msg.Target)
		if err != nil {
			return r.Out.WriteEventResult(eventError(msg.Event, err))
		}
		ev.Target = el
	case pagesnip.EventKeyDown:
		if msg.Key == "" {
			return r.Out.WriteEventResult(eventError(msg.Event, pagesnip.Errorf(pagesnip.EINVALID, "keydown requires a key")))
		}
	default:
		return r.Out.WriteEventResult(eventError(msg.Event, pagesnip.Errorf(pagesnip.EINVALID, "unknown event %q", msg.Event)))
	}

	// Events no listener is attached for are dropped, as a page would.
	r.Surface.Dispatch(ev)
	return nil
}

func errorResponse(action pagesnip.Action, err error) *pagesnip.Response {
	return &pagesnip.Response{
		Action: action,
		Code:   pagesnip.ErrorCode(err),
		Error:  pagesnip.ErrorMessage(err),
	}
}

func eventError(ev pagesnip.EventType, err error) EventResult {
	return EventResult{
		Event: string(ev),
		Code:  pagesnip.ErrorCode(err),
		Error: pagesnip.ErrorMessage(err),
	}
}
