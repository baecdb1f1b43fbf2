// Copyright © 2025 extraterm contributors
//
// File: vt/events.go
// Summary: Named subscription table replacing the source's emit/on pairs (C8).
// Usage: Terminal emits through this table; renderers subscribe by event name.

package vt

// EventName identifies one of the engine's outbound event channels.
type EventName string

const (
	EventData                  EventName = "data"
	EventTitle                 EventName = "title"
	EventBell                  EventName = "bell"
	EventRowDirty               EventName = "row-dirty"
	EventRefresh                EventName = "refresh"
	EventManualScroll            EventName = "manual-scroll"
	EventApplicationModeStart    EventName = "application-mode-start"
	EventApplicationModeData     EventName = "application-mode-data"
	EventApplicationModeEnd      EventName = "application-mode-end"
	EventUnknownKeydown          EventName = "unknown-keydown"
	EventKeydown                EventName = "keydown"
	EventKeypress               EventName = "keypress"
	EventKey                    EventName = "key"
	EventDefaultColorChanged     EventName = "default-color-changed"
	EventQueryDefaultColor       EventName = "query-default-color"
	EventBracketedPasteChanged   EventName = "bracketed-paste-mode-changed"
)

// Event is the payload delivered to a subscriber. Fields not relevant to
// the event's name are left at their zero value.
type Event struct {
	Name EventName

	Bytes []byte // data, application-mode-data
	Text  string // title

	RangeStart int // row-dirty, refresh: half-open dirty range [RangeStart, RangeEnd)
	RangeEnd   int // row-dirty, refresh: half-open dirty range [RangeStart, RangeEnd)

	ScrollPosition int  // manual-scroll
	ScrollAtBottom bool // manual-scroll

	Params []string // application-mode-start

	Key       Key     // keydown, keypress, key, unknown-keydown
	Modifiers ModMask // keydown, keypress, key, unknown-keydown
	Rune      rune    // keypress

	IsBackground bool // query-default-color: which color is being asked for
	Color        RGB  // default-color-changed

	Enabled bool // bracketed-paste-mode-changed

	VisualBell bool // bell: prefer a visual flash over an audible one (Options.VisualBell)
	PopOnBell  bool // bell: request window focus (Options.PopOnBell)
}

// Emitter is an ordered, named subscriber table. Zero value is ready to
// use. Grounded on the callback-struct-field wiring the teacher's
// vterm.go/term.go use for scroll/bell/title callbacks, generalized here
// into one table keyed by event name so C9 doesn't need one struct field
// per channel.
type Emitter struct {
	subs map[EventName][]func(Event)
}

// On registers fn to be called, in registration order, whenever name is
// emitted. Returns a function that unsubscribes fn.
func (e *Emitter) On(name EventName, fn func(Event)) func() {
	if e.subs == nil {
		e.subs = make(map[EventName][]func(Event))
	}
	e.subs[name] = append(e.subs[name], fn)
	idx := len(e.subs[name]) - 1
	return func() {
		list := e.subs[name]
		if idx < len(list) {
			list[idx] = nil
		}
	}
}

// Emit synchronously delivers ev to every current subscriber of ev.Name,
// in registration order, per the ordering guarantee that emissions are
// delivered synchronously as they are produced.
func (e *Emitter) Emit(ev Event) {
	for _, fn := range e.subs[ev.Name] {
		if fn != nil {
			fn(ev)
		}
	}
}

// Clear removes every subscriber from every channel (used by
// Terminal.Destroy).
func (e *Emitter) Clear() {
	e.subs = nil
}
