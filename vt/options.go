// Copyright © 2025 extraterm contributors
//
// File: vt/options.go
// Summary: Functional options for NewTerminal (C9), mirroring the
// teacher's WithXxx(Option) construction pattern.
// Usage: vt.NewTerminal(80, 24, vt.WithScrollback(5000), vt.WithDebug(true))

package vt

import "log"

// Options collects every construction-time setting spec.md's
// Configuration options table enumerates.
type Options struct {
	Scrollback             int
	paletteSeed            [16]RGB
	hasPaletteSeed         bool
	TermName               string
	CursorBlink            bool
	VisualBell             bool
	PopOnBell              bool
	ConvertEOL             bool
	PhysicalScroll         bool
	ApplicationModeCookie  string
	Debug                  bool
	PaletteMatch           PaletteMatcher
	Logger                 *log.Logger
	Scheduler              Scheduler
	MacKeyboard            bool
}

// Option mutates an Options value at construction time.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Scrollback: 1000,
		TermName:   "xterm",
		Logger:     log.Default(),
	}
}

// WithScrollback sets the scrollback cap (default 1000).
func WithScrollback(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.Scrollback = n
	}
}

// WithPalette seeds the 16 named colors.
func WithPalette(seed [16]RGB) Option {
	return func(o *Options) {
		o.paletteSeed = seed
		o.hasPaletteSeed = true
	}
}

// WithTermName sets the terminal identity DA1/DA2 replies report
// (default "xterm").
func WithTermName(name string) Option {
	return func(o *Options) { o.TermName = name }
}

// WithCursorBlink toggles the cursor-blink hint a renderer reads back.
func WithCursorBlink(b bool) Option { return func(o *Options) { o.CursorBlink = b } }

// WithVisualBell toggles whether BEL should prefer a visual flash over
// an audible one; purely a hint forwarded to renderers via events.
func WithVisualBell(b bool) Option { return func(o *Options) { o.VisualBell = b } }

// WithPopOnBell toggles whether BEL should request window focus.
func WithPopOnBell(b bool) Option { return func(o *Options) { o.PopOnBell = b } }

// WithConvertEOL rewrites bare LF to CRLF on the way into Write.
func WithConvertEOL(b bool) Option { return func(o *Options) { o.ConvertEOL = b } }

// WithPhysicalScroll selects the alternate scroll-up eviction strategy
// (spec.md §4.2 step 2): rows falling off the scrollback cap are pushed
// onto a drainable emit queue (Screen.DrainScrollEmit) instead of being
// silently dropped, the default behavior.
func WithPhysicalScroll(b bool) Option { return func(o *Options) { o.PhysicalScroll = b } }

// WithApplicationModeCookie sets the shared secret AppStart must present
// to open the application-mode data channel. Empty (the default)
// disables application mode entirely.
func WithApplicationModeCookie(cookie string) Option {
	return func(o *Options) { o.ApplicationModeCookie = cookie }
}

// WithDebug enables ProtocolWarning-class logging through Logger.
func WithDebug(b bool) Option { return func(o *Options) { o.Debug = b } }

// WithPaletteMatch overrides the SGR 38;2/48;2 nearest-color strategy
// (default DefaultPaletteMatcher's weighted-Euclidean formula).
func WithPaletteMatch(m PaletteMatcher) Option {
	return func(o *Options) { o.PaletteMatch = m }
}

// WithLogger sets the logger Debug-gated warnings are printed through.
func WithLogger(l *log.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithScheduler overrides the write scheduler's event-loop seam
// (default: runs inline, no goroutines of its own).
func WithScheduler(s Scheduler) Option { return func(o *Options) { o.Scheduler = s } }

// WithMacKeyboard selects Meta+letter (instead of Alt+letter) as the
// "prefix ESC" combination, matching macOS keyboard conventions.
func WithMacKeyboard(b bool) Option { return func(o *Options) { o.MacKeyboard = b } }
