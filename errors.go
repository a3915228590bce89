package vlist

import "errors"

// ErrDestroyed is returned by Engine methods called after Destroy.
// Per spec.md's error-handling rules, a destroyed engine's mutating
// calls are silent no-ops for the handler paths (scroll/click/key
// events arriving late) but surface this error from direct API calls
// like ScrollToIndex so callers can tell the difference.
var ErrDestroyed = errors.New("vlist: engine destroyed")

// ErrNotMounted is returned by Engine methods that require Mount to
// have succeeded first.
var ErrNotMounted = errors.New("vlist: engine not mounted")

// Note on template panics: the Renderer calls TemplateFunc directly,
// with no recover. A panicking template is a programmer error in
// caller-supplied code, not a data or adapter condition, so it
// propagates to the caller of the handler that triggered the render
// rather than being swallowed as an ErrorEvent.
