package vlist

import "strconv"

// Identifiable is implemented by the caller's item type. The key is
// the only thing the core reads about an item; everything else is
// opaque payload passed through to the template function untouched.
// Keys are typically a string or an int, but any comparable value
// works.
type Identifiable interface {
	ItemKey() any
}

// Placeholder is the opaque "not yet loaded" record the Engine uses
// for indices the adapter hasn't resolved yet (DataManager.Get reports
// them as not resident). Its ItemKey is the identity of the row
// rendered there; that row shows plain "loading N" text, and the
// template function is not called for a placeholder.
type Placeholder struct {
	Index int
}

// ItemKey implements Identifiable. Placeholders key off their index,
// which is stable for the lifetime of the placeholder.
func (p Placeholder) ItemKey() any { return "placeholder:" + strconv.Itoa(p.Index) }
