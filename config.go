package vlist

import (
	"fmt"

	"vlist/surface"
)

// SelectionMode controls how clicks/Space affect the selection set.
type SelectionMode string

const (
	SelectionNone     SelectionMode = "none"
	SelectionSingle   SelectionMode = "single"
	SelectionMultiple SelectionMode = "multiple"
)

// Direction is the scroll axis.
type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
)

// TemplateFunc renders one item's content. index is the data index;
// state reflects the current selection/focus.
type TemplateFunc[T Identifiable] func(item T, index int, state ItemState) surface.Content

// Config is the plain, validated-at-mount settings struct every
// Engine is built from — no fluent builder, matching the teacher's
// struct-literal configuration style rather than a method-chaining
// options API.
type Config[T Identifiable] struct {
	Host surface.Host

	// Exactly one of ItemHeight or ItemHeightFunc must be set.
	ItemHeight     float64
	ItemHeightFunc func(index int) float64

	Template TemplateFunc[T]

	// Exactly one of Items or Adapter should be set; Items selects the
	// eager SliceAdapter path.
	Items   []T
	Adapter Adapter[T]

	Overscan      int    // default DefaultOverscan
	ClassPrefix   string // default "vlist"
	SelectionMode SelectionMode
	Direction     Direction
	Reverse       bool
	AriaLabel     string

	// Group and Grid are mutually exclusive with each other, and Grid
	// is also rejected with Direction == horizontal or Reverse
	// (spec.md §4.10). Group is not checked against Direction/Reverse.
	Group *GroupConfig[T]
	Grid  *GridConfig
}

// GroupConfig configures the Group Layout component.
type GroupConfig[T Identifiable] struct {
	KeyOf        func(item T, index int) any
	HeaderHeight func(groupIndex int) float64
}

// GridConfig configures the Grid Layout component.
type GridConfig struct {
	Columns   int
	Gap       float64
	RowHeight func(row int) float64
}

// ConfigError is a validation failure caught at Mount; it is
// non-recoverable and mounting must not proceed.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vlist: config: %s: %s", e.Field, e.Msg)
}

// Validate checks the invariants spec.md §4.10/§6 require, filling in
// documented defaults. Called once by Engine.Mount.
func (c *Config[T]) Validate() error {
	if c.Host == nil {
		return &ConfigError{"Host", "must not be nil"}
	}
	if c.ItemHeight <= 0 && c.ItemHeightFunc == nil {
		return &ConfigError{"ItemHeight", "either ItemHeight or ItemHeightFunc is required"}
	}
	if c.ItemHeight > 0 && c.ItemHeightFunc != nil {
		return &ConfigError{"ItemHeight", "set ItemHeight or ItemHeightFunc, not both"}
	}
	if c.Template == nil {
		return &ConfigError{"Template", "must not be nil"}
	}
	if c.Items != nil && c.Adapter != nil {
		return &ConfigError{"Adapter", "set Items or Adapter, not both"}
	}
	if c.Overscan == 0 {
		c.Overscan = DefaultOverscan
	}
	if c.Overscan < 0 {
		return &ConfigError{"Overscan", "must not be negative"}
	}
	if c.ClassPrefix == "" {
		c.ClassPrefix = "vlist"
	}
	if c.SelectionMode == "" {
		c.SelectionMode = SelectionNone
	}
	if c.Direction == "" {
		c.Direction = DirectionVertical
	}

	if c.Group != nil && c.Grid != nil {
		return &ConfigError{"Group", "Group and Grid are mutually exclusive"}
	}
	if c.Grid != nil {
		if c.Direction == DirectionHorizontal {
			return &ConfigError{"Grid", "Grid is incompatible with horizontal Direction"}
		}
		if c.Reverse {
			return &ConfigError{"Grid", "Grid is incompatible with Reverse"}
		}
		if c.Grid.Columns < 1 {
			return &ConfigError{"Grid.Columns", "must be >= 1"}
		}
	}
	if c.Group != nil {
		if c.Group.KeyOf == nil {
			return &ConfigError{"Group.KeyOf", "must not be nil"}
		}
		if c.Group.HeaderHeight == nil {
			return &ConfigError{"Group.HeaderHeight", "must not be nil"}
		}
	}
	return nil
}

// itemHeightFunc returns a uniform resolved height function whether
// the config used a fixed height or a per-index function.
func (c *Config[T]) itemHeightFunc() func(index int) float64 {
	if c.ItemHeightFunc != nil {
		return c.ItemHeightFunc
	}
	h := c.ItemHeight
	return func(int) float64 { return h }
}
