package structinfo

import (
	"fmt"
	"io"

	"github.com/gomlx/structinfo/types/layout"
	"github.com/gomlx/structinfo/types/shapes"
)

// Value represents a value in a program, like `lv0` or an input `x`.
// It has a name, a shape and, for values of a layout converted function, a physical layout.
type Value struct {
	fn    *Function
	name  string
	shape shapes.Shape

	// layout is the physical layout the value is stored in. If nil, it's the initial layout.
	layout layout.Layout
}

// Shape returns the shape of the value.
//
// For values of a layout converted function (see Function.ConvertLayout), it is the physical shape.
func (v *Value) Shape() shapes.Shape {
	return v.shape
}

// Name of the value, as used in the rendered program.
func (v *Value) Name() string {
	return v.name
}

// Function that owns the value.
func (v *Value) Function() *Function {
	return v.fn
}

// Layout returns the physical layout of the value: Layout()[i] is the logical axis stored in axis i of Shape().
//
// Values not created by Function.ConvertLayout are always in the initial layout. It returns nil if the rank
// of the value is unknown.
func (v *Value) Layout() layout.Layout {
	if v.layout != nil {
		return v.layout.Clone()
	}
	if v.shape.IsUnknownRank() {
		return nil
	}
	return layout.Initial(v.shape.Rank())
}

// Write writes the value name to the given writer.
func (v *Value) Write(w io.Writer, indentation string) error {
	_ = indentation
	_, err := fmt.Fprint(w, v.name)
	return err
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return v.name
}
