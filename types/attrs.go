// Package types defines the configuration (attributes) of the operations.
//
// Attributes are immutable values: methods that change them return a modified copy, so a
// rewritten configuration (e.g.: after a layout conversion) never aliases the original one.
package types

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/structinfo/internal/utils"
)

// StatisticalAttrs configures the statistical operations (Sum, Mean, Max, Min, Prod, Std and Variance),
// which reduce one or more axes of their operand.
type StatisticalAttrs struct {
	// Axes to reduce. Negative values count from the end. It is ignored if AllAxes is set.
	Axes []int

	// AllAxes reduces every axis of the operand. This is the "axis not given" configuration.
	AllAxes bool

	// KeepDims keeps the reduced axes in the output, with dimension 1, instead of removing them.
	KeepDims bool
}

// ReduceAxes returns the attributes to reduce the given axes.
func ReduceAxes(keepDims bool, axes ...int) StatisticalAttrs {
	return StatisticalAttrs{Axes: slices.Clone(axes), KeepDims: keepDims}
}

// ReduceAll returns the attributes to reduce all axes.
func ReduceAll(keepDims bool) StatisticalAttrs {
	return StatisticalAttrs{AllAxes: true, KeepDims: keepDims}
}

// WithAxes returns a copy of the attributes reducing the given axes instead.
func (a StatisticalAttrs) WithAxes(axes []int) StatisticalAttrs {
	return StatisticalAttrs{Axes: slices.Clone(axes), KeepDims: a.KeepDims}
}

// Clone returns a deep copy of the attributes.
func (a StatisticalAttrs) Clone() StatisticalAttrs {
	a2 := a
	a2.Axes = slices.Clone(a.Axes)
	return a2
}

// ToRelax returns the attributes as Relax keyword arguments, e.g.: "axis=[1], keepdims=False".
func (a StatisticalAttrs) ToRelax() string {
	axis := "None"
	if !a.AllAxes {
		axis = intsToRelax(a.Axes)
	}
	return fmt.Sprintf("axis=%s, keepdims=%s", axis, boolToRelax(a.KeepDims))
}

// CumSumAttrs configures the cumulative sum operation.
type CumSumAttrs struct {
	// Axis along which to accumulate. Negative values count from the end. It is ignored if Flatten is set.
	Axis int

	// Flatten the operand to one dimension before accumulating. This is the "axis not given" configuration.
	Flatten bool

	// DType of the output. If dtypes.InvalidDType (the default), it is the operand's dtype.
	DType dtypes.DType
}

// CumSumAlong returns the attributes to accumulate along the given axis.
func CumSumAlong(axis int) CumSumAttrs {
	return CumSumAttrs{Axis: axis}
}

// CumSumFlattened returns the attributes to accumulate over the flattened operand.
func CumSumFlattened() CumSumAttrs {
	return CumSumAttrs{Flatten: true}
}

// WithDType returns a copy of the attributes with the output dtype overridden.
func (a CumSumAttrs) WithDType(dtype dtypes.DType) CumSumAttrs {
	a.DType = dtype
	return a
}

// ToRelax returns the attributes as Relax keyword arguments, e.g.: "axis=0, dtype=\"int64\"".
func (a CumSumAttrs) ToRelax() string {
	axis := "None"
	if !a.Flatten {
		axis = fmt.Sprintf("%d", a.Axis)
	}
	dtype := "None"
	if a.DType != dtypes.InvalidDType {
		dtype = fmt.Sprintf("%q", utils.DTypeToRelax(a.DType))
	}
	return fmt.Sprintf("axis=%s, dtype=%s", axis, dtype)
}

// PermuteDimsAttrs configures the permutation of the axes of a tensor.
type PermuteDimsAttrs struct {
	// Axes is the permutation: output axis i is the operand axis Axes[i].
	Axes []int
}

// ToRelax returns the attributes as Relax keyword arguments, e.g.: "axes=[1, 0, 2]".
func (a PermuteDimsAttrs) ToRelax() string {
	return "axes=" + intsToRelax(a.Axes)
}

func intsToRelax(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func boolToRelax(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
