// Package layoutinference propagates physical layouts through operations.
//
// When a layout optimization pass decides that a tensor is physically stored in a non-initial
// layout (see package layout), the operations consuming it must either be rewritten to work
// directly on the physical order, or the tensor must be permuted back. The functions here compute
// the rewrite for the operations that can work on any layout.
package layoutinference

import (
	"github.com/gomlx/structinfo/shapeinference"
	"github.com/gomlx/structinfo/types"
	"github.com/gomlx/structinfo/types/layout"
	"github.com/gomlx/structinfo/types/shapes"
	"github.com/pkg/errors"
)

// StatisticalResult is the outcome of the layout propagation through a statistical operation.
type StatisticalResult struct {
	// InputLayout required for the operand. Statistical operations always keep the operand's current layout.
	InputLayout layout.Layout

	// OutputLayout of the result.
	OutputLayout layout.Layout

	// Attrs rewritten to reduce the physical axes of the operand.
	Attrs types.StatisticalAttrs
}

// reducedLabel marks a reduced axis in the per-axis labels.
const reducedLabel = -1

// Statistical propagates the operand's current layout through a statistical operation (Sum, Mean, Max,
// Min, Prod, Std and Variance).
//
//   - operand: the logical shape of the operand, its rank must be known.
//   - attrs: the operation's attributes, with axes referring to the logical axes of the operand.
//   - desiredLayouts: the layouts requested for the operation. Statistical operations don't accept any,
//     so it must be empty.
//   - current: the physical layout of the operand. If nil, the initial layout is used.
//
// The returned attributes reduce the physical positions of the logical axes, and the output layout is
// the operand's layout with the reduced axes removed (or the operand's layout, if attrs.KeepDims).
// The given attrs are not changed.
func Statistical(operand shapes.Shape, attrs types.StatisticalAttrs, desiredLayouts []layout.Layout,
	current layout.Layout) (result StatisticalResult, err error) {
	if len(desiredLayouts) > 0 {
		err = errors.Wrapf(shapeinference.ErrUnsupportedLayoutRequest,
			"statistical operations don't accept desired layouts, got %v", desiredLayouts)
		return
	}
	if operand.IsUnknownRank() {
		err = errors.Wrapf(shapeinference.ErrUnknownRankUnsupported,
			"layout propagation of statistical operations requires a known rank, got operand %s", operand)
		return
	}
	rank := operand.Rank()

	var axes []int
	if attrs.AllAxes {
		axes = layout.Initial(rank)
	} else {
		axes, err = shapeinference.NormalizeAxes(attrs.Axes, rank)
		if err != nil {
			err = errors.WithMessagef(err, "invalid axes %v to reduce operand %s", attrs.Axes, operand)
			return
		}
	}

	if current == nil {
		current = layout.Initial(rank)
	}
	if current.Rank() != rank {
		err = errors.Wrapf(shapeinference.ErrInvalidConfiguration,
			"operand %s has rank %d, but its current layout %s has rank %d", operand, rank, current, current.Rank())
		return
	}
	if err = current.Validate(); err != nil {
		err = errors.Wrapf(shapeinference.ErrInvalidConfiguration, "invalid current layout for operand %s: %v", operand, err)
		return
	}

	// Label each logical axis: reduced axes get reducedLabel, the surviving ones get sequential
	// numbers, which are the axes of the output.
	labels := make([]int, rank)
	for _, axis := range axes {
		labels[axis] = reducedLabel
	}
	nextOutputAxis := 0
	for axis := range labels {
		if labels[axis] != reducedLabel {
			labels[axis] = nextOutputAxis
			nextOutputAxis++
		}
	}

	// Labels by physical position: reduced positions become the new axes, and the surviving
	// labels, in physical order, are the output layout.
	physicalLabels, err := layout.TransposeLike(labels, layout.Initial(rank), current)
	if err != nil {
		err = errors.Wrapf(shapeinference.ErrInternal, "failed to transpose labels to layout %s: %v", current, err)
		return
	}
	newAxes := make([]int, 0, len(axes))
	outputLayout := make(layout.Layout, 0, rank-len(axes))
	for position, label := range physicalLabels {
		if label == reducedLabel {
			newAxes = append(newAxes, position)
		} else {
			outputLayout = append(outputLayout, label)
		}
	}

	result.InputLayout = current.Clone()
	if attrs.KeepDims {
		result.OutputLayout = current.Clone()
	} else {
		result.OutputLayout = outputLayout
	}
	if attrs.AllAxes {
		// Reducing all axes is independent of the layout.
		result.Attrs = attrs.Clone()
	} else {
		result.Attrs = attrs.WithAxes(newAxes)
	}
	return
}
