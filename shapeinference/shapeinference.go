// Package shapeinference calculates the shape resulting from operations and validates its inputs.
//
// Inference works under partial information: the operand's Shape may have unknown rank, known rank
// but unknown dimensions, or known (possibly symbolic) dimensions, and each function returns as
// much information about the output as can be statically derived.
//
// It covers the statistical operations (Sum, Mean, Max, Min, Prod, Std and Variance), which
// reduce one or more axes, the cumulative sum, and the permutation of axes.
//
// All functions are pure: they don't change their inputs and can be called concurrently.
package shapeinference

import (
	"slices"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/structinfo/internal/utils"
	"github.com/gomlx/structinfo/types"
	"github.com/gomlx/structinfo/types/dims"
	"github.com/gomlx/structinfo/types/shapes"
	"github.com/pkg/errors"
)

// AdjustAxisToRank returns a positive axis, adjusting negative numbers to the correct rank.
func AdjustAxisToRank(axis, rank int) (int, error) {
	if axis < -rank || axis >= rank {
		return -1, errors.Wrapf(ErrAxisOutOfRange, "axis %d is out of range for the rank %d", axis, rank)
	}
	if axis < 0 {
		axis += rank
	}
	return axis, nil
}

// NormalizeAxes resolves the axes against the rank: negative axes are counted from the end,
// repeated axes are collapsed into one, and the result is sorted in ascending order.
//
// It returns an error (ErrAxisOutOfRange) if any axis doesn't resolve to [0, rank).
// The given axes are not changed.
func NormalizeAxes(axes []int, rank int) ([]int, error) {
	axesSet := utils.MakeSet[int](len(axes))
	for i, axis := range axes {
		adjustedAxis, err := AdjustAxisToRank(axis, rank)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid value for axes[%d]=%d", i, axis)
		}
		axesSet.Insert(adjustedAxis)
	}
	return utils.SortedKeys(axesSet), nil
}

// Statistical returns the output shape of the statistical operations (Sum, Mean, Max, Min, Prod, Std
// and Variance).
//
// The output rank is:
//
//   - the operand's rank (possibly unknown) if attrs.KeepDims;
//   - 0 if reducing all axes;
//   - unknown if the operand's rank is unknown;
//   - the operand's rank minus the number of (normalized) axes reduced otherwise.
//
// If the operand's dimensions are known, the reduced axes are removed from the output, or set to 1
// if attrs.KeepDims. The DType and device are the operand's.
//
// The axes are only checked if the operand's rank is known, in which case an out-of-range axis
// returns an ErrAxisOutOfRange error.
func Statistical(operand shapes.Shape, attrs types.StatisticalAttrs) (output shapes.Shape, err error) {
	rank := operand.Rank()
	var axes []int
	if !operand.IsUnknownRank() && !attrs.AllAxes {
		axes, err = NormalizeAxes(attrs.Axes, rank)
		if err != nil {
			err = errors.WithMessagef(err, "invalid axes %v to reduce operand %s", attrs.Axes, operand)
			return
		}
	}

	var outputRank int
	switch {
	case attrs.KeepDims:
		outputRank = rank
	case attrs.AllAxes:
		outputRank = 0
	case operand.IsUnknownRank():
		outputRank = shapes.UnknownRank
	default:
		outputRank = rank - len(axes)
		if outputRank < 0 {
			err = errors.Wrapf(ErrInternal, "reducing axes %v of operand %s resulted in negative rank %d",
				axes, operand, outputRank)
			return
		}
	}

	if !operand.HasDims() {
		switch {
		case attrs.AllAxes && attrs.KeepDims && outputRank != shapes.UnknownRank:
			// Reducing all axes and keeping them: every dimension is 1, regardless of the operand's.
			ones := make([]int, outputRank)
			for i := range ones {
				ones[i] = 1
			}
			output = shapes.Make(operand.DType, ones...)
		case outputRank == 0:
			output = shapes.Scalar(operand.DType)
		default:
			output = shapes.MakeWithRank(operand.DType, outputRank)
		}
		output.Device = operand.Device
		return
	}

	// Operand has known dimensions: reduced axes are either dropped or kept with dimension 1.
	axesSet := utils.SetWith(axes...)
	outputDims := make([]dims.Dim, 0, rank)
	for axis, dim := range operand.Dims() {
		if !attrs.AllAxes && !axesSet.Has(axis) {
			outputDims = append(outputDims, dim)
		} else if attrs.KeepDims {
			outputDims = append(outputDims, dims.Int(1))
		}
	}
	if len(outputDims) != outputRank {
		err = errors.Wrapf(ErrInternal, "reducing axes %v of operand %s resulted in %d axes, expected rank %d",
			axes, operand, len(outputDims), outputRank)
		return
	}
	output = shapes.MakeDims(operand.DType, outputDims...)
	output.Device = operand.Device
	return
}

// CumSum returns the output shape of the cumulative sum.
//
// The output dtype is attrs.DType if given, otherwise the operand's. If accumulating along an axis,
// the output has the operand's shape. The axis is checked (ErrAxisOutOfRange) if the operand's rank
// is known, which is stricter than the plain shape copy of the Relax rule.
//
// If attrs.Flatten, the output is the rank-1 flattened operand when its dimensions are known, with the
// dimension being the (possibly symbolic) product of the operand's dimensions: if its coefficient
// overflows an int64 it fails with ErrInvalidConfiguration. If the operand's dimensions are not
// known, the output keeps the operand's rank.
func CumSum(operand shapes.Shape, attrs types.CumSumAttrs) (output shapes.Shape, err error) {
	outputDType := attrs.DType
	if outputDType == dtypes.InvalidDType {
		outputDType = operand.DType
	}

	if attrs.Flatten {
		size, known, sizeErr := operand.Size()
		if sizeErr != nil {
			err = errors.Wrapf(ErrInvalidConfiguration, "CumSum cannot flatten operand %s: %v", operand, sizeErr)
			return
		}
		if known {
			output = shapes.MakeDims(outputDType, size)
		} else {
			// Unknown dimensions: the operand's rank is kept, not forced to 1.
			output = shapes.MakeWithRank(outputDType, operand.Rank())
		}
		output.Device = operand.Device
		return
	}

	if !operand.IsUnknownRank() {
		if _, err = AdjustAxisToRank(attrs.Axis, operand.Rank()); err != nil {
			err = errors.WithMessagef(err, "invalid axis for CumSum of operand %s", operand)
			return
		}
	}
	output = operand.WithDType(outputDType)
	return
}

// PermuteDims returns the shape of the operand with its axes permuted: output axis i is the operand's axis
// permutation[i].
//
// There must be one value in permutation for each axis in the operand. If the operand's rank is unknown,
// the output has rank len(permutation).
func PermuteDims(operand shapes.Shape, permutation []int) (output shapes.Shape, err error) {
	rank := len(permutation)
	if !operand.IsUnknownRank() && operand.Rank() != rank {
		err = errors.Wrapf(ErrInvalidConfiguration, "PermuteDims() requires all axes permutation to be defined, operand has shape %s, but %d permutation were given",
			operand, len(permutation))
		return
	}

	// Check permutation axes are within range and unique.
	axesSet := slices.Clone(permutation)
	slices.Sort(axesSet)
	for ii, srcAxis := range axesSet {
		if srcAxis < 0 || srcAxis >= rank {
			err = errors.Wrapf(ErrAxisOutOfRange, "invalid permutation axis %d given to PermuteDims(%s), it must be within the range of its rank",
				srcAxis, operand)
			return
		}
		if ii > 0 && srcAxis == axesSet[ii-1] {
			err = errors.Wrapf(ErrInvalidConfiguration, "invalid permutation given to PermuteDims(%s, %v), there cannot be any repeated axis, each must appear exactly once",
				operand, permutation)
			return
		}
	}

	if !operand.HasDims() {
		output = shapes.MakeRank(operand.DType, rank)
		output.Device = operand.Device
		return
	}
	outputDims := make([]dims.Dim, rank)
	for axis := range outputDims {
		outputDims[axis] = operand.Dim(permutation[axis])
	}
	output = shapes.MakeDims(operand.DType, outputDims...)
	output.Device = operand.Device
	return
}
