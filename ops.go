package structinfo

import (
	"slices"

	"github.com/gomlx/structinfo/internal/optypes"
	"github.com/gomlx/structinfo/shapeinference"
	"github.com/gomlx/structinfo/types"
	"github.com/gomlx/structinfo/types/shapes"
	"github.com/pkg/errors"
)

// addOp adds a new operation to the function.
func (fn *Function) addOp(opType optypes.OpType, outputShape shapes.Shape, attrs relaxAttributes, inputs ...*Value) *Statement {
	stmt := &Statement{
		Builder:    fn.Builder,
		Function:   fn,
		OpType:     opType,
		Inputs:     inputs,
		Attributes: attrs,
		Outputs:    []*Value{fn.newValue(outputShape)},
	}
	fn.Statements = append(fn.Statements, stmt)
	return stmt
}

// checkOperand checks that a new operation op can be added to the function with the given operand.
func (fn *Function) checkOperand(op optypes.OpType, operand *Value) error {
	if fn.Returned {
		return errors.Wrapf(shapeinference.ErrInvalidConfiguration,
			"cannot add operation %s after returning, in function %q", op, fn.Name)
	}
	if operand == nil {
		return errors.Wrapf(shapeinference.ErrInvalidConfiguration,
			"cannot add operation %s to function %q with a nil operand", op, fn.Name)
	}
	if operand.fn != fn {
		return errors.Wrapf(shapeinference.ErrInvalidConfiguration,
			"cannot add operation %s to function %q, because the operand %s is not part of the function",
			op, fn.Name, operand)
	}
	return nil
}

// statisticalOp adds one of the statistical operations (Sum, Mean, Max, Min, Prod, Std and Variance) to the function.
func (fn *Function) statisticalOp(op optypes.OpType, x *Value, attrs types.StatisticalAttrs) (*Value, error) {
	if !op.IsStatistical() {
		return nil, errors.Wrapf(shapeinference.ErrInternal, "operation %s is not a statistical operation", op)
	}
	if err := fn.checkOperand(op, x); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.Statistical(x.shape, attrs)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s(%s)", op, x)
	}
	return fn.addOp(op, outputShape, attrs.Clone(), x).Outputs[0], nil
}

// CumSum returns the cumulative sum of x along the axis configured by attrs, or over the flattened x if
// attrs.Flatten is set.
//
// The output dtype is attrs.DType, or x's dtype if attrs.DType is not set.
func (fn *Function) CumSum(x *Value, attrs types.CumSumAttrs) (*Value, error) {
	op := optypes.CumSum
	if err := fn.checkOperand(op, x); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.CumSum(x.shape, attrs)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s(%s)", op, x)
	}
	return fn.addOp(op, outputShape, attrs, x).Outputs[0], nil
}

// PermuteDims permutes the axes of x: output axis i is the axis axes[i] of x.
//
// The axes must be a permutation of the axes of x.
func (fn *Function) PermuteDims(x *Value, axes ...int) (*Value, error) {
	op := optypes.PermuteDims
	if err := fn.checkOperand(op, x); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.PermuteDims(x.shape, axes)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s(%s)", op, x)
	}
	return fn.addOp(op, outputShape, types.PermuteDimsAttrs{Axes: slices.Clone(axes)}, x).Outputs[0], nil
}
