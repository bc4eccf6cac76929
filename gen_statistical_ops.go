/***** File generated by ./internal/cmd/ops_generator, based on list of statistical ops in internal/optypes. Don't edit it directly. *****/

package structinfo

import (
	"github.com/gomlx/structinfo/internal/optypes"
	"github.com/gomlx/structinfo/types"
)

// Max returns the maximum value of x over the axes configured by attrs.
//
// Reduced axes are removed from the output, or kept with dimension 1 if attrs.KeepDims is set.
func (fn *Function) Max(x *Value, attrs types.StatisticalAttrs) (*Value, error) {
	return fn.statisticalOp(optypes.Max, x, attrs)
}

// Mean returns the mean of x over the axes configured by attrs.
//
// Reduced axes are removed from the output, or kept with dimension 1 if attrs.KeepDims is set.
func (fn *Function) Mean(x *Value, attrs types.StatisticalAttrs) (*Value, error) {
	return fn.statisticalOp(optypes.Mean, x, attrs)
}

// Min returns the minimum value of x over the axes configured by attrs.
//
// Reduced axes are removed from the output, or kept with dimension 1 if attrs.KeepDims is set.
func (fn *Function) Min(x *Value, attrs types.StatisticalAttrs) (*Value, error) {
	return fn.statisticalOp(optypes.Min, x, attrs)
}

// Prod returns the product of the values of x over the axes configured by attrs.
//
// Reduced axes are removed from the output, or kept with dimension 1 if attrs.KeepDims is set.
func (fn *Function) Prod(x *Value, attrs types.StatisticalAttrs) (*Value, error) {
	return fn.statisticalOp(optypes.Prod, x, attrs)
}

// Std returns the standard deviation of x over the axes configured by attrs.
//
// Reduced axes are removed from the output, or kept with dimension 1 if attrs.KeepDims is set.
func (fn *Function) Std(x *Value, attrs types.StatisticalAttrs) (*Value, error) {
	return fn.statisticalOp(optypes.Std, x, attrs)
}

// Sum returns the sum of x over the axes configured by attrs.
//
// Reduced axes are removed from the output, or kept with dimension 1 if attrs.KeepDims is set.
func (fn *Function) Sum(x *Value, attrs types.StatisticalAttrs) (*Value, error) {
	return fn.statisticalOp(optypes.Sum, x, attrs)
}

// Variance returns the variance of x over the axes configured by attrs.
//
// Reduced axes are removed from the output, or kept with dimension 1 if attrs.KeepDims is set.
func (fn *Function) Variance(x *Value, attrs types.StatisticalAttrs) (*Value, error) {
	return fn.statisticalOp(optypes.Variance, x, attrs)
}
