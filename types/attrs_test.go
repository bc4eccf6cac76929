package types

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
)

func TestStatisticalAttrs(t *testing.T) {
	axes := []int{1, -1}
	a := ReduceAxes(false, axes...)
	axes[0] = 7
	assert.Equal(t, []int{1, -1}, a.Axes, "ReduceAxes should copy the axes")
	assert.Equal(t, "axis=[1, -1], keepdims=False", a.ToRelax())

	all := ReduceAll(true)
	assert.True(t, all.AllAxes)
	assert.Equal(t, "axis=None, keepdims=True", all.ToRelax())

	// WithAxes doesn't touch the original.
	rewritten := all.WithAxes([]int{0, 2})
	assert.True(t, all.AllAxes)
	assert.False(t, rewritten.AllAxes)
	assert.True(t, rewritten.KeepDims)
	assert.Equal(t, []int{0, 2}, rewritten.Axes)

	c := a.Clone()
	c.Axes[0] = 3
	assert.Equal(t, 1, a.Axes[0])
}

func TestCumSumAttrs(t *testing.T) {
	assert.Equal(t, "axis=None, dtype=None", CumSumFlattened().ToRelax())
	assert.Equal(t, `axis=-1, dtype="int64"`, CumSumAlong(-1).WithDType(dtypes.Int64).ToRelax())
	assert.Equal(t, "axes=[1, 0, 2]", PermuteDimsAttrs{Axes: []int{1, 0, 2}}.ToRelax())
}
