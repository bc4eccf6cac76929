package optypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRelax(t *testing.T) {
	for _, tc := range []struct {
		op         OpType
		relax      string
		scriptName string
	}{
		{Sum, "relax.sum", "R.sum"},
		{Mean, "relax.mean", "R.mean"},
		{Variance, "relax.variance", "R.variance"},
		{CumSum, "relax.cumsum", "R.cumsum"},
		{PermuteDims, "relax.permute_dims", "R.permute_dims"},
	} {
		assert.Equal(t, tc.relax, tc.op.ToRelax())
		assert.Equal(t, tc.scriptName, tc.op.ScriptName())
	}
	assert.Equal(t, "return", FuncReturn.ScriptName())
}

func TestStatisticalOps(t *testing.T) {
	assert.Equal(t, []OpType{Max, Mean, Min, Prod, Std, Sum, Variance}, StatisticalOps())
	assert.False(t, CumSum.IsStatistical())
	assert.False(t, PermuteDims.IsStatistical())

	op, err := OpTypeString("variance")
	require.NoError(t, err)
	assert.Equal(t, Variance, op)
	_, err = OpTypeString("argmax")
	assert.Error(t, err)
}
