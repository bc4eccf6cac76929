package shapeinference

import (
	"slices"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/structinfo/types"
	"github.com/gomlx/structinfo/types/dims"
	"github.com/gomlx/structinfo/types/shapes"
	"github.com/gomlx/structinfo/types/vdevice"
	"github.com/pkg/errors"
)

// Aliases
var (
	I64 = dtypes.Int64
	F32 = dtypes.Float32

	S = shapes.Make
)

// must1 panics if there is an error.
func must1[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

func TestNormalizeAxes(t *testing.T) {
	for _, tc := range []struct {
		axes []int
		rank int
		want []int
	}{
		{[]int{}, 3, []int{}},
		{[]int{-1}, 3, []int{2}},
		{[]int{2, 0}, 3, []int{0, 2}},
		{[]int{1, -2, 1}, 3, []int{1}},
		{[]int{0, 1, 2}, 3, []int{0, 1, 2}},
		{[]int{-1}, 1, []int{0}},
	} {
		got, err := NormalizeAxes(tc.axes, tc.rank)
		if err != nil {
			t.Errorf("NormalizeAxes(%v, %d) failed: %v", tc.axes, tc.rank, err)
			continue
		}
		if !slices.Equal(got, tc.want) {
			t.Errorf("NormalizeAxes(%v, %d) = %v, want %v", tc.axes, tc.rank, got, tc.want)
		}
		// Normalizing again is a no-op.
		again := must1(NormalizeAxes(got, tc.rank))
		if !slices.Equal(again, got) {
			t.Errorf("NormalizeAxes(%v, %d) not idempotent, got %v", got, tc.rank, again)
		}
	}

	for _, tc := range []struct {
		axes []int
		rank int
	}{
		{[]int{5}, 3},
		{[]int{3}, 3},
		{[]int{-4}, 3},
		{[]int{0}, 0},
		{[]int{0, 1, 7}, 2},
	} {
		_, err := NormalizeAxes(tc.axes, tc.rank)
		if !errors.Is(err, ErrAxisOutOfRange) {
			t.Errorf("NormalizeAxes(%v, %d) should fail with ErrAxisOutOfRange, got %v", tc.axes, tc.rank, err)
		}
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("NormalizeAxes(%v, %d) error should also be an ErrInvalidConfiguration, got %v", tc.axes, tc.rank, err)
		}
	}

	// Input is not changed.
	axes := []int{-1, 0}
	_ = must1(NormalizeAxes(axes, 2))
	if !slices.Equal(axes, []int{-1, 0}) {
		t.Errorf("NormalizeAxes changed its input to %v", axes)
	}
}

func TestAdjustAxisToRank(t *testing.T) {
	if got := must1(AdjustAxisToRank(-1, 4)); got != 3 {
		t.Errorf("AdjustAxisToRank(-1, 4) = %d, want 3", got)
	}
	if got := must1(AdjustAxisToRank(2, 4)); got != 2 {
		t.Errorf("AdjustAxisToRank(2, 4) = %d, want 2", got)
	}
	if _, err := AdjustAxisToRank(4, 4); !errors.Is(err, ErrAxisOutOfRange) {
		t.Errorf("AdjustAxisToRank(4, 4) should fail with ErrAxisOutOfRange, got %v", err)
	}
}

func TestStatistical(t *testing.T) {
	n := dims.Var("n")
	for _, tc := range []struct {
		name    string
		operand shapes.Shape
		attrs   types.StatisticalAttrs
		want    shapes.Shape
	}{
		// Known dimensions.
		{"axis 1", S(F32, 2, 3, 4), types.ReduceAxes(false, 1), S(F32, 2, 4)},
		{"axis 1 keepdims", S(F32, 2, 3, 4), types.ReduceAxes(true, 1), S(F32, 2, 1, 4)},
		{"all axes", S(F32, 2, 3, 4), types.ReduceAll(false), shapes.Scalar(F32)},
		{"all axes keepdims", S(F32, 2, 3, 4), types.ReduceAll(true), S(F32, 1, 1, 1)},
		{"negative and repeated axes", S(F32, 2, 3, 4), types.ReduceAxes(false, -1, 2, 0), S(F32, 3)},
		{"empty axes", S(F32, 2, 3), types.ReduceAxes(false), S(F32, 2, 3)},
		{"axes listing all", S(F32, 2, 3), types.ReduceAxes(false, 0, 1), shapes.Scalar(F32)},
		{"scalar", shapes.Scalar(I64), types.ReduceAll(false), shapes.Scalar(I64)},
		{"symbolic dims", shapes.MakeDims(F32, n, dims.Int(3), dims.Int(4)), types.ReduceAxes(false, 1),
			shapes.MakeDims(F32, n, dims.Int(4))},
		{"symbolic reduced axis", shapes.MakeDims(F32, n, dims.Int(3)), types.ReduceAxes(true, 0), S(F32, 1, 3)},

		// Known rank, unknown dimensions.
		{"rank axis 1", shapes.MakeRank(F32, 3), types.ReduceAxes(false, 1), shapes.MakeRank(F32, 2)},
		{"rank axis 1 keepdims", shapes.MakeRank(F32, 3), types.ReduceAxes(true, 1), shapes.MakeRank(F32, 3)},
		{"rank all axes", shapes.MakeRank(F32, 3), types.ReduceAll(false), shapes.Scalar(F32)},
		{"rank all axes keepdims", shapes.MakeRank(F32, 3), types.ReduceAll(true), S(F32, 1, 1, 1)},
		{"rank all listed", shapes.MakeRank(F32, 2), types.ReduceAxes(false, 0, -1), shapes.Scalar(F32)},

		// Unknown rank.
		{"unknown rank axis", shapes.MakeUnknownRank(F32), types.ReduceAxes(false, 1), shapes.MakeUnknownRank(F32)},
		{"unknown rank axis keepdims", shapes.MakeUnknownRank(F32), types.ReduceAxes(true, 1), shapes.MakeUnknownRank(F32)},
		{"unknown rank all axes", shapes.MakeUnknownRank(F32), types.ReduceAll(false), shapes.Scalar(F32)},
		{"unknown rank all axes keepdims", shapes.MakeUnknownRank(F32), types.ReduceAll(true), shapes.MakeUnknownRank(F32)},
		{"unknown rank axes not checked", shapes.MakeUnknownRank(F32), types.ReduceAxes(false, 100), shapes.MakeUnknownRank(F32)},

		// Void dtype is propagated as is.
		{"void dtype", S(dtypes.InvalidDType, 2, 3), types.ReduceAxes(false, 0), S(dtypes.InvalidDType, 3)},
	} {
		got, err := Statistical(tc.operand, tc.attrs)
		if err != nil {
			t.Errorf("%s: Statistical(%s, %+v) failed: %v", tc.name, tc.operand, tc.attrs, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%s: Statistical(%s, %+v) = %s, want %s", tc.name, tc.operand, tc.attrs, got, tc.want)
		}
	}
}

func TestStatisticalErrors(t *testing.T) {
	for _, tc := range []struct {
		operand shapes.Shape
		attrs   types.StatisticalAttrs
	}{
		{S(F32, 2, 3, 4), types.ReduceAxes(false, 5)},
		{S(F32, 2, 3, 4), types.ReduceAxes(true, -4)},
		{shapes.MakeRank(F32, 3), types.ReduceAxes(false, 3)},
		{shapes.Scalar(F32), types.ReduceAxes(false, 0)},
	} {
		_, err := Statistical(tc.operand, tc.attrs)
		if !errors.Is(err, ErrAxisOutOfRange) {
			t.Errorf("Statistical(%s, %+v) should fail with ErrAxisOutOfRange, got %v", tc.operand, tc.attrs, err)
		}
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("Statistical(%s, %+v) should fail with ErrInvalidConfiguration, got %v", tc.operand, tc.attrs, err)
		}
	}
}

func TestStatisticalRanks(t *testing.T) {
	// For every rank and every subset of axes, the output rank is r with keepdims, and r-|subset| without.
	for rank := range 5 {
		dimensions := make([]int, rank)
		for i := range dimensions {
			dimensions[i] = i + 2
		}
		for mask := range 1 << rank {
			var axes []int
			for axis := range rank {
				if mask&(1<<axis) != 0 {
					axes = append(axes, axis)
				}
			}
			for _, operand := range []shapes.Shape{S(F32, dimensions...), shapes.MakeRank(F32, rank)} {
				kept := must1(Statistical(operand, types.ReduceAxes(true, axes...)))
				if kept.Rank() != rank {
					t.Errorf("Statistical(%s, axes=%v, keepdims) has rank %d, want %d", operand, axes, kept.Rank(), rank)
				}
				dropped := must1(Statistical(operand, types.ReduceAxes(false, axes...)))
				if dropped.Rank() != rank-len(axes) {
					t.Errorf("Statistical(%s, axes=%v) has rank %d, want %d", operand, axes, dropped.Rank(), rank-len(axes))
				}
			}
		}
	}
}

func TestStatisticalPropagatesDevice(t *testing.T) {
	device := must1(vdevice.New("cuda", 0, ""))
	for _, operand := range []shapes.Shape{
		S(F32, 2, 3).WithDevice(device),
		shapes.MakeRank(F32, 2).WithDevice(device),
		shapes.MakeUnknownRank(F32).WithDevice(device),
	} {
		for _, attrs := range []types.StatisticalAttrs{types.ReduceAll(false), types.ReduceAll(true), types.ReduceAxes(false, 0)} {
			got := must1(Statistical(operand, attrs))
			if got.Device != device {
				t.Errorf("Statistical(%s, %+v) = %s lost the device", operand, attrs, got)
			}
			if got.DType != F32 {
				t.Errorf("Statistical(%s, %+v) = %s changed the dtype", operand, attrs, got)
			}
		}
	}
}

func TestCumSum(t *testing.T) {
	n, m := dims.Var("n"), dims.Var("m")
	device := must1(vdevice.New("llvm", 0, ""))
	for _, tc := range []struct {
		name    string
		operand shapes.Shape
		attrs   types.CumSumAttrs
		want    shapes.Shape
	}{
		{"flatten", S(F32, 2, 3, 4), types.CumSumFlattened(), S(F32, 24)},
		{"flatten symbolic", shapes.MakeDims(F32, n, dims.Int(3), m), types.CumSumFlattened(),
			shapes.MakeDims(F32, dims.Int(3).Mul(m).Mul(n))},
		{"flatten scalar", shapes.Scalar(F32), types.CumSumFlattened(), S(F32, 1)},
		{"flatten dtype", S(dtypes.Int32, 2, 3), types.CumSumFlattened().WithDType(I64), S(I64, 6)},
		{"flatten unknown dims keeps rank", shapes.MakeRank(F32, 3), types.CumSumFlattened(), shapes.MakeRank(F32, 3)},
		{"flatten unknown rank", shapes.MakeUnknownRank(F32), types.CumSumFlattened(), shapes.MakeUnknownRank(F32)},
		{"axis", S(F32, 2, 3, 4), types.CumSumAlong(1), S(F32, 2, 3, 4)},
		{"negative axis", S(F32, 2, 3, 4), types.CumSumAlong(-1), S(F32, 2, 3, 4)},
		{"axis dtype", S(F32, 2, 3), types.CumSumAlong(0).WithDType(dtypes.Float64), S(dtypes.Float64, 2, 3)},
		{"axis unknown dims", shapes.MakeRank(F32, 2), types.CumSumAlong(1), shapes.MakeRank(F32, 2)},
		{"axis unknown rank", shapes.MakeUnknownRank(F32), types.CumSumAlong(7), shapes.MakeUnknownRank(F32)},
		{"device", S(F32, 2, 3).WithDevice(device), types.CumSumFlattened(), S(F32, 6).WithDevice(device)},
		{"device axis", S(F32, 2, 3).WithDevice(device), types.CumSumAlong(0), S(F32, 2, 3).WithDevice(device)},
	} {
		got, err := CumSum(tc.operand, tc.attrs)
		if err != nil {
			t.Errorf("%s: CumSum(%s, %+v) failed: %v", tc.name, tc.operand, tc.attrs, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%s: CumSum(%s, %+v) = %s, want %s", tc.name, tc.operand, tc.attrs, got, tc.want)
		}
	}

	_, err := CumSum(S(F32, 2, 3), types.CumSumAlong(2))
	if !errors.Is(err, ErrAxisOutOfRange) {
		t.Errorf("CumSum with axis 2 on rank 2 should fail with ErrAxisOutOfRange, got %v", err)
	}

	// Flattened size overflowing int64 is an error, never a wrapped or negative dimension.
	for _, operand := range []shapes.Shape{
		S(F32, 1<<32, 1<<32),
		S(F32, 1<<62, 2),
		shapes.MakeDims(F32, dims.Int(1<<40), dims.Var("n"), dims.Int(1<<40)),
	} {
		output, err := CumSum(operand, types.CumSumFlattened())
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("CumSum(%s, flattened) should fail with ErrInvalidConfiguration, got output %s, err=%v", operand, output, err)
		}
	}
	// Accumulating along an axis doesn't need the size.
	if _, err := CumSum(S(F32, 1<<62, 2), types.CumSumAlong(0)); err != nil {
		t.Errorf("CumSum along axis 0 failed: %v", err)
	}
}

func TestPermuteDims(t *testing.T) {
	n := dims.Var("n")
	got := must1(PermuteDims(shapes.MakeDims(F32, dims.Int(2), n, dims.Int(4)), []int{1, 0, 2}))
	if want := shapes.MakeDims(F32, n, dims.Int(2), dims.Int(4)); !got.Equal(want) {
		t.Errorf("PermuteDims() = %s, want %s", got, want)
	}
	got = must1(PermuteDims(shapes.MakeRank(F32, 2), []int{1, 0}))
	if want := shapes.MakeRank(F32, 2); !got.Equal(want) {
		t.Errorf("PermuteDims() = %s, want %s", got, want)
	}
	got = must1(PermuteDims(shapes.MakeUnknownRank(F32), []int{1, 0}))
	if want := shapes.MakeRank(F32, 2); !got.Equal(want) {
		t.Errorf("PermuteDims() = %s, want %s", got, want)
	}
	got = must1(PermuteDims(shapes.Scalar(F32), nil))
	if !got.IsScalar() {
		t.Errorf("PermuteDims(scalar) = %s, want scalar", got)
	}

	if _, err := PermuteDims(S(F32, 2, 3), []int{0}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("PermuteDims with missing axes should fail with ErrInvalidConfiguration, got %v", err)
	}
	if _, err := PermuteDims(S(F32, 2, 3), []int{0, 2}); !errors.Is(err, ErrAxisOutOfRange) {
		t.Errorf("PermuteDims with axis out-of-range should fail with ErrAxisOutOfRange, got %v", err)
	}
	if _, err := PermuteDims(S(F32, 2, 3), []int{1, 1}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("PermuteDims with repeated axes should fail with ErrInvalidConfiguration, got %v", err)
	}
}
