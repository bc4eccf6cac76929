package utils

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
)

func TestNormalizeIdentifier(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"", ""},
		{"batch", "batch"},
		{"seq-len", "seq_len"},
		{"0axis", "_0axis"},
		{"n m", "n_m"},
	} {
		if got := NormalizeIdentifier(tc.in); got != tc.want {
			t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, tc := range []struct {
		name string
		want bool
	}{
		{"n", true},
		{"batch_size", true},
		{"", false},
		{"0n", false},
		{"a*b", false},
	} {
		if got := IsIdentifier(tc.name); got != tc.want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"Sum", "sum"},
		{"CumSum", "cum_sum"},
		{"PermuteDims", "permute_dims"},
		{"FFTShift", "fft_shift"},
		{"Std", "std"},
	} {
		if got := ToSnakeCase(tc.in); got != tc.want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDTypeToRelax(t *testing.T) {
	if got := DTypeToRelax(dtypes.Float32); got != "float32" {
		t.Errorf("DTypeToRelax(Float32) = %q, want %q", got, "float32")
	}
	if got := DTypeToRelax(dtypes.Int64); got != "int64" {
		t.Errorf("DTypeToRelax(Int64) = %q, want %q", got, "int64")
	}
	if got := DTypeToRelax(dtypes.InvalidDType); got != "" {
		t.Errorf("DTypeToRelax(InvalidDType) = %q, want empty", got)
	}
}
