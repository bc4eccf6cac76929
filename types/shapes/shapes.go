/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package shapes defines Shape, the static information known about a tensor value.
//
// A Shape holds what is known at compile time about a tensor: its rank, its dimensions, its
// DType and the device where it is placed. Any of it may be missing, and Shape models the
// three levels of information as a tagged variant (see Kind):
//
//   - UnknownRank: nothing is known about the axes.
//   - KnownRank: the number of axes is known, but not their dimensions.
//   - KnownShape: the rank and every dimension are known. Dimensions may still be symbolic
//     expressions (see package dims), like "n" or "2*n".
//
// The DType may also be unspecified (dtypes.InvalidDType), meaning "inherit from the input" for
// the operations that accept a dtype override.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a Tensor.
//   - Axis: is the index of a dimension on a multidimensional Tensor. Sometimes used
//     interchangeably with Dimension, but here we try to refer to a dimension index as "axis"
//     (plural axes), and its size as its dimension.
//   - Dimension: the size of a multi-dimensions Tensor in one of its axes.
//   - DType: the data type of the unit element in a tensor. Enumeration defined in github.com/gomlx/gopjrt/dtypes
//   - Scalar: is a shape where there are no axes (or dimensions), only a single value
//     of the associated DType.
package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/structinfo/internal/utils"
	"github.com/gomlx/structinfo/types/dims"
	"github.com/gomlx/structinfo/types/vdevice"
	"github.com/pkg/errors"
)

// Kind is the level of information a Shape holds about the axes of a tensor.
type Kind int

const (
	// UnknownRankKind shapes know nothing about the axes.
	UnknownRankKind Kind = iota

	// KnownRankKind shapes know the number of axes, but not their dimensions.
	KnownRankKind

	// KnownShapeKind shapes know the rank and all dimensions.
	KnownShapeKind
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case UnknownRankKind:
		return "UnknownRank"
	case KnownRankKind:
		return "KnownRank"
	case KnownShapeKind:
		return "KnownShape"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// UnknownRank is returned by Shape.Rank when the rank is not known.
const UnknownRank = -1

// Shape is the static information of a tensor value. It is immutable: all methods that
// change it return a new Shape.
//
// Use Make, MakeDims, MakeRank or MakeUnknownRank to create one.
type Shape struct {
	// DType of the elements. dtypes.InvalidDType means unspecified.
	DType dtypes.DType

	// Device where the tensor is placed, or nil if not specified.
	Device *vdevice.VDevice

	kind       Kind
	rank       int
	dimensions []dims.Dim
}

// Make returns a Shape with concrete dimensions.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	return MakeDims(dtype, dims.Ints(dimensions...)...)
}

// MakeDims returns a Shape with the given, possibly symbolic, dimensions.
// It panics if a concrete dimension is negative.
func MakeDims(dtype dtypes.DType, dimensions ...dims.Dim) Shape {
	for axis, dim := range dimensions {
		if v, ok := dim.Value(); ok && v < 0 {
			panic(errors.Errorf("shapes.MakeDims(%s, %v): axis #%d has negative dimension %d", dtype, dimensions, axis, v))
		}
	}
	return Shape{
		DType:      dtype,
		kind:       KnownShapeKind,
		rank:       len(dimensions),
		dimensions: slices.Clone(dimensions),
	}
}

// Scalar returns a scalar shape (rank 0) for the given dtype.
func Scalar(dtype dtypes.DType) Shape {
	return MakeDims(dtype)
}

// MakeRank returns a Shape with known rank, but unknown dimensions.
// It panics if rank is negative.
func MakeRank(dtype dtypes.DType, rank int) Shape {
	if rank < 0 {
		panic(errors.Errorf("shapes.MakeRank(%s, %d): rank must be >= 0, use MakeUnknownRank instead", dtype, rank))
	}
	return Shape{DType: dtype, kind: KnownRankKind, rank: rank}
}

// MakeUnknownRank returns a Shape where nothing is known about the axes.
func MakeUnknownRank(dtype dtypes.DType) Shape {
	return Shape{DType: dtype, kind: UnknownRankKind, rank: UnknownRank}
}

// MakeWithRank returns a shape with the given rank, which may be UnknownRank, and unknown dimensions.
func MakeWithRank(dtype dtypes.DType, rank int) Shape {
	if rank == UnknownRank {
		return MakeUnknownRank(dtype)
	}
	return MakeRank(dtype, rank)
}

// Kind returns the level of information known about the shape's axes.
func (s Shape) Kind() Kind { return s.kind }

// Rank of the shape, that is, the number of axes. It returns UnknownRank (-1) if the rank is not known.
func (s Shape) Rank() int {
	if s.kind == UnknownRankKind {
		return UnknownRank
	}
	return s.rank
}

// IsUnknownRank returns whether the rank of the shape is not known.
func (s Shape) IsUnknownRank() bool { return s.kind == UnknownRankKind }

// HasDims returns whether all dimensions are known (they may still be symbolic).
func (s Shape) HasDims() bool { return s.kind == KnownShapeKind }

// IsScalar returns whether the shape is known to be a scalar, that is rank == 0.
func (s Shape) IsScalar() bool { return s.kind != UnknownRankKind && s.rank == 0 }

// Dims returns a copy of the dimensions, or nil if they are not known.
func (s Shape) Dims() []dims.Dim {
	if s.kind != KnownShapeKind {
		return nil
	}
	return slices.Clone(s.dimensions)
}

// Dim returns the dimension of the given axis. axis can take negative numbers, in which
// case it counts as starting from the end -- so axis=-1 refers to the last axis.
// Like with a slice indexing, it panics for an out-of-bound axis, or if the dimensions are not known.
func (s Shape) Dim(axis int) dims.Dim {
	if s.kind != KnownShapeKind {
		panic(errors.Errorf("Shape.Dim(%d) called for shape %s with unknown dimensions", axis, s))
	}
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.rank
	}
	if adjustedAxis < 0 || adjustedAxis >= s.rank {
		panic(errors.Errorf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.rank, s))
	}
	return s.dimensions[adjustedAxis]
}

// Size returns the number of elements as a dimension expression: the product of all dimensions.
// known is false if the dimensions are not known. It returns an error (wrapping dims.ErrOverflow)
// if the product doesn't fit an int64.
func (s Shape) Size() (size dims.Dim, known bool, err error) {
	if s.kind != KnownShapeKind {
		return dims.Dim{}, false, nil
	}
	size, err = dims.CheckedProduct(s.dimensions...)
	if err != nil {
		return dims.Dim{}, true, errors.WithMessagef(err, "size of shape %s", s)
	}
	return size, true, nil
}

// WithDType returns a copy of the shape with the given dtype.
func (s Shape) WithDType(dtype dtypes.DType) Shape {
	s2 := s.Clone()
	s2.DType = dtype
	return s2
}

// WithDevice returns a copy of the shape placed on the given device.
func (s Shape) WithDevice(device *vdevice.VDevice) Shape {
	s2 := s.Clone()
	s2.Device = device
	return s2
}

// Clone returns a deep copy of the shape. The device pointer is shared, since devices are immutable.
func (s Shape) Clone() Shape {
	s2 := s
	s2.dimensions = slices.Clone(s.dimensions)
	return s2
}

// Equal compares two shapes for equality: kind, rank, dimensions, dtype and device are compared.
func (s Shape) Equal(s2 Shape) bool {
	if s.DType != s2.DType || s.kind != s2.kind || s.Rank() != s2.Rank() {
		return false
	}
	if !s.Device.Equal(s2.Device) {
		return false
	}
	return slices.Equal(s.dimensions, s2.dimensions)
}

// String implements stringer, pretty-prints the shape. Examples: "(Float32)[2 n]", "(Float32)[?, ?]",
// "(Float32)[...]", "(Float32)@cuda:0".
func (s Shape) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "(%s)", s.DType)
	switch s.kind {
	case UnknownRankKind:
		sb.WriteString("[...]")
	case KnownRankKind:
		sb.WriteString("[")
		for axis := range s.rank {
			if axis > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("?")
		}
		sb.WriteString("]")
	case KnownShapeKind:
		if s.rank > 0 {
			_, _ = fmt.Fprintf(&sb, "%v", s.dimensions)
		}
	}
	if s.Device != nil {
		_, _ = fmt.Fprintf(&sb, "@%s", s.Device)
	}
	return sb.String()
}

// ToRelax returns the Relax script annotation for the shape. Examples:
//
//	R.Tensor((2, n), dtype="float32")
//	R.Tensor(dtype="float32", ndim=3)
//	R.Tensor(dtype="float32")
//	R.Tensor((), dtype="int64", vdevice="cuda:0")
func (s Shape) ToRelax() string {
	var parts []string
	if s.kind == KnownShapeKind {
		dimParts := make([]string, len(s.dimensions))
		for i, dim := range s.dimensions {
			dimParts[i] = dim.String()
		}
		tuple := "(" + strings.Join(dimParts, ", ")
		if len(dimParts) == 1 {
			tuple += ","
		}
		parts = append(parts, tuple+")")
	}
	if dtype := utils.DTypeToRelax(s.DType); dtype != "" {
		parts = append(parts, fmt.Sprintf("dtype=%q", dtype))
	}
	if s.kind == KnownRankKind {
		parts = append(parts, fmt.Sprintf("ndim=%d", s.rank))
	}
	if s.Device != nil {
		parts = append(parts, fmt.Sprintf("vdevice=%q", s.Device.String()))
	}
	return "R.Tensor(" + strings.Join(parts, ", ") + ")"
}
