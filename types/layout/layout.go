// Package layout implements the algebra of physical tensor layouts.
//
// A Layout describes the order in which the logical axes of a tensor are physically stored:
// Layout[i] is the logical axis stored at physical position i. The initial (or identity)
// layout of rank 3 is [0 1 2], and the layout [1 0 2] stores the first two logical axes
// swapped.
//
// Layouts are printed with one letter per logical axis, the convention used by layout
// optimization passes: [0 1 2] is "ABC" and [1 0 2] is "BAC".
//
// Only permutation layouts are supported: tiled or blocked layouts (like "NCHW4c") are not.
package layout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/structinfo/internal/utils"
	"github.com/pkg/errors"
)

// maxLetterRank is the largest rank that can be printed with one letter per axis.
const maxLetterRank = 26

// Layout is a permutation of the logical axes of a tensor: Layout[i] is the logical
// axis stored at the physical position i.
type Layout []int

// Initial returns the initial (identity) layout for the given rank.
func Initial(rank int) Layout {
	l := make(Layout, rank)
	for i := range l {
		l[i] = i
	}
	return l
}

// Parse converts the letter representation to a Layout. E.g.: "BAC" -> [1 0 2].
// Letters must be upper case, and the layout must be a permutation of the first len(s) letters.
func Parse(s string) (Layout, error) {
	l := make(Layout, len(s))
	for i, r := range s {
		if r < 'A' || r > 'Z' {
			return nil, errors.Errorf("invalid layout %q: axis %d is %q, only upper case letters are supported", s, i, r)
		}
		l[i] = int(r - 'A')
	}
	if err := l.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "invalid layout %q", s)
	}
	return l, nil
}

// MustParse is like Parse, but panics on error.
func MustParse(s string) Layout {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Validate checks that the layout is a permutation of 0..Rank()-1.
func (l Layout) Validate() error {
	seen := utils.MakeSet[int](len(l))
	for i, axis := range l {
		if axis < 0 || axis >= len(l) {
			return errors.Errorf("layout %v has axis %d at position %d out of range for rank %d", []int(l), axis, i, len(l))
		}
		if seen.Has(axis) {
			return errors.Errorf("layout %v has axis %d repeated", []int(l), axis)
		}
		seen.Insert(axis)
	}
	return nil
}

// Rank returns the number of axes of the layout.
func (l Layout) Rank() int { return len(l) }

// IsInitial returns whether the layout is the initial (identity) layout.
func (l Layout) IsInitial() bool {
	for i, axis := range l {
		if i != axis {
			return false
		}
	}
	return true
}

// Equal returns whether both layouts are the same.
func (l Layout) Equal(l2 Layout) bool {
	return slices.Equal(l, l2)
}

// Clone returns a copy of the layout.
func (l Layout) Clone() Layout {
	return slices.Clone(l)
}

// Inverse returns the layout that undoes l: Inverse()[l[i]] = i.
//
// If a tensor is stored in layout l, permuting its axes by l.Inverse() restores the logical order.
func (l Layout) Inverse() Layout {
	inv := make(Layout, len(l))
	for i, axis := range l {
		inv[axis] = i
	}
	return inv
}

// PositionOf returns the physical position where the logical axis is stored, or -1 if not found.
func (l Layout) PositionOf(axis int) int {
	return slices.Index(l, axis)
}

// String implements fmt.Stringer. E.g.: "BAC". Layouts with rank > 26 are printed as a list of axes.
func (l Layout) String() string {
	if len(l) > maxLetterRank {
		return fmt.Sprintf("%v", []int(l))
	}
	var sb strings.Builder
	for _, axis := range l {
		sb.WriteByte(byte('A' + axis))
	}
	return sb.String()
}

// TransposeLike reinterprets a per-axis label from the physical order given by the from layout into
// the physical order given by the to layout:
//
//	output[i] = values[from.PositionOf(to[i])]
//
// So TransposeLike(values, Initial(rank), to) reorders labels indexed by logical axis into labels indexed
// by physical position of the to layout.
//
// The values, from and to must all have the same length, and from and to must be valid layouts.
func TransposeLike[T any](values []T, from, to Layout) ([]T, error) {
	if len(values) != len(from) || len(from) != len(to) {
		return nil, errors.Errorf("TransposeLike requires values (len=%d), from layout (%s) and to layout (%s) to have the same rank",
			len(values), from, to)
	}
	if err := from.Validate(); err != nil {
		return nil, errors.WithMessage(err, "TransposeLike invalid from layout")
	}
	if err := to.Validate(); err != nil {
		return nil, errors.WithMessage(err, "TransposeLike invalid to layout")
	}
	fromPositions := from.Inverse()
	output := make([]T, len(values))
	for i, axis := range to {
		output[i] = values[fromPositions[axis]]
	}
	return output, nil
}
