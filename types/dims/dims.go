// Package dims implements the dimension expressions used in shapes.
//
// A Dim is either a concrete size, like 24, or a symbolic expression over named compile-time
// variables, like "n" or "2*m*n". Expressions are kept as a monomial: an integer coefficient
// times a product of variables. This is closed under multiplication, which is all the
// shape inference of axis-reducing operations needs (e.g.: flattening a tensor multiplies
// all its dimensions).
//
// Dim is a comparable value: two Dim are equal (==) if and only if they represent the
// same expression.
package dims

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gomlx/structinfo/internal/utils"
	"github.com/pkg/errors"
)

// Dim is a dimension expression. The zero value is the concrete dimension 0.
type Dim struct {
	coef int64

	// vars holds the variable names in ascending order, joined by "*". Repeated variables
	// are repeated in the list.
	vars string
}

// Const returns a concrete dimension.
func Const(value int64) Dim {
	return Dim{coef: value}
}

// Int is an alias to Const that takes an int.
func Int(value int) Dim {
	return Const(int64(value))
}

// Var returns a dimension given by the symbolic variable name.
//
// The name must be a valid identifier (letters, digits and underscore, not starting with a digit),
// see NewVar for a version that returns an error.
func Var(name string) Dim {
	d, err := NewVar(name)
	if err != nil {
		panic(err)
	}
	return d
}

// NewVar returns a dimension given by the symbolic variable name, or an error if the name is not
// a valid identifier.
func NewVar(name string) (Dim, error) {
	if !utils.IsIdentifier(name) {
		return Dim{}, errors.Errorf("invalid symbolic dimension name %q, it must be an identifier (suggestion %q)",
			name, utils.NormalizeIdentifier(name))
	}
	return Dim{coef: 1, vars: name}, nil
}

// Ints converts a list of ints to a list of concrete dimensions.
func Ints(values ...int) []Dim {
	ds := make([]Dim, len(values))
	for i, v := range values {
		ds[i] = Int(v)
	}
	return ds
}

// IsConst returns whether the dimension is a concrete integer.
func (d Dim) IsConst() bool {
	return d.vars == "" || d.coef == 0
}

// Value returns the concrete value of the dimension, and whether it is concrete.
func (d Dim) Value() (int64, bool) {
	if !d.IsConst() {
		return 0, false
	}
	return d.coef, true
}

// Vars returns the names of the symbolic variables in the expression, in ascending order.
// A variable that appears multiple times in the product is repeated.
func (d Dim) Vars() []string {
	if d.IsConst() {
		return nil
	}
	return strings.Split(d.vars, "*")
}

// ErrOverflow is returned when the coefficient of a product doesn't fit an int64.
var ErrOverflow = errors.New("dimension product overflows int64")

// mulInt64 returns a*b and whether it didn't overflow.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// CheckedMul returns the product d*other, or an error wrapping ErrOverflow if the coefficient overflows.
func (d Dim) CheckedMul(other Dim) (Dim, error) {
	coef, ok := mulInt64(d.coef, other.coef)
	if !ok {
		return Dim{}, errors.Wrapf(ErrOverflow, "%s * %s", d, other)
	}
	if coef == 0 {
		return Const(0), nil
	}
	switch {
	case d.vars == "":
		return Dim{coef: coef, vars: other.vars}, nil
	case other.vars == "":
		return Dim{coef: coef, vars: d.vars}, nil
	}
	vars := append(d.Vars(), other.Vars()...)
	slices.Sort(vars)
	return Dim{coef: coef, vars: strings.Join(vars, "*")}, nil
}

// Mul returns the product d*other. It panics if the coefficient overflows, see CheckedMul.
func (d Dim) Mul(other Dim) Dim {
	p, err := d.CheckedMul(other)
	if err != nil {
		panic(err)
	}
	return p
}

// CheckedProduct returns the product of all dimensions, or an error wrapping ErrOverflow if the
// coefficient overflows. The product of an empty list is 1.
func CheckedProduct(ds ...Dim) (Dim, error) {
	p := Const(1)
	for _, d := range ds {
		var err error
		if p, err = p.CheckedMul(d); err != nil {
			return Dim{}, errors.WithMessagef(err, "product of %v", ds)
		}
	}
	return p, nil
}

// Product returns the product of all dimensions. The product of an empty list is 1.
// It panics if the coefficient overflows, see CheckedProduct.
func Product(ds ...Dim) Dim {
	p, err := CheckedProduct(ds...)
	if err != nil {
		panic(err)
	}
	return p
}

// String implements fmt.Stringer. Examples: "24", "n", "2*m*n".
func (d Dim) String() string {
	if d.IsConst() {
		return strconv.FormatInt(d.coef, 10)
	}
	switch d.coef {
	case 1:
		return d.vars
	case -1:
		return "-" + d.vars
	}
	return fmt.Sprintf("%d*%s", d.coef, d.vars)
}
