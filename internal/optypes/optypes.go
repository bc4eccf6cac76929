// Package optypes defines OpType and lists the supported operations.
package optypes

import (
	"fmt"

	"github.com/gomlx/structinfo/internal/utils"
)

// OpType is an enum of all operations the builder can emit.
type OpType int

//go:generate go tool enumer -type=OpType optypes.go

const (
	Invalid OpType = iota
	FuncReturn

	// Statistical operations: they reduce one or more axes.
	Max
	Mean
	Min
	Prod
	Std
	Sum
	Variance

	CumSum
	PermuteDims

	// Last should always be kept the last, it is used as a counter/marker for .
	Last
)

var (
	// relaxMappings maps OpType to the corresponding Relax name, when the default
	// "snake case" doesn't work.
	relaxMappings = map[OpType]string{
		FuncReturn: "return",
		CumSum:     "relax.cumsum",
	}

	// statisticalOps is the set of operations sharing the statistical inference rules.
	statisticalOps = utils.SetWith(Max, Mean, Min, Prod, Std, Sum, Variance)
)

// ToRelax returns the registered Relax name of the operation, e.g.: "relax.sum".
func (op OpType) ToRelax() string {
	name, ok := relaxMappings[op]
	if !ok {
		name = fmt.Sprintf("relax.%s", utils.ToSnakeCase(op.String()))
	}
	return name
}

// ScriptName returns the name used when rendering the operation in a script, e.g.: "R.sum".
func (op OpType) ScriptName() string {
	if op == FuncReturn {
		return "return"
	}
	return "R." + op.ToRelax()[len("relax."):]
}

// IsStatistical returns whether the operation is one of the axis-reducing statistical operations.
func (op OpType) IsStatistical() bool {
	return statisticalOps.Has(op)
}

// StatisticalOps returns the statistical operations, in enum order.
func StatisticalOps() []OpType {
	ops := make([]OpType, 0, len(statisticalOps))
	for op := Invalid; op < Last; op++ {
		if op.IsStatistical() {
			ops = append(ops, op)
		}
	}
	return ops
}
