package structinfo

import (
	"fmt"
	"io"

	"github.com/gomlx/structinfo/internal/optypes"
	"github.com/gomlx/structinfo/shapeinference"
	"github.com/gomlx/structinfo/types/shapes"
	"github.com/pkg/errors"
)

// Function represents a `@R.function` of the program.
type Function struct {
	Builder *Builder

	// Name of the function.
	Name string

	// Inputs to the function.
	Inputs []*Value

	// Outputs shapes of the function.
	Outputs []shapes.Shape

	// Statements in the function body.
	Statements []*Statement

	// values holds all the values (e.g., lv0, lv1, x) created in the function's scope.
	values []*Value

	// nextArgID is the next ID to be assigned to new input arguments.
	nextArgID int

	// nextTmpID is the next ID to be assigned to new intermediary values.
	nextTmpID int

	// Returned indicates if the function has a return statement, so it can no longer be changed.
	Returned bool
}

// newValue creates a new value with the given shape and assigns it to the next available id.
func (fn *Function) newValue(shape shapes.Shape) (v *Value) {
	v = &Value{
		fn:    fn,
		name:  fmt.Sprintf("lv%d", fn.nextTmpID),
		shape: shape,
	}
	fn.nextTmpID++
	fn.values = append(fn.values, v)
	return v
}

// Input creates a new input parameter for a function.
//
// If creating multiple inputs (one at a time), the order matters, since during execution of a compiled function,
// the input parameters must be given in the same order they were created.
//
// It picks a default unique name for the input parameter, you can also
// provide a name with NamedInput.
func (fn *Function) Input(shape shapes.Shape) *Value {
	value := fn.NamedInput(fmt.Sprintf("arg%d", fn.nextArgID), shape)
	fn.nextArgID++
	return value
}

// NamedInput creates a new input parameter for a function with the given name -- it
// must be a unique input name.
//
// The name is passed through NormalizeIdentifier, which converts any non-digit or ASCII letter to an underscore.
//
// Names with the format "lv%d" and "arg%d" are reserved for the intermediary values and default input parameters.
func (fn *Function) NamedInput(name string, shape shapes.Shape) *Value {
	value := &Value{
		fn:    fn,
		name:  NormalizeIdentifier(name),
		shape: shape,
	}
	fn.Inputs = append(fn.Inputs, value)
	fn.values = append(fn.values, value)
	return value
}

// Return adds a return statement to the function with the given return values.
// There must be at least one return value.
//
// There can be only one return statement from a Function, and it must be the last
// operation of a function.
func (fn *Function) Return(firstValue *Value, otherValues ...*Value) error {
	if fn.Returned {
		return errors.Wrapf(shapeinference.ErrInvalidConfiguration, "Function.Return already called for %q", fn.Name)
	}
	allValues := make([]*Value, 1, len(otherValues)+1)
	allValues[0] = firstValue
	allValues = append(allValues, otherValues...)
	outputShapes := make([]shapes.Shape, len(allValues))
	for i, value := range allValues {
		if value == nil || value.fn != fn {
			return errors.Wrapf(shapeinference.ErrInvalidConfiguration,
				"Function.Return given values that are not owned by the function %q", fn.Name)
		}
		outputShapes[i] = value.shape
	}
	fn.Returned = true
	fn.Outputs = outputShapes

	stmt := &Statement{
		Builder:  fn.Builder,
		Function: fn,
		OpType:   optypes.FuncReturn,
		Inputs:   allValues,
	}
	fn.Statements = append(fn.Statements, stmt)
	return nil
}

// Write the function as a TVMScript-like text, with the given indentation.
func (fn *Function) Write(writer io.Writer, indentation string) error {
	// Create the formatting w() and we() internal functions to facilitate handling error while generating the statement code.
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter, indentation string) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}
	nextIndent := indentation + IndentationStep

	w("%s@R.function\n", indentation)
	w("%sdef %s(", indentation, NormalizeIdentifier(fn.Name))
	for i, input := range fn.Inputs {
		if i > 0 {
			w(", ")
		}
		we(input, nextIndent)
		w(": %s", input.shape.ToRelax())
	}
	w(")")
	if len(fn.Outputs) > 0 {
		w(" -> ")
		if len(fn.Outputs) > 1 {
			w("R.Tuple(")
		}
		for i, output := range fn.Outputs {
			if i > 0 {
				w(", ")
			}
			w("%s", output.ToRelax())
		}
		if len(fn.Outputs) > 1 {
			w(")")
		}
	}
	w(":\n")

	for _, stmt := range fn.Statements {
		we(stmt, nextIndent)
		w("\n")
	}
	return err
}
