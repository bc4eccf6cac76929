package structinfo

import (
	"fmt"
	"io"

	"github.com/gomlx/structinfo/internal/optypes"
)

// relaxAttributes is implemented by the attributes of the operations (see package types).
type relaxAttributes interface {
	ToRelax() string
}

// Statement represents a single operation line of a function body.
type Statement struct {
	Builder  *Builder
	Function *Function

	// OpType is the type of the operation.
	OpType optypes.OpType

	// Inputs to the operation.
	Inputs []*Value

	// Attributes of the operation, one of the types defined in package types. It is nil for the return statement.
	Attributes relaxAttributes

	// Outputs of the operation. It is nil for the return statement.
	Outputs []*Value
}

// Write writes a string representation of the statement to the given writer.
func (s *Statement) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}

	w("%s", indentation)
	if s.OpType == optypes.FuncReturn {
		w("return ")
		if len(s.Inputs) > 1 {
			w("(")
		}
		for i, input := range s.Inputs {
			if i > 0 {
				w(", ")
			}
			we(input)
		}
		if len(s.Inputs) > 1 {
			w(")")
		}
		return err
	}

	// Output values, with their struct-info annotation:
	for i, output := range s.Outputs {
		if i > 0 {
			w(", ")
		}
		we(output)
		w(": %s", output.shape.ToRelax())
	}
	w(" = ")

	// Op name, arguments and attributes:
	w("%s(", s.OpType.ScriptName())
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		we(input)
	}
	if s.Attributes != nil {
		if attrs := s.Attributes.ToRelax(); attrs != "" {
			w(", %s", attrs)
		}
	}
	w(")")
	return err
}
