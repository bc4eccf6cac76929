package structinfo

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/gomlx/structinfo/internal/utils"
	"github.com/gomlx/structinfo/types/vdevice"
	"github.com/pkg/errors"
)

// Builder is used to construct a program (or "module") of tensor operations.
// See details in New.
type Builder struct {
	name string

	// functions holds all the functions created in the builder's scope.
	functions []*Function

	// devices the values of the program can be placed on.
	devices []*vdevice.VDevice
}

// New creates a new Builder object holding a computation graph in construction.
//
// From a builder you can create functions.
// For each function you create operations (ops) one by one, until you defined the desired computation.
// The struct-info (shape, dtype and device) of each operation's output is inferred as it is created.
//
// You have to define the "main" function for your program: you can use Builder.Main to do so, or
// Builder.NewFunction("main"), it's the same.
//
// Once you are all set, call Builder.Build and it will return the program as a readable text.
func New(name string) *Builder {
	return &Builder{
		name: name,
	}
}

// elementWriter represents elements of the program that know how to write themselves.
type elementWriter interface {
	Write(w io.Writer, indentation string) error
}

// NewFunction creates a new function and adds it to the program.
//
// The function name must be unique in the program.
//
// The inputs are added by calling Function.Input or Function.NamedInput, and the
// function body is defined by calling ops on the function object.
//
// See Function.
func (b *Builder) NewFunction(name string) *Function {
	fn := &Function{
		Builder: b,
		Name:    name,
	}
	b.functions = append(b.functions, fn)
	return fn
}

// MainFunctionName is the name of the entry point of the program.
const MainFunctionName = "main"

// Main creates the main function of the program.
// It is an alias to Builder.NewFunction("main").
//
// Every program must have a main function.
func (b *Builder) Main() *Function {
	return b.NewFunction(MainFunctionName)
}

// Functions returns the functions of the program, in the order they were created.
func (b *Builder) Functions() []*Function {
	return slices.Clone(b.functions)
}

// IndentationStep is the indentation added for each nested block of the rendered program.
const IndentationStep = "    "

// WithDevices declares the virtual devices the values of the program can be placed on.
//
// If devices are declared, Build checks that every input is placed on one of them (or on no device).
// They are rendered as the module's global infos.
func (b *Builder) WithDevices(devices ...*vdevice.VDevice) *Builder {
	b.devices = devices
	return b
}

// Devices returns the devices configured with WithDevices.
func (b *Builder) Devices() []*vdevice.VDevice {
	return b.devices
}

// Write the program (a readable string) to the given writer.
//
// It will write incomplete programs (without a main function or without return statements) without an error
// to help debugging.
//
// See Builder.Build to check and output the program.
func (b *Builder) Write(writer io.Writer) error {
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

	// Write module header
	w("# module: %s\n", NormalizeIdentifier(b.name))
	if len(b.devices) > 0 {
		w("I.module_global_infos({\"vdevice\": [")
		for i, device := range b.devices {
			if i > 0 {
				w(", ")
			}
			w("I.vdevice(%q, %d, %q)", device.Kind(), device.ID(), device.MemoryScope())
		}
		w("]})\n")
	}

	for _, fn := range b.functions {
		w("\n")
		we(fn, "")
	}
	return err
}

// Build checks the validity and builds the program.
//
// If you want the output of an incomplete program (without the checking), use Builder.Write instead.
func (b *Builder) Build() ([]byte, error) {
	hasMain := false
	names := utils.MakeSet[string](len(b.functions))
	for _, fn := range b.functions {
		if fn.Name == MainFunctionName {
			hasMain = true
		}
		if names.Has(fn.Name) {
			return nil, errors.Errorf("duplicate function name %q", fn.Name)
		}
		names.Insert(fn.Name)
		if !fn.Returned {
			return nil, errors.Errorf("function %q has no return statement", fn.Name)
		}
		if err := b.checkInputs(fn); err != nil {
			return nil, err
		}
	}
	if !hasMain {
		return nil, errors.New("program must have a main function")
	}

	var buf bytes.Buffer
	err := b.Write(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// checkInputs checks that the inputs of fn have unique names and are placed on declared devices.
func (b *Builder) checkInputs(fn *Function) error {
	names := utils.MakeSet[string](len(fn.Inputs))
	for _, input := range fn.Inputs {
		if names.Has(input.name) {
			return errors.Errorf("function %q has duplicate input name %q", fn.Name, input.name)
		}
		names.Insert(input.name)
		device := input.shape.Device
		if device == nil || len(b.devices) == 0 {
			continue
		}
		if !slices.ContainsFunc(b.devices, device.Equal) {
			return errors.Errorf("function %q input %q is placed on device %s, which was not declared with Builder.WithDevices",
				fn.Name, input.name, device)
		}
	}
	return nil
}
