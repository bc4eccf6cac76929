package structinfo

import (
	"context"
	"runtime"
	"slices"

	"github.com/gomlx/structinfo/internal/optypes"
	"github.com/gomlx/structinfo/layoutinference"
	"github.com/gomlx/structinfo/shapeinference"
	"github.com/gomlx/structinfo/types"
	"github.com/gomlx/structinfo/types/layout"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// ConvertLayoutConfig configures Function.ConvertLayout.
type ConvertLayoutConfig struct {
	// InputLayouts maps function input names to the physical layout they are stored in.
	// Inputs not listed are in the initial layout.
	InputLayouts map[string]layout.Layout

	// DesiredLayouts maps Relax operation names (e.g.: "relax.sum") to the layouts requested for them.
	// Statistical operations only propagate the layout of their operand, so requesting a layout for them fails.
	DesiredLayouts map[string][]layout.Layout

	// Parallelism is the maximum number of statements whose layout is decided concurrently.
	// If <= 0, there is no limit.
	Parallelism int
}

// DefaultConvertLayoutConfig returns a configuration with all inputs in the initial layout,
// no desired layouts and the parallelism set to the number of CPUs.
func DefaultConvertLayoutConfig() ConvertLayoutConfig {
	return ConvertLayoutConfig{
		Parallelism: runtime.NumCPU(),
	}
}

// WithInputLayout returns a copy of the configuration, with the input with the given name stored in the given layout.
func (cfg ConvertLayoutConfig) WithInputLayout(inputName string, l layout.Layout) ConvertLayoutConfig {
	inputLayouts := make(map[string]layout.Layout, len(cfg.InputLayouts)+1)
	for name, inputLayout := range cfg.InputLayouts {
		inputLayouts[name] = inputLayout
	}
	inputLayouts[inputName] = l.Clone()
	cfg.InputLayouts = inputLayouts
	return cfg
}

// layoutDecision is the plan for one statement of the function being converted.
type layoutDecision struct {
	// attrs to use in the converted statement.
	attrs relaxAttributes

	// outputLayout of the converted statement. If nil, the output is in the initial layout.
	outputLayout layout.Layout

	// restoreOperand is set if the operand must be permuted back to the initial layout before the statement.
	restoreOperand bool
}

// ConvertLayout returns a new function, named "<fn.Name>_layout", computing the same outputs as fn, but with the
// tensors flowing in their physical layouts.
//
// Inputs stored in a non-initial layout (see ConvertLayoutConfig.InputLayouts) are permuted to their physical
// layout at the start of the function. Statistical operations then work directly on the physical axes, and their
// outputs carry the propagated layout (see Value.Layout). Operations that can't work on a permuted operand
// get their operand permuted back to the initial layout first. Returned values are permuted back to the
// initial layout, so the new function has the same output shapes as fn.
//
// The function fn must have returned already, and it is not changed. It can only be converted once:
// it fails if the program already has a function named "<fn.Name>_layout".
func (fn *Function) ConvertLayout(ctx context.Context, cfg ConvertLayoutConfig) (*Function, error) {
	if !fn.Returned {
		return nil, errors.Wrapf(shapeinference.ErrInvalidConfiguration,
			"ConvertLayout requires function %q to be complete (Function.Return called)", fn.Name)
	}
	convertedName := fn.Name + "_layout"
	if slices.ContainsFunc(fn.Builder.functions, func(other *Function) bool { return other.Name == convertedName }) {
		return nil, errors.Wrapf(shapeinference.ErrInvalidConfiguration,
			"ConvertLayout of function %q: the program already has a function named %q", fn.Name, convertedName)
	}
	layouts, err := fn.inputLayouts(cfg)
	if err != nil {
		return nil, err
	}
	decisions, err := fn.planLayouts(ctx, cfg, layouts)
	if err != nil {
		return nil, err
	}
	return fn.emitConverted(convertedName, layouts, decisions)
}

// inputLayouts validates the configured input layouts and returns the initial layout map.
func (fn *Function) inputLayouts(cfg ConvertLayoutConfig) (map[*Value]layout.Layout, error) {
	layouts := make(map[*Value]layout.Layout, len(fn.values))
	inputsByName := make(map[string]*Value, len(fn.Inputs))
	for _, input := range fn.Inputs {
		inputsByName[input.name] = input
	}
	for name, inputLayout := range cfg.InputLayouts {
		input, found := inputsByName[name]
		if !found {
			return nil, errors.Wrapf(shapeinference.ErrInvalidConfiguration,
				"ConvertLayout given a layout for input %q, but function %q has no such input", name, fn.Name)
		}
		if inputLayout.IsInitial() && !input.shape.IsUnknownRank() && inputLayout.Rank() == input.shape.Rank() {
			continue
		}
		if input.shape.IsUnknownRank() {
			return nil, errors.Wrapf(shapeinference.ErrUnknownRankUnsupported,
				"ConvertLayout given layout %s for input %q, but its rank is unknown", inputLayout, name)
		}
		if inputLayout.Rank() != input.shape.Rank() {
			return nil, errors.Wrapf(shapeinference.ErrInvalidConfiguration,
				"ConvertLayout given layout %s for input %q of rank %d", inputLayout, name, input.shape.Rank())
		}
		if err := inputLayout.Validate(); err != nil {
			return nil, errors.Wrapf(shapeinference.ErrInvalidConfiguration,
				"ConvertLayout given an invalid layout for input %q: %v", name, err)
		}
		layouts[input] = inputLayout.Clone()
	}
	return layouts, nil
}

// statementWaves groups the statements (except the return) by dependency wave: a statement's wave is one more
// than the latest wave of its operands, and inputs are in wave 0.
// Statements of a wave only depend on values of earlier waves.
func (fn *Function) statementWaves() [][]*Statement {
	valueWave := make(map[*Value]int, len(fn.values))
	var waves [][]*Statement
	for _, stmt := range fn.Statements {
		if stmt.OpType == optypes.FuncReturn {
			continue
		}
		wave := 0
		for _, input := range stmt.Inputs {
			wave = max(wave, valueWave[input]+1)
		}
		for _, output := range stmt.Outputs {
			valueWave[output] = wave
		}
		for len(waves) < wave {
			waves = append(waves, nil)
		}
		waves[wave-1] = append(waves[wave-1], stmt)
	}
	return waves
}

// planLayouts decides the layout of every statement, one dependency wave at a time.
//
// The statements of a wave are decided concurrently, reading the layouts map, which is only updated
// (by this goroutine) after the whole wave is decided.
func (fn *Function) planLayouts(ctx context.Context, cfg ConvertLayoutConfig,
	layouts map[*Value]layout.Layout) (map[*Statement]layoutDecision, error) {
	decisions := make(map[*Statement]layoutDecision, len(fn.Statements))
	for waveIdx, wave := range fn.statementWaves() {
		waveDecisions := make([]layoutDecision, len(wave))
		g, gCtx := errgroup.WithContext(ctx)
		if cfg.Parallelism > 0 {
			g.SetLimit(cfg.Parallelism)
		}
		for i, stmt := range wave {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				var err error
				waveDecisions[i], err = planStatement(stmt, cfg, layouts)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, errors.WithMessagef(err, "ConvertLayout of function %q", fn.Name)
		}

		// Merge decisions of the wave.
		for i, stmt := range wave {
			decision := waveDecisions[i]
			decisions[stmt] = decision
			if decision.outputLayout != nil && !decision.outputLayout.IsInitial() {
				layouts[stmt.Outputs[0]] = decision.outputLayout
			}
		}
		klog.V(2).Infof("ConvertLayout(%q): wave #%d decided %d statements", fn.Name, waveIdx, len(wave))
	}
	return decisions, nil
}

// planStatement decides the layout of one statement, given the layouts of the values already decided.
// It only reads layouts.
func planStatement(stmt *Statement, cfg ConvertLayoutConfig, layouts map[*Value]layout.Layout) (layoutDecision, error) {
	op := stmt.OpType
	operand := stmt.Inputs[0]
	current := layouts[operand]
	if !op.IsStatistical() {
		// No layout rule: the operation works on the initial layout.
		return layoutDecision{
			attrs:          stmt.Attributes,
			restoreOperand: current != nil,
		}, nil
	}

	attrs, ok := stmt.Attributes.(types.StatisticalAttrs)
	if !ok {
		return layoutDecision{}, errors.Wrapf(shapeinference.ErrInternal,
			"statement %s has attributes of type %T", op, stmt.Attributes)
	}
	result, err := layoutinference.Statistical(operand.shape, attrs, cfg.DesiredLayouts[op.ToRelax()], current)
	if err != nil {
		return layoutDecision{}, errors.WithMessagef(err, "%s(%s)", op, operand)
	}
	return layoutDecision{
		attrs:        result.Attrs,
		outputLayout: result.OutputLayout,
	}, nil
}

// emitConverted creates the converted function following the decisions.
func (fn *Function) emitConverted(name string, layouts map[*Value]layout.Layout,
	decisions map[*Statement]layoutDecision) (*Function, error) {
	newFn := fn.Builder.NewFunction(name)

	// converted maps values of fn to the corresponding values of newFn.
	converted := make(map[*Value]*Value, len(fn.values))
	for _, input := range fn.Inputs {
		newInput := newFn.NamedInput(input.name, input.shape)
		converted[input] = newInput
		if inputLayout, found := layouts[input]; found {
			physical, err := newFn.PermuteDims(newInput, inputLayout...)
			if err != nil {
				return nil, errors.WithMessagef(err, "ConvertLayout of input %q", input.name)
			}
			physical.layout = inputLayout
			converted[input] = physical
			klog.V(1).Infof("ConvertLayout(%q): input %q stored in layout %s", fn.Name, input.name, inputLayout)
		}
	}

	for _, stmt := range fn.Statements {
		if stmt.OpType == optypes.FuncReturn {
			outputs := make([]*Value, len(stmt.Inputs))
			for i, output := range stmt.Inputs {
				var err error
				outputs[i], err = newFn.restoreInitialLayout(converted[output])
				if err != nil {
					return nil, errors.WithMessagef(err, "ConvertLayout of output #%d", i)
				}
			}
			if err := newFn.Return(outputs[0], outputs[1:]...); err != nil {
				return nil, err
			}
			continue
		}

		decision := decisions[stmt]
		x := converted[stmt.Inputs[0]]
		if decision.restoreOperand {
			var err error
			x, err = newFn.restoreInitialLayout(x)
			if err != nil {
				return nil, errors.WithMessagef(err, "ConvertLayout of %s operand", stmt.OpType)
			}
		}
		output, err := newFn.emitStatement(stmt.OpType, x, decision.attrs)
		if err != nil {
			return nil, errors.WithMessagef(err, "ConvertLayout of statement %s", stmt.OpType)
		}
		if decision.outputLayout != nil && !decision.outputLayout.IsInitial() {
			output.layout = decision.outputLayout
		}
		converted[stmt.Outputs[0]] = output
		klog.V(1).Infof("ConvertLayout(%q): %s(%s) -> %s: attributes (%s), output layout %s",
			fn.Name, stmt.OpType, x, output, decision.attrs.ToRelax(), output.Layout())
	}
	return newFn, nil
}

// emitStatement adds the operation op with the given attributes to the function.
func (fn *Function) emitStatement(op optypes.OpType, x *Value, attrs relaxAttributes) (*Value, error) {
	switch attrs := attrs.(type) {
	case types.StatisticalAttrs:
		return fn.statisticalOp(op, x, attrs)
	case types.CumSumAttrs:
		return fn.CumSum(x, attrs)
	case types.PermuteDimsAttrs:
		return fn.PermuteDims(x, attrs.Axes...)
	default:
		return nil, errors.Wrapf(shapeinference.ErrInternal, "operation %s has unknown attributes type %T", op, attrs)
	}
}

// restoreInitialLayout permutes x back to the initial layout, if it is not in the initial layout already.
func (fn *Function) restoreInitialLayout(x *Value) (*Value, error) {
	if x.layout == nil || x.layout.IsInitial() {
		return x, nil
	}
	return fn.PermuteDims(x, x.layout.Inverse()...)
}
