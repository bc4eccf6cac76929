// Package structinfo builds Relax-like programs of tensor reductions and scans, inferring the
// struct-info (rank, shape, dtype and device) of every value as the program is built.
//
// Among its features:
//
// - Shape inference for the statistical operations (Sum, Mean, Max, Min, Prod, Std, Variance) and
// CumSum, with symbolic dimensions and partially known shapes (see package shapeinference).
// - Layout conversion: Function.ConvertLayout rewrites a function to work on tensors stored in
// permuted physical layouts (see package layoutinference).
// - Renders the program as human-readable TVMScript-like text.
// - Written purely in Go, no C/C++ external dependencies.
package structinfo

import "github.com/gomlx/structinfo/internal/utils"

// Generates the statistical operations methods automatically.
//go:generate go run ./internal/cmd/ops_generator

// NormalizeIdentifier converts the name of an identifier (function name or function input parameter
// name, etc.) to a valid one: only letters, digits, and underscores are allowed.
//
// Invalid characters are replaced with underscores.
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	return utils.NormalizeIdentifier(name)
}
