// Package vdevice defines the virtual device a tensor is placed on.
//
// The device is a tag carried by a tensor's shape: shape inference never computes it, it only
// propagates the operand's device to the outputs.
package vdevice

import (
	"fmt"

	"github.com/gomlx/structinfo/internal/utils"
	"github.com/pkg/errors"
)

// GlobalScope is the default memory scope of a device.
const GlobalScope = "global"

// VDevice identifies a virtual device: a target kind (e.g.: "cuda", "llvm"), a device number and
// the memory scope where tensors are stored.
//
// VDevice objects are immutable, and shapes share pointers to them.
type VDevice struct {
	kind        string
	id          int
	memoryScope string
}

// New creates a new virtual device.
//
//   - kind: the target kind, it must be a valid identifier (see utils.NormalizeIdentifier), e.g. "cuda".
//   - id: the device number within the kind, it must be >= 0.
//   - memoryScope: where the tensors are stored. If empty, GlobalScope is used.
func New(kind string, id int, memoryScope string) (*VDevice, error) {
	if !utils.IsIdentifier(kind) {
		return nil, errors.Errorf("VDevice kind %q is not a valid identifier, suggestion %q",
			kind, utils.NormalizeIdentifier(kind))
	}
	if id < 0 {
		return nil, errors.Errorf("VDevice id must be >= 0, got %d for kind %q", id, kind)
	}
	if memoryScope == "" {
		memoryScope = GlobalScope
	}
	if !utils.IsIdentifier(memoryScope) {
		return nil, errors.Errorf("VDevice memory scope %q is not a valid identifier, suggestion %q",
			memoryScope, utils.NormalizeIdentifier(memoryScope))
	}
	return &VDevice{kind: kind, id: id, memoryScope: memoryScope}, nil
}

// Kind returns the target kind of the device.
func (d *VDevice) Kind() string { return d.kind }

// ID returns the device number.
func (d *VDevice) ID() int { return d.id }

// MemoryScope returns the memory scope of the device.
func (d *VDevice) MemoryScope() string { return d.memoryScope }

// Equal returns whether both devices are the same. Two nil devices are equal.
func (d *VDevice) Equal(d2 *VDevice) bool {
	if d == nil || d2 == nil {
		return d == d2
	}
	return *d == *d2
}

// String implements fmt.Stringer. E.g.: "cuda:0", or "cuda:1:shared" for a non-global memory scope.
func (d *VDevice) String() string {
	if d == nil {
		return "<nil>"
	}
	if d.memoryScope == GlobalScope {
		return fmt.Sprintf("%s:%d", d.kind, d.id)
	}
	return fmt.Sprintf("%s:%d:%s", d.kind, d.id, d.memoryScope)
}
