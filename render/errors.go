package render

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/flappy-term/core"
)

// ErrResource matches every ResourceError via errors.Is
var ErrResource = errors.New("render: resource unavailable")

// ResourceError reports an external resource the frame could not resolve
// Recoverable: the frame driver decides whether to skip the frame or exit
type ResourceError struct {
	Kind     string
	Selector string
	Entity   core.Entity
}

func (e *ResourceError) Error() string {
	if e.Entity != core.NoEntity {
		return fmt.Sprintf("render: %s %q unavailable for entity %d", e.Kind, e.Selector, e.Entity)
	}
	return fmt.Sprintf("render: %s %q unavailable", e.Kind, e.Selector)
}

// Is lets errors.Is(err, ErrResource) match
func (e *ResourceError) Is(target error) bool {
	return target == ErrResource
}

// InvariantViolation is a data-model corruption detected by the render core
// It is raised with panic, never returned
type InvariantViolation struct {
	Entity core.Entity
	Reason string
}

func (v *InvariantViolation) Error() string {
	return fmt.Sprintf("render: invariant violated for entity %d: %s", v.Entity, v.Reason)
}
