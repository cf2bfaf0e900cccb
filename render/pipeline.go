package render

import (
	"fmt"
	"time"
)

// RenderContext is the per-frame state handed to every renderer
type RenderContext struct {
	Frame     uint64
	DeltaTime time.Duration
}

// SystemRenderer draws one layer of the frame onto s
// A returned error aborts the remaining layers
type SystemRenderer interface {
	Render(ctx RenderContext, s Surface) error
}

// VisibilityToggle lets a renderer opt out of frames while hidden
type VisibilityToggle interface {
	IsVisible() bool
}

// RenderPriority is a layer slot; lower slots draw first and ties keep registration order
// Slots are spaced so callers can wedge a layer between two named ones
type RenderPriority int

const (
	PriorityBackdrop RenderPriority = iota * 10
	PriorityEntities
	PriorityHUD
	PriorityDebug
)

func (p RenderPriority) String() string {
	switch p {
	case PriorityBackdrop:
		return "backdrop"
	case PriorityEntities:
		return "entities"
	case PriorityHUD:
		return "hud"
	case PriorityDebug:
		return "debug"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}
