package render

import (
	"fmt"

	"github.com/lixenwraith/flappy-term/component"
)

// FontTable maps font selectors to loaded fonts, injected at construction
type FontTable map[component.FontType]Font

// Lookup resolves a selector, returning a ResourceError when absent
func (t FontTable) Lookup(sel component.FontType) (Font, error) {
	f, ok := t[sel]
	if !ok || f == nil {
		return nil, fmt.Errorf("lookup font: %w", &ResourceError{Kind: "font", Selector: sel.String()})
	}
	return f, nil
}
