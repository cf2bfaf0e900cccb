// Package terminal implements the render core's drawing surface on tcell.
//
// Features:
//   - Virtual viewport scaled onto the terminal cell grid, recomputed on resize
//   - Sprites drawn as background-colored cells with pivot rotation
//   - Batched text queue flushed once per frame with cached cell styles
//   - Cell fonts measured with go-runewidth so wide runes align
//
// The package owns no game state; it only turns draw calls into cells.
package terminal
