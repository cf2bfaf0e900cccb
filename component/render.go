package component

// RenderComponent marks an entity as a draw candidate
// Writes to its store feed the render change channel
type RenderComponent struct {
	Visible bool
}

// PositionComponent places an entity in virtual viewport space
// Z orders draws ascending; every renderable entity must carry one
type PositionComponent struct {
	X, Y float64
	Z    int
}
