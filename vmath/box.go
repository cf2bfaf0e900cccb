package vmath

// Box is an axis-aligned rectangle with origin at its top-left corner
type Box struct {
	X, Y, W, H float64
}

// Overlaps reports whether the interiors intersect; touching edges do not count
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W &&
		b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
