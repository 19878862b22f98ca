package animation

// Clock accumulates elapsed seconds. It is advanced once per frame and never runs backwards.
type Clock struct {
	elapsed float64
}

// Advance adds dt seconds. Negative, NaN and infinite steps are ignored.
//
// Parameters:
//   - dt: the frame duration in seconds
//
// Returns:
//   - float32: the elapsed time after advancing
func (c *Clock) Advance(dt float64) float32 {
	if dt > 0 && dt < maxStep {
		c.elapsed += dt
	}
	return float32(c.elapsed)
}

// Elapsed returns the accumulated seconds.
func (c *Clock) Elapsed() float32 {
	return float32(c.elapsed)
}

// Reset returns the clock to zero.
func (c *Clock) Reset() {
	c.elapsed = 0
}

// maxStep bounds a single advance so a stalled host does not fast-forward the scene.
const maxStep = 1.0
