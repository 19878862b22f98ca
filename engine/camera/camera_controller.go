package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the camera's positional state (position, target).
// Camera reads from the controller and computes view/projection matrices.
//
// The backdrop controller keeps the camera near a rest position and drifts it with the pointer,
// always re-aiming at a fixed look-at point, so the scene reads as a shallow parallax diorama.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// Rest returns the position the camera returns to when the pointer is centered.
	//
	// Returns:
	//   - mgl32.Vec3: the rest position
	Rest() mgl32.Vec3

	// Parallax returns the world-space drift per unit of pointer deflection on x and y.
	//
	// Returns:
	//   - mgl32.Vec2: the parallax amount per axis
	Parallax() mgl32.Vec2

	// Follow moves the camera to rest + (px * Parallax.x, py * Parallax.y, 0) and keeps it aimed at the target.
	// The result is an absolute function of the pointer, so repeated calls with the same pointer are stable.
	//
	// Parameters:
	//   - pointer: the normalized pointer in [-1, 1]²
	Follow(pointer mgl32.Vec2)

	// Reset returns the camera to its rest position.
	Reset()
}
