package input

// AdapterBuilderOption is a function that configures an adapter during construction.
type AdapterBuilderOption func(*adapterImpl)

// WithCamera sets the camera whose aspect ratio follows the viewport.
//
// Parameters:
//   - cam: the aspect receiver
//
// Returns:
//   - AdapterBuilderOption: a function that applies the camera option to an adapter
func WithCamera(cam AspectSetter) AdapterBuilderOption {
	return func(a *adapterImpl) {
		a.camera = cam
	}
}

// WithSurface sets the render surface resized along with the viewport.
//
// Parameters:
//   - surface: the surface resizer
//
// Returns:
//   - AdapterBuilderOption: a function that applies the surface option to an adapter
func WithSurface(surface SurfaceResizer) AdapterBuilderOption {
	return func(a *adapterImpl) {
		a.surface = surface
	}
}
