package choreo

import "github.com/go-gl/mathgl/mgl64"

// HoverDetector reports whether a ray from the camera through a normalized
// device coordinate hits the model.
type HoverDetector interface {
	PointerOverModel(ndc mgl64.Vec2) bool
}

// PointerNDC converts a pointer position in viewport pixels to normalized
// device coordinates, x right and y up in [-1,1].
func PointerNDC(x, y float64, width, height int) mgl64.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		x/float64(width)*2 - 1,
		-(y/float64(height))*2 + 1,
	}
}
