package common

import "github.com/go-gl/mathgl/mgl64"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVec3 interpolates each component of a and b linearly.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep is the cubic ease t²(3−2t). Input outside [0,1] is clamped.
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}
