package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lidscene/common"
)

const (
	DefaultFOV  = 60
	DefaultNear = 0.1
	DefaultFar  = 1000
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Camera is a perspective camera placed by position and look-at point.
type Camera struct {
	position mgl64.Vec3
	lookAt   mgl64.Vec3
	forward  mgl64.Vec3

	fov  float64 // vertical, degrees
	near float64
	far  float64

	screenW int
	screenH int

	view  mgl64.Mat4
	proj  mgl64.Mat4
	dirty bool
}

// NewCamera creates a camera looking down -Z from the origin with the given
// viewport size.
func NewCamera(screenW, screenH int) *Camera {
	c := &Camera{
		forward: mgl64.Vec3{0, 0, -1},
		lookAt:  mgl64.Vec3{0, 0, -1},
		fov:     DefaultFOV,
		near:    DefaultNear,
		far:     DefaultFar,
		screenW: common.BaseWidth,
		screenH: common.BaseHeight,
		dirty:   true,
	}
	c.SetViewport(screenW, screenH)
	return c
}

// Place moves the camera and orients it toward lookAt. When lookAt coincides
// with position the orientation is left unchanged.
func (c *Camera) Place(position, lookAt mgl64.Vec3) {
	if c == nil {
		return
	}
	c.position = position
	dir := lookAt.Sub(position)
	if dir.Len() > 1e-9 {
		c.forward = dir.Normalize()
		c.lookAt = lookAt
	} else {
		c.lookAt = position.Add(c.forward)
	}
	c.dirty = true
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{0, 0, -1}
	}
	return c.forward
}

func (c *Camera) Position() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	return c.position
}

func (c *Camera) LookAt() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	return c.lookAt
}

// SetViewport updates the viewport size and with it the aspect ratio.
func (c *Camera) SetViewport(w, h int) {
	if c == nil || w <= 0 || h <= 0 {
		return
	}
	if c.screenW == w && c.screenH == h {
		return
	}
	c.screenW = w
	c.screenH = h
	c.dirty = true
}

func (c *Camera) Viewport() (int, int) {
	if c == nil {
		return 0, 0
	}
	return c.screenW, c.screenH
}

func (c *Camera) Aspect() float64 {
	if c == nil || c.screenH == 0 {
		return 1
	}
	return float64(c.screenW) / float64(c.screenH)
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(deg float64) {
	if c == nil || deg <= 0 || deg >= 180 {
		return
	}
	c.fov = deg
	c.dirty = true
}

func (c *Camera) View() mgl64.Mat4 {
	if c == nil {
		return mgl64.Ident4()
	}
	c.update()
	return c.view
}

func (c *Camera) Projection() mgl64.Mat4 {
	if c == nil {
		return mgl64.Ident4()
	}
	c.update()
	return c.proj
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	up := worldUp
	if math.Abs(c.forward.Dot(up)) > 0.9999 {
		up = mgl64.Vec3{0, 0, -1}
	}
	c.view = mgl64.LookAtV(c.position, c.position.Add(c.forward), up)
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.fov), c.Aspect(), c.near, c.far)
	c.dirty = false
}

// Project maps a world point to viewport pixels (y down). ok is false when the
// point is behind the near plane.
func (c *Camera) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	if c == nil {
		return 0, 0, 0, false
	}
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip[3] < c.near {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	x = (ndc[0] + 1) / 2 * float64(c.screenW)
	y = (1 - ndc[1]) / 2 * float64(c.screenH)
	return x, y, clip[3], true
}

// ProjectNDC maps a world point to normalized device coordinates.
func (c *Camera) ProjectNDC(p mgl64.Vec3) (mgl64.Vec2, bool) {
	x, y, _, ok := c.Project(p)
	if !ok {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{
		x/float64(c.screenW)*2 - 1,
		1 - y/float64(c.screenH)*2,
	}, true
}

// Ray returns the world-space ray from the camera through an NDC point.
func (c *Camera) Ray(ndc mgl64.Vec2) (origin, dir mgl64.Vec3, ok bool) {
	if c == nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	w, h := c.screenW, c.screenH
	win := mgl64.Vec3{(ndc[0] + 1) / 2 * float64(w), (ndc[1] + 1) / 2 * float64(h), 0}

	near, err := mgl64.UnProject(win, c.View(), c.Projection(), 0, 0, w, h)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	win[2] = 1
	far, err := mgl64.UnProject(win, c.View(), c.Projection(), 0, 0, w, h)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	d := far.Sub(near)
	if d.Len() == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return near, d.Normalize(), true
}
