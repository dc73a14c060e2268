package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const boundsPad = 1e-4

// Raycaster answers whether a pointer in normalized device coordinates is
// over any mesh of the model. Screen-space bounds of each mesh node go into a
// chipmunk space for the broadphase; candidates are then tested triangle by
// triangle against the camera ray.
type Raycaster struct {
	camera *Camera
	model  *Model
	space  *cp.Space
	shapes []*cp.Shape
}

func NewRaycaster(camera *Camera, model *Model) *Raycaster {
	return &Raycaster{camera: camera, model: model, space: cp.NewSpace()}
}

// PointerOverModel reports whether the ray through ndc hits the model.
func (r *Raycaster) PointerOverModel(ndc mgl64.Vec2) bool {
	_, ok := r.Pick(ndc)
	return ok
}

// Pick returns the name of the nearest node hit by the ray through ndc.
func (r *Raycaster) Pick(ndc mgl64.Vec2) (string, bool) {
	if r == nil || r.camera == nil || r.model == nil {
		return "", false
	}
	tris := r.model.WorldTriangles()
	if len(tris) == 0 {
		return "", false
	}
	origin, dir, ok := r.camera.Ray(ndc)
	if !ok {
		return "", false
	}

	groups := groupByNode(tris)
	candidates := r.broadphase(groups, ndc)

	best := math.Inf(1)
	hit := ""
	for _, name := range candidates {
		for _, tri := range groups[name] {
			if d, ok := intersectTriangle(origin, dir, tri.V); ok && d < best {
				best = d
				hit = name
			}
		}
	}
	return hit, hit != ""
}

func groupByNode(tris []WorldTriangle) map[string][]WorldTriangle {
	groups := make(map[string][]WorldTriangle)
	for _, t := range tris {
		groups[t.Node] = append(groups[t.Node], t)
	}
	return groups
}

// broadphase rebuilds the static screen-space boxes and returns the nodes
// whose box contains ndc. Nodes with vertices behind the camera cannot be
// bounded on screen and are always candidates.
func (r *Raycaster) broadphase(groups map[string][]WorldTriangle, ndc mgl64.Vec2) []string {
	for _, s := range r.shapes {
		r.space.RemoveShape(s)
	}
	r.shapes = r.shapes[:0]

	var candidates []string
	for name, tris := range groups {
		bb, ok := r.screenBounds(tris)
		if !ok {
			candidates = append(candidates, name)
			continue
		}
		shape := cp.NewBox2(r.space.StaticBody, bb, 0)
		shape.UserData = name
		r.space.AddShape(shape)
		r.shapes = append(r.shapes, shape)
	}

	point := cp.Vector{X: ndc[0], Y: ndc[1]}
	r.space.PointQuery(point, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
		if name, ok := shape.UserData.(string); ok {
			candidates = append(candidates, name)
		}
	}, nil)
	return candidates
}

func (r *Raycaster) screenBounds(tris []WorldTriangle) (cp.BB, bool) {
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, t := range tris {
		for _, v := range t.V {
			p, ok := r.camera.ProjectNDC(v)
			if !ok {
				return cp.BB{}, false
			}
			bb.L = math.Min(bb.L, p[0])
			bb.R = math.Max(bb.R, p[0])
			bb.B = math.Min(bb.B, p[1])
			bb.T = math.Max(bb.T, p[1])
		}
	}
	bb.L -= boundsPad
	bb.B -= boundsPad
	bb.R += boundsPad
	bb.T += boundsPad
	return bb, true
}

// intersectTriangle is the Möller–Trumbore test. It returns the distance along
// dir to the hit. Both faces count.
func intersectTriangle(origin, dir mgl64.Vec3, v [3]mgl64.Vec3) (float64, bool) {
	const eps = 1e-9
	e1 := v[1].Sub(v[0])
	e2 := v[2].Sub(v[0])
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(v[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	w := dir.Dot(q) * inv
	if w < 0 || u+w > 1 {
		return 0, false
	}
	d := e2.Dot(q) * inv
	if d < eps {
		return 0, false
	}
	return d, true
}
