package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is three vertices in the owning node's local space.
type Triangle [3]mgl64.Vec3

// Mesh is a flat-colored triangle soup.
type Mesh struct {
	Triangles []Triangle
	Color     color.RGBA
}

// Node is one element of the model hierarchy. Rotation is XYZ Euler radians.
type Node struct {
	Name        string
	Translation mgl64.Vec3
	Rotation    mgl64.Vec3
	Scale       mgl64.Vec3
	Mesh        *Mesh
	Children    []*Node
}

// NewNode creates a node with unit scale.
func NewNode(name string) *Node {
	return &Node{Name: name, Scale: mgl64.Vec3{1, 1, 1}}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Local returns the node's transform relative to its parent.
func (n *Node) Local() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])
	r := mgl64.HomogRotate3DZ(n.Rotation[2]).
		Mul4(mgl64.HomogRotate3DY(n.Rotation[1])).
		Mul4(mgl64.HomogRotate3DX(n.Rotation[0]))
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// WorldTriangle is a mesh triangle transformed into world space.
type WorldTriangle struct {
	V      [3]mgl64.Vec3
	Normal mgl64.Vec3
	Color  color.RGBA
	Node   string
}

// Model is a node hierarchy with its animation clips.
type Model struct {
	Name  string
	Root  *Node
	Clips map[string]*Clip

	nodes map[string]*Node
}

// NewModel indexes the hierarchy under root by node name. The first node
// with a given name wins.
func NewModel(name string, root *Node, clips ...*Clip) *Model {
	m := &Model{
		Name:  name,
		Root:  root,
		Clips: make(map[string]*Clip, len(clips)),
		nodes: make(map[string]*Node),
	}
	for _, c := range clips {
		if c != nil {
			m.Clips[c.Name] = c
		}
	}
	m.index(root)
	return m
}

func (m *Model) index(n *Node) {
	if n == nil {
		return
	}
	if _, ok := m.nodes[n.Name]; !ok && n.Name != "" {
		m.nodes[n.Name] = n
	}
	for _, c := range n.Children {
		m.index(c)
	}
}

// Node returns the named node.
func (m *Model) Node(name string) (*Node, bool) {
	if m == nil {
		return nil, false
	}
	n, ok := m.nodes[name]
	return n, ok
}

// Walk visits every node depth first with its world transform.
func (m *Model) Walk(fn func(n *Node, world mgl64.Mat4)) {
	if m == nil || m.Root == nil {
		return
	}
	walk(m.Root, mgl64.Ident4(), fn)
}

func walk(n *Node, parent mgl64.Mat4, fn func(*Node, mgl64.Mat4)) {
	world := parent.Mul4(n.Local())
	fn(n, world)
	for _, c := range n.Children {
		walk(c, world, fn)
	}
}

// WorldTriangles returns every mesh triangle under the root in world space.
func (m *Model) WorldTriangles() []WorldTriangle {
	var out []WorldTriangle
	m.Walk(func(n *Node, world mgl64.Mat4) {
		if n.Mesh == nil {
			return
		}
		for _, tri := range n.Mesh.Triangles {
			var wt WorldTriangle
			for i, v := range tri {
				wt.V[i] = mgl64.TransformCoordinate(v, world)
			}
			wt.Normal = faceNormal(wt.V)
			wt.Color = n.Mesh.Color
			wt.Node = n.Name
			out = append(out, wt)
		}
	})
	return out
}

// NodeBounds returns the world-space bounds of the named node's subtree.
func (m *Model) NodeBounds(name string) (lo, hi mgl64.Vec3, ok bool) {
	n, found := m.Node(name)
	if !found {
		return lo, hi, false
	}
	var world mgl64.Mat4
	located := false
	m.Walk(func(visit *Node, w mgl64.Mat4) {
		if visit == n && !located {
			world = w
			located = true
		}
	})
	if !located {
		return lo, hi, false
	}
	return subtreeBounds(n, world)
}

// NodeCenter returns the center of the named node's world-space bounds.
func (m *Model) NodeCenter(name string) (mgl64.Vec3, bool) {
	lo, hi, ok := m.NodeBounds(name)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return lo.Add(hi).Mul(0.5), true
}

// Bounds returns the world-space bounds of the whole model.
func (m *Model) Bounds() (lo, hi mgl64.Vec3, ok bool) {
	if m == nil || m.Root == nil {
		return lo, hi, false
	}
	return subtreeBounds(m.Root, m.Root.Local())
}

func subtreeBounds(n *Node, world mgl64.Mat4) (lo, hi mgl64.Vec3, ok bool) {
	lo = mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	var visit func(n *Node, w mgl64.Mat4)
	visit = func(n *Node, w mgl64.Mat4) {
		if n.Mesh != nil {
			for _, tri := range n.Mesh.Triangles {
				for _, v := range tri {
					p := mgl64.TransformCoordinate(v, w)
					for i := 0; i < 3; i++ {
						lo[i] = math.Min(lo[i], p[i])
						hi[i] = math.Max(hi[i], p[i])
					}
					ok = true
				}
			}
		}
		for _, c := range n.Children {
			visit(c, w.Mul4(c.Local()))
		}
	}
	visit(n, world)
	if !ok {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return lo, hi, true
}

func faceNormal(v [3]mgl64.Vec3) mgl64.Vec3 {
	n := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// Box returns the twelve triangles of an axis-aligned box centered at center.
func Box(center, size mgl64.Vec3) []Triangle {
	h := size.Mul(0.5)
	c := func(sx, sy, sz float64) mgl64.Vec3 {
		return mgl64.Vec3{center[0] + sx*h[0], center[1] + sy*h[1], center[2] + sz*h[2]}
	}
	quads := [][4]mgl64.Vec3{
		{c(-1, -1, 1), c(1, -1, 1), c(1, 1, 1), c(-1, 1, 1)},     // +z
		{c(1, -1, -1), c(-1, -1, -1), c(-1, 1, -1), c(1, 1, -1)}, // -z
		{c(1, -1, 1), c(1, -1, -1), c(1, 1, -1), c(1, 1, 1)},     // +x
		{c(-1, -1, -1), c(-1, -1, 1), c(-1, 1, 1), c(-1, 1, -1)}, // -x
		{c(-1, 1, 1), c(1, 1, 1), c(1, 1, -1), c(-1, 1, -1)},     // +y
		{c(-1, -1, -1), c(1, -1, -1), c(1, -1, 1), c(-1, -1, 1)}, // -y
	}
	out := make([]Triangle, 0, 12)
	for _, q := range quads {
		out = append(out, Quad(q)...)
	}
	return out
}

// Quad splits a counter-clockwise quad into two triangles.
func Quad(q [4]mgl64.Vec3) []Triangle {
	return []Triangle{{q[0], q[1], q[2]}, {q[0], q[2], q[3]}}
}
