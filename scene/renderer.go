package scene

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// Lighting is an ambient term plus one directional light.
type Lighting struct {
	Ambient     float64
	Directional float64
	Direction   mgl64.Vec3 // points from the scene toward the light
}

// DefaultLighting is ambient 1.0 and a 1.2 directional light from (2,5,5).
func DefaultLighting() Lighting {
	return Lighting{Ambient: 1, Directional: 1.2, Direction: mgl64.Vec3{2, 5, 5}}
}

// Shade returns the brightness factor in [0,1] for a face normal. Faces are
// lit from either side.
func (l Lighting) Shade(normal mgl64.Vec3) float64 {
	total := l.Ambient + l.Directional
	if total <= 0 {
		return 0
	}
	ndl := 0.0
	if normal.Len() > 0 && l.Direction.Len() > 0 {
		ndl = math.Abs(normal.Dot(l.Direction.Normalize()))
	}
	return (l.Ambient + l.Directional*ndl) / total
}

// Renderer draws a model with flat shading and back-to-front sorting.
type Renderer struct {
	Lighting   Lighting
	Background color.Color

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderer() *Renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Renderer{
		Lighting:   DefaultLighting(),
		Background: colornames.Midnightblue,
		white:      white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

type drawTri struct {
	pts   [3][2]float32
	depth float64
	color color.RGBA
}

// Draw renders the model as seen through camera.
func (r *Renderer) Draw(screen *ebiten.Image, model *Model, camera *Camera) {
	if r == nil || screen == nil {
		return
	}
	if r.Background != nil {
		screen.Fill(r.Background)
	}
	if model == nil || camera == nil {
		return
	}

	tris := r.prepare(model.WorldTriangles(), camera)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, t := range tris {
		if len(r.vertices)+3 > math.MaxUint16 {
			r.flush(screen)
		}
		base := uint16(len(r.vertices))
		rf, gf, bf, af := float32(t.color.R)/255, float32(t.color.G)/255, float32(t.color.B)/255, float32(t.color.A)/255
		for _, p := range t.pts {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX: p[0], DstY: p[1],
				SrcX: 1, SrcY: 1,
				ColorR: rf * af, ColorG: gf * af, ColorB: bf * af, ColorA: af,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2)
	}
	r.flush(screen)
}

func (r *Renderer) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(r.vertices, r.indices, r.white, op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// prepare projects, shades and sorts triangles farthest first. Triangles
// crossing the near plane are skipped.
func (r *Renderer) prepare(world []WorldTriangle, camera *Camera) []drawTri {
	out := make([]drawTri, 0, len(world))
	for _, wt := range world {
		var dt drawTri
		visible := true
		for i, v := range wt.V {
			x, y, depth, ok := camera.Project(v)
			if !ok {
				visible = false
				break
			}
			dt.pts[i] = [2]float32{float32(x), float32(y)}
			dt.depth += depth / 3
		}
		if !visible {
			continue
		}
		dt.color = shadeColor(wt.Color, r.Lighting.Shade(wt.Normal))
		out = append(out, dt)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	return out
}

func shadeColor(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Round(math.Min(255, float64(v)*f)))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
