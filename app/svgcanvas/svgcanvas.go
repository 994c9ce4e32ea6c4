// Package svgcanvas renders an editor as an SVG document. Its Surface records
// the edge layer pushed by core.Editor; Render writes that layer together with
// the nodes, their ports and the open menu.
package svgcanvas

import (
	"bufio"
	"fmt"
	"html"
	"io"

	svg "github.com/ajstarks/svgo"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/catalog"
	"github.com/bvisness/flowcanvas/app/core"
)

type Style struct {
	Background  string
	NodeFill    string
	NodeStroke  string
	Text        string
	EdgeStroke  string
	EdgeWidth   float32
	PortFill    string
	MenuFill    string
	DeleteFill  string
	PreviewDash string
}

func DefaultStyle() Style {
	return Style{
		Background:  "#2d2e2e",
		NodeFill:    "#414244",
		NodeStroke:  "#7d7d87",
		Text:        "#ffffff",
		EdgeStroke:  "#cfd8dc",
		EdgeWidth:   3,
		PortFill:    "#c3c9d5",
		MenuFill:    "#1f1f1f",
		DeleteFill:  "#ff6d5a",
		PreviewDash: "6 4",
	}
}

// Surface implements core.Surface by keeping what it is told to draw.
type Surface struct {
	Style Style

	edges      []core.RenderedEdge
	preview    *core.Bezier
	affordance *rl.Rectangle
}

var _ core.Surface = &Surface{}

func New(style Style) *Surface {
	return &Surface{Style: style}
}

func (s *Surface) Clear() {
	s.edges = s.edges[:0]
}

func (s *Surface) DrawEdge(e core.RenderedEdge) {
	s.edges = append(s.edges, e)
}

func (s *Surface) DrawPreview(curve *core.Bezier) {
	if curve == nil {
		s.preview = nil
		return
	}
	c := *curve
	s.preview = &c
}

func (s *Surface) DrawDeleteAffordance(r *rl.Rectangle) {
	if r == nil {
		s.affordance = nil
		return
	}
	rr := *r
	s.affordance = &rr
}

// Render writes the editor as a width x height SVG document. The camera is
// applied as a transform on the content group.
func (s *Surface) Render(w io.Writer, e *core.Editor, width, height int) error {
	buf := bufio.NewWriter(w)
	canvas := svg.New(buf)
	st := s.Style

	canvas.Start(width, height)
	canvas.Def()
	canvas.Marker("arrow", 10, 5, 10, 10, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
	canvas.Path("M 0 0 L 10 5 L 0 10 z", fmt.Sprintf("fill:%s", st.EdgeStroke))
	canvas.MarkerEnd()
	canvas.DefEnd()
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", st.Background))

	cam := e.Camera
	canvas.Group(`id="content"`, fmt.Sprintf(`transform="translate(%g %g) scale(%g)"`, cam.Pan.X, cam.Pan.Y, cam.Zoom))

	canvas.Gid("edges")
	for _, re := range s.edges {
		canvas.Path(re.Curve.PathData(),
			`class="edge"`,
			fmt.Sprintf(`data-index="%d"`, re.Index),
			attr("data-from", re.Conn.From),
			attr("data-to", re.Conn.To),
			`marker-end="url(#arrow)"`,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", st.EdgeStroke, st.EdgeWidth),
		)
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, n := range e.Nodes() {
		if n.Mounted {
			s.renderNode(canvas, n)
		}
	}
	canvas.Gend()

	if id, ok := e.OpenMenuNode(); ok {
		if n, ok := e.Node(id); ok && n.Mounted {
			s.renderMenu(canvas, n)
		}
	}

	if s.preview != nil {
		canvas.Path(s.preview.PathData(),
			`class="preview"`,
			`pointer-events="none"`,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-dasharray:%s", st.EdgeStroke, st.EdgeWidth, st.PreviewDash),
		)
	}

	if r := s.affordance; r != nil {
		x, y, size := int(r.X), int(r.Y), int(r.Width)
		canvas.Group(`class="delete-edge"`)
		canvas.Roundrect(x, y, size, size, 4, 4, fmt.Sprintf("fill:%s", st.DeleteFill))
		// Trash can: lid and bin.
		canvas.Line(x+6, y+7, x+size-6, y+7, fmt.Sprintf("stroke:%s;stroke-width:2", st.Text))
		canvas.Rect(x+8, y+9, size-16, size-14, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", st.Text))
		canvas.Gend()
	}

	canvas.Gend()
	canvas.End()
	return buf.Flush()
}

func (s *Surface) renderNode(canvas *svg.SVG, n *core.Node) {
	st := s.Style
	tmpl, _ := catalog.Lookup(n.Kind)
	body := n.Bounds()

	opacity := 1.0
	if n.Disabled {
		opacity = 0.5
	}
	canvas.Group(`class="node"`, attr("data-id", n.ID), attr("data-kind", n.Kind.String()), fmt.Sprintf("opacity:%g", opacity))

	rx := 10
	if n.Kind.Schema().Trigger {
		rx = 30
	}
	canvas.Roundrect(int(body.X), int(body.Y), int(body.Width), int(body.Height), rx, rx,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", st.NodeFill, st.NodeStroke))
	canvas.Text(int(body.X+body.Width/2), int(body.Y+body.Height/2), tmpl.Icon,
		fmt.Sprintf("fill:%s;font-size:14px;text-anchor:middle", tmpl.Color))
	canvas.Text(int(body.X+body.Width/2), int(body.Y+body.Height+16), catalog.Title(n.Kind),
		fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif;text-anchor:middle", st.Text))
	if tmpl.Subtitle != "" {
		canvas.Text(int(body.X+body.Width/2), int(body.Y+body.Height/2+18), tmpl.Subtitle,
			fmt.Sprintf("fill:%s;font-size:10px;font-family:sans-serif;text-anchor:middle", st.NodeStroke))
	}

	if r, ok := n.ElementRect(core.ElemInput, 0); ok {
		canvas.Rect(int(r.X), int(r.Y), int(r.Width), int(r.Height), `class="port input"`, fmt.Sprintf("fill:%s", st.PortFill))
	}

	s.renderOutputs(canvas, n)
	canvas.Gend()
}

func (s *Surface) renderOutputs(canvas *svg.SVG, n *core.Node) {
	st := s.Style
	schema := n.Kind.Schema()

	dotClass := `class="port dot"`
	if n.DotInteractive {
		dotClass = `class="port dot interactive"`
	}
	for i := range schema.Outputs {
		r, _ := n.ElementRect(core.ElemDot, i)
		if schema.Anchor == core.AnchorRect {
			canvas.Rect(int(r.X), int(r.Y), int(r.Width), int(r.Height), dotClass, fmt.Sprintf("fill:%s", st.PortFill))
		} else {
			canvas.Circle(int(r.X+r.Width/2), int(r.Y+r.Height/2), core.PortRadius, dotClass, fmt.Sprintf("fill:%s", st.PortFill))
		}
	}

	if n.GuideVisible {
		if from, to, ok := n.GuideLine(); ok {
			canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y), `class="guide"`, fmt.Sprintf("stroke:%s;stroke-width:2", st.NodeStroke))
		}
	}
	if n.PlusVisible {
		if r, ok := n.ElementRect(core.ElemPlus, 0); ok {
			canvas.Group(`class="plus"`)
			canvas.Roundrect(int(r.X), int(r.Y), int(r.Width), int(r.Height), 4, 4, fmt.Sprintf("fill:%s;stroke:%s", st.NodeFill, st.NodeStroke))
			canvas.Text(int(r.X+r.Width/2), int(r.Y+r.Height/2+5), "+", fmt.Sprintf("fill:%s;font-size:16px;text-anchor:middle", st.Text))
			canvas.Gend()
		}
	}

	for i := range schema.SubOutputs {
		from, to, _ := n.SubOutputLine(i)
		canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y), fmt.Sprintf("stroke:%s;stroke-width:2;stroke-dasharray:3 3", st.NodeStroke))
		r, _ := n.ElementRect(core.ElemSubOutput, i)
		canvas.Rect(int(r.X), int(r.Y), int(r.Width), int(r.Height),
			`class="port suboutput"`, fmt.Sprintf(`data-index="%d"`, i), fmt.Sprintf("fill:%s;transform-origin:center", st.PortFill))
		if i < len(catalog.SubOutputLabels) {
			canvas.Text(int(r.X+r.Width/2), int(r.Y+r.Height+12), catalog.SubOutputLabels[i],
				fmt.Sprintf("fill:%s;font-size:9px;font-family:sans-serif;text-anchor:middle", st.NodeStroke))
		}
	}
}

func (s *Surface) renderMenu(canvas *svg.SVG, n *core.Node) {
	st := s.Style
	canvas.Group(`class="node-menu"`, attr("data-id", n.ID))
	for i := range core.MenuItemCount {
		r, _ := n.ElementRect(core.ElemMenuItem, i)
		canvas.Rect(int(r.X), int(r.Y), int(r.Width), int(r.Height),
			fmt.Sprintf(`data-action="%s"`, core.MenuAction(i)), fmt.Sprintf("fill:%s", st.MenuFill))
		canvas.Text(int(r.X+r.Width/2), int(r.Y+r.Height/2+4), menuGlyphs[i],
			fmt.Sprintf("fill:%s;font-size:12px;text-anchor:middle", st.Text))
	}
	canvas.Gend()
}

var menuGlyphs = [core.MenuItemCount]string{"▶", "⏻", "🗑", "…"}

// attr formats a name="value" pair. svgo writes attribute strings as given, and
// node ids come from the caller.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}
