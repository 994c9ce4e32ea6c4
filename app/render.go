package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/catalog"
	"github.com/bvisness/flowcanvas/app/core"
	"github.com/bvisness/flowcanvas/util"
)

const gridSpacing = 24

// drawGrid paints a dot grid over the visible part of the canvas.
func drawGrid(cam core.Camera, width, height float32, style Style) {
	tl := cam.ScreenToCanvas(core.V2{})
	br := cam.ScreenToCanvas(core.V2{X: width, Y: height})
	step := float32(gridSpacing)
	if cam.Zoom < 0.6 {
		step *= 2
	}
	startX := float32(int(tl.X/step)-1) * step
	startY := float32(int(tl.Y/step)-1) * step
	for x := startX; x < br.X; x += step {
		for y := startY; y < br.Y; y += step {
			rl.DrawCircleV(core.V2{X: x, Y: y}, 1, style.Grid)
		}
	}
}

// drawNodes paints every mounted node and the open menu in canvas space.
func drawNodes(e *core.Editor, style Style) {
	for _, n := range e.Nodes() {
		if n.Mounted {
			drawNode(n, style)
		}
	}
	if id, ok := e.OpenMenuNode(); ok {
		if n, ok := e.Node(id); ok && n.Mounted {
			drawMenu(n, style)
		}
	}
}

func drawNode(n *core.Node, style Style) {
	tmpl, _ := catalog.Lookup(n.Kind)
	schema := n.Kind.Schema()
	body := n.Bounds()

	alpha := util.Tern(n.Disabled, float32(0.5), float32(1))
	fade := func(c rl.Color) rl.Color { return rl.Fade(c, alpha) }

	roundness := radius(10, body)
	if schema.Trigger {
		roundness = radius(30, body)
	}
	outline := rl.Rectangle{X: body.X - 1, Y: body.Y - 1, Width: body.Width + 2, Height: body.Height + 2}
	rl.DrawRectangleRounded(outline, roundness, 8, fade(style.NodeStroke))
	rl.DrawRectangleRounded(body, roundness, 8, fade(style.NodeFill))

	center := core.V2{X: body.X + body.Width/2, Y: body.Y + body.Height/2}
	accent := fade(style.accent(tmpl.Color))
	rl.DrawCircleV(center, 14, accent)
	drawCenteredText(tmpl.Icon, center.X, center.Y-F1/2, F1, fade(style.Text))
	if tmpl.Subtitle != "" {
		drawCenteredText(tmpl.Subtitle, center.X, center.Y+18, F1, fade(style.Subtle))
	}
	drawCenteredText(catalog.Title(n.Kind), center.X, body.Y+body.Height+6, F2, fade(style.Text))

	if r, ok := n.ElementRect(core.ElemInput, 0); ok {
		rl.DrawRectangleRec(r, fade(style.Port))
	}
	drawOutputs(n, style, fade)
}

func drawOutputs(n *core.Node, style Style, fade func(rl.Color) rl.Color) {
	schema := n.Kind.Schema()

	dot := style.Port
	if !n.DotInteractive {
		dot = rl.Fade(dot, 0.7)
	}
	for i := range schema.Outputs {
		r, _ := n.ElementRect(core.ElemDot, i)
		if schema.Anchor == core.AnchorRect {
			rl.DrawRectangleRec(r, fade(dot))
		} else {
			rl.DrawCircleV(core.V2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}, core.PortRadius, fade(dot))
		}
	}

	if n.GuideVisible {
		if from, to, ok := n.GuideLine(); ok {
			rl.DrawLineEx(from, to, 2, fade(style.NodeStroke))
		}
	}
	if n.PlusVisible {
		if r, ok := n.ElementRect(core.ElemPlus, 0); ok {
			rl.DrawRectangleRounded(r, radius(R2, r), 6, fade(style.NodeFill))
			rl.DrawRectangleLinesEx(r, 1, fade(style.NodeStroke))
			cx, cy := r.X+r.Width/2, r.Y+r.Height/2
			rl.DrawLineEx(core.V2{X: cx - 6, Y: cy}, core.V2{X: cx + 6, Y: cy}, 2, fade(style.Text))
			rl.DrawLineEx(core.V2{X: cx, Y: cy - 6}, core.V2{X: cx, Y: cy + 6}, 2, fade(style.Text))
		}
	}

	for i := range schema.SubOutputs {
		from, to, _ := n.SubOutputLine(i)
		drawDashedLine(from, to, 3, fade(style.NodeStroke))
		r, _ := n.ElementRect(core.ElemSubOutput, i)
		// diamond
		cx, cy, h := r.X+r.Width/2, r.Y+r.Height/2, r.Width/2
		top, right := core.V2{X: cx, Y: cy - h}, core.V2{X: cx + h, Y: cy}
		bottom, left := core.V2{X: cx, Y: cy + h}, core.V2{X: cx - h, Y: cy}
		fillTriangle(top, left, bottom, fade(style.Port))
		fillTriangle(top, bottom, right, fade(style.Port))
		if i < len(catalog.SubOutputLabels) {
			drawCenteredText(catalog.SubOutputLabels[i], cx, r.Y+r.Height+4, F1, fade(style.Subtle))
		}
	}
}

func drawMenu(n *core.Node, style Style) {
	for i := range core.MenuItemCount {
		r, _ := n.ElementRect(core.ElemMenuItem, i)
		rl.DrawRectangleRec(r, style.Menu)
		rl.DrawRectangleLinesEx(r, 1, style.Highlight)
		drawMenuGlyph(core.MenuAction(i), r, util.Tern(core.MenuAction(i) == core.MenuDelete, style.Delete, style.Text))
	}
}

func drawMenuGlyph(action core.MenuAction, r rl.Rectangle, col rl.Color) {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	switch action {
	case core.MenuRun:
		fillTriangle(core.V2{X: cx - 5, Y: cy - 7}, core.V2{X: cx - 5, Y: cy + 7}, core.V2{X: cx + 7, Y: cy}, col)
	case core.MenuPower:
		rl.DrawRing(core.V2{X: cx, Y: cy}, 6, 8, 300, 600, 16, col)
		rl.DrawLineEx(core.V2{X: cx, Y: cy - 9}, core.V2{X: cx, Y: cy - 1}, 2, col)
	case core.MenuDelete:
		drawTrashGlyph(r, col)
	case core.MenuMore:
		for dx := float32(-6); dx <= 6; dx += 6 {
			rl.DrawCircleV(core.V2{X: cx + dx, Y: cy}, 2, col)
		}
	}
}

func drawTrashGlyph(r rl.Rectangle, col rl.Color) {
	cx := r.X + r.Width/2
	lid := r.Y + r.Height*0.3
	rl.DrawLineEx(core.V2{X: r.X + r.Width*0.25, Y: lid}, core.V2{X: r.X + r.Width*0.75, Y: lid}, 2, col)
	rl.DrawLineEx(core.V2{X: cx - 2, Y: lid - 3}, core.V2{X: cx + 2, Y: lid - 3}, 2, col)
	can := rl.Rectangle{X: r.X + r.Width*0.32, Y: lid + 2, Width: r.Width * 0.36, Height: r.Height * 0.45}
	rl.DrawRectangleLinesEx(can, 1.5, col)
}

// fillTriangle draws a triangle regardless of winding; raylib culls
// clockwise ones.
func fillTriangle(a, b, c core.V2, col rl.Color) {
	rl.DrawTriangle(a, b, c, col)
	rl.DrawTriangle(a, c, b, col)
}

func drawDashedLine(from, to core.V2, dash float32, col rl.Color) {
	length := rl.Vector2Distance(from, to)
	if length == 0 {
		return
	}
	dir := rl.Vector2Scale(rl.Vector2Subtract(to, from), 1/length)
	for d := float32(0); d < length; d += dash * 2 {
		a := rl.Vector2Add(from, rl.Vector2Scale(dir, d))
		b := rl.Vector2Add(from, rl.Vector2Scale(dir, min(d+dash, length)))
		rl.DrawLineEx(a, b, 2, col)
	}
}

// drawCenteredText draws text horizontally centred on x with its top at y,
// using raylib's built-in font.
func drawCenteredText(text string, x, y float32, size int32, col rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(x)-w/2, int32(y), size, col)
}
