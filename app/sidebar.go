package app

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/catalog"
	"github.com/bvisness/flowcanvas/app/core"
	"github.com/bvisness/flowcanvas/internal/log"
)

const SidebarWidth = 240

const (
	searchHeight      = 28
	paletteItemHeight = 44
)

// paletteItem is the thing dragged out of the sidebar.
type paletteItem struct {
	catalog.Template
}

func (p paletteItem) DragKey() string {
	return "palette:" + p.Token()
}

// Sidebar is the node palette. Items are filtered by the search field and
// either clicked (the node lands in the middle of the view) or dragged onto
// the canvas.
type Sidebar struct {
	Editor *core.Editor
	Drag   DragState
	X      float32 // left edge, set from the view each frame
	Width  float32

	Query   string
	Focused bool

	// Chrome reports points that belong to UI drawn over the view. Drops
	// there are ignored.
	Chrome func(p core.V2) bool

	typing  bool
	items   []catalog.Template
	pressed int
	log     *log.Logger
}

func NewSidebar(e *core.Editor, in InputProvider, logger *log.Logger) *Sidebar {
	return &Sidebar{
		Editor:  e,
		Drag:    DragState{Input: in, Threshold: e.Options().DragThreshold},
		Width:   SidebarWidth,
		items:   catalog.All(),
		pressed: -1,
		log:     logger,
	}
}

func (s *Sidebar) Bounds(screenHeight float32) rl.Rectangle {
	return rl.Rectangle{X: s.X, Width: s.Width, Height: screenHeight}
}

func (s *Sidebar) searchRect() rl.Rectangle {
	return rl.Rectangle{X: s.X + S3, Y: S3, Width: s.Width - 2*S3, Height: searchHeight}
}

func (s *Sidebar) itemRect(i int) rl.Rectangle {
	top := float32(S3 + searchHeight + S3)
	return rl.Rectangle{
		X:      s.X + S2,
		Y:      top + float32(i)*(paletteItemHeight+S1),
		Width:  s.Width - 2*S2,
		Height: paletteItemHeight,
	}
}

// Items returns the templates currently listed.
func (s *Sidebar) Items() []catalog.Template {
	return s.items
}

func (s *Sidebar) itemAt(p core.V2) int {
	for i := range s.items {
		if rl.CheckCollisionPointRec(p, s.itemRect(i)) {
			return i
		}
	}
	return -1
}

// Update handles one frame of input. view is the canvas area in viewport
// coordinates; the sidebar sits to its right.
func (s *Sidebar) Update(view rl.Rectangle) {
	in := s.Drag.Input
	s.X = view.X + view.Width
	s.Drag.Update()
	pos := in.GetMousePosition()

	if in.IsMouseButtonPressed(rl.MouseLeftButton) {
		s.Focused = rl.CheckCollisionPointRec(pos, s.searchRect())
		s.pressed = s.itemAt(pos)
	}
	s.typing = s.Focused
	if s.Focused {
		s.typeQuery(in)
	}

	if s.pressed >= 0 && s.pressed < len(s.items) && in.IsMouseButtonDown(rl.MouseLeftButton) {
		s.Drag.TryStartDrag(paletteItem{s.items[s.pressed]}, s.itemRect(s.pressed), pos)
	}

	if item, ok := s.Drag.Thing.(paletteItem); ok {
		if _, done, canceled := s.Drag.State(item); done {
			s.Drag.Clear()
			s.pressed = -1
			if !canceled && s.droppable(view, pos) {
				s.create(item.Template, s.Editor.Camera.ScreenToCanvas(pos))
			}
			return
		}
	}

	if in.IsMouseButtonReleased(rl.MouseLeftButton) {
		if s.pressed >= 0 && !s.Drag.Dragging && s.itemAt(pos) == s.pressed {
			center := core.V2{X: view.X + view.Width/2, Y: view.Y + view.Height/2}
			s.create(s.items[s.pressed], s.Editor.Camera.ScreenToCanvas(center))
		}
		s.pressed = -1
	}
}

// Typing reports whether the search field had keyboard focus this frame, even
// if Escape dropped it.
func (s *Sidebar) Typing() bool {
	return s.typing
}

func (s *Sidebar) droppable(view rl.Rectangle, p core.V2) bool {
	if !rl.CheckCollisionPointRec(p, view) {
		return false
	}
	return s.Chrome == nil || !s.Chrome(p)
}

func (s *Sidebar) typeQuery(in InputProvider) {
	changed := false
	for ch := in.GetCharPressed(); ch > 0; ch = in.GetCharPressed() {
		s.Query += string(rune(ch))
		changed = true
	}
	if in.IsKeyPressed(rl.KeyBackspace) && s.Query != "" {
		_, size := utf8.DecodeLastRuneInString(s.Query)
		s.Query = s.Query[:len(s.Query)-size]
		changed = true
	}
	if in.IsKeyPressed(rl.KeyEscape) {
		s.Query = ""
		s.Focused = false
		changed = true
	}
	if changed {
		s.items = catalog.Search(s.Query)
		s.pressed = -1
	}
}

// create adds a node of t centred on the canvas point c.
func (s *Sidebar) create(t catalog.Template, c core.V2) {
	size := t.Kind.Schema().Size
	id := s.Editor.NewNodeID()
	if _, err := s.Editor.CreateNode(t.Token(), id, c.X-size.X/2, c.Y-size.Y/2); err != nil {
		s.log.Errorf("creating %s: %v", t.Token(), err)
		return
	}
	s.log.Infof("created %s %s", t.Token(), id)
}

func (s *Sidebar) Draw(screenHeight float32, style Style) {
	rl.DrawRectangleRec(s.Bounds(screenHeight), style.Panel)
	rl.DrawLineEx(core.V2{X: s.X, Y: 0}, core.V2{X: s.X, Y: screenHeight}, 1, style.Highlight)

	search := s.searchRect()
	rl.DrawRectangleRec(search, style.Menu)
	rl.DrawRectangleLinesEx(search, 1, style.Highlight)
	text, col := s.Query, style.Text
	if text == "" && !s.Focused {
		text, col = "Search nodes...", style.Subtle
	}
	rl.DrawText(text, int32(search.X+S2), int32(search.Y+S2), F2, col)
	if s.Focused {
		caret := search.X + S2 + float32(rl.MeasureText(s.Query, F2)) + 1
		rl.DrawLineEx(core.V2{X: caret, Y: search.Y + S1}, core.V2{X: caret, Y: search.Y + search.Height - S1}, 1, style.Text)
	}

	mouse := s.Drag.Input.GetMousePosition()
	for i, t := range s.items {
		r := s.itemRect(i)
		if r.Y > screenHeight {
			break
		}
		if rl.CheckCollisionPointRec(mouse, r) {
			rl.DrawRectangleRec(r, style.Highlight)
		}
		drawPaletteEntry(t, r, style)
	}

	if item, ok := s.Drag.Thing.(paletteItem); ok && s.Drag.Dragging {
		r := rl.Rectangle{X: mouse.X - 12, Y: mouse.Y - 12, Width: s.Width - 2*S2, Height: paletteItemHeight}
		rl.DrawRectangleRec(r, rl.Fade(style.Menu, 0.8))
		drawPaletteEntry(item.Template, r, style)
	}
}

func drawPaletteEntry(t catalog.Template, r rl.Rectangle, style Style) {
	swatch := rl.Rectangle{X: r.X + S2, Y: r.Y + S2, Width: r.Height - 2*S2, Height: r.Height - 2*S2}
	rl.DrawRectangleRounded(swatch, radius(R3, swatch), 6, style.accent(t.Color))
	x := int32(swatch.X + swatch.Width + S2)
	rl.DrawText(t.Title, x, int32(r.Y+S2), F2, style.Text)
	rl.DrawText(t.Category, x, int32(r.Y+S2+F2+S1), F1, style.Subtle)
}
