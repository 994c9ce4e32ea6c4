package app

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/config"
)

var Night = rl.Color{R: 12, G: 14, B: 17, A: 255}
var Charcoal = rl.Color{R: 20, G: 22, B: 25, A: 255}
var DarkGray = rl.Color{R: 33, G: 36, B: 40, A: 255}
var Gray = rl.Color{R: 67, G: 71, B: 79, A: 255}
var LightGray = rl.Color{R: 125, G: 125, B: 135, A: 255}
var White = rl.Color{R: 250, G: 250, B: 252, A: 255}
var Coral = rl.Color{R: 255, G: 109, B: 90, A: 255}

const S1 = 4
const S2 = 8
const S3 = 16

const F1 = 10
const F2 = 12
const F3 = 16

const R1 = 2
const R2 = 4
const R3 = 6

// Style holds the colours and sizes the raylib front end draws with.
type Style struct {
	Background color.RGBA
	Grid       color.RGBA
	NodeFill   color.RGBA
	NodeStroke color.RGBA
	Text       color.RGBA
	Subtle     color.RGBA
	Edge       color.RGBA
	EdgeWidth  float32
	Port       color.RGBA
	Menu       color.RGBA
	Delete     color.RGBA
	Panel      color.RGBA
	Highlight  color.RGBA
}

func StyleFromConfig(cfg *config.Config) Style {
	return Style{
		Background: DarkGray,
		Grid:       rl.Fade(Gray, 0.35),
		NodeFill:   rl.Color{R: 65, G: 66, B: 68, A: 255},
		NodeStroke: LightGray,
		Text:       White,
		Subtle:     rl.Color{R: 170, G: 174, B: 182, A: 255},
		Edge:       cfg.EdgeColor(),
		EdgeWidth:  cfg.Edges.Width,
		Port:       rl.Color{R: 195, G: 201, B: 213, A: 255},
		Menu:       Charcoal,
		Delete:     Coral,
		Panel:      Night,
		Highlight:  Gray,
	}
}

// accent parses a catalog colour, falling back to the node stroke.
func (s Style) accent(hex string) color.RGBA {
	c, err := config.ParseHexColor(hex)
	if err != nil {
		return s.NodeStroke
	}
	return c
}

func radius(r float32, rect rl.Rectangle) float32 {
	// raylib wants roundness relative to the shorter side
	short := min(rect.Width, rect.Height)
	if short <= 0 {
		return 0
	}
	return min(1, r*2/short)
}
