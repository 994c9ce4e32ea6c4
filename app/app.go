package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/config"
	"github.com/bvisness/flowcanvas/app/core"
	"github.com/bvisness/flowcanvas/internal/log"
	"github.com/bvisness/flowcanvas/util"
)

// App is the raylib front end around one editor.
type App struct {
	Config  *config.Config
	Editor  *core.Editor
	Surface *Surface
	Style   Style
	Input   InputProvider

	Controller *Controller
	Sidebar    *Sidebar
	Toolbar    *Toolbar
	Minimap    *Minimap

	log *log.Logger
}

// New wires the front end. If e is nil a fresh editor is created from cfg;
// otherwise e is taken over and redrawn onto the window surface.
func New(cfg *config.Config, in InputProvider, logger *log.Logger, e *core.Editor) *App {
	style := StyleFromConfig(cfg)
	surface := NewSurface(style)
	if e == nil {
		opts := cfg.Options(logger)
		opts.Surface = surface
		e = core.NewEditor(opts)
	} else {
		e.SetSurface(surface)
	}

	a := &App{
		Config:     cfg,
		Editor:     e,
		Surface:    surface,
		Style:      style,
		Input:      in,
		Controller: NewController(e, in, cfg.Canvas.PanKey),
		Sidebar:    NewSidebar(e, in, logger),
		Toolbar:    NewToolbar(e, in),
		Minimap:    NewMinimap(e, in, cfg.Window.MinimapThreshold),
		log:        logger,
	}
	a.Controller.Typing = a.Sidebar.Typing
	e.Hooks = core.Hooks{
		OnMenuAction: a.onMenuAction,
		OnConnect: func(c core.Connection) {
			a.log.Infof("connected %v", c)
		},
	}
	return a
}

func (a *App) onMenuAction(n *core.Node, action core.MenuAction) {
	switch action {
	case core.MenuPower:
		a.log.Infof("%v %s", n, util.Tern(n.Disabled, "disabled", "enabled"))
	case core.MenuDelete:
		a.log.Infof("deleted %v", n)
	default:
		a.log.Infof("%s requested on %v", action, n)
	}
}

// View is the canvas area: the window minus the sidebar on the right.
func (a *App) View(width, height float32) rl.Rectangle {
	return rl.Rectangle{Width: max(0, width-a.Sidebar.Width), Height: height}
}

// Update runs one frame of input handling for a window of the given size.
func (a *App) Update(width, height float32) {
	view := a.View(width, height)
	chrome := func(p core.V2) bool {
		return !rl.CheckCollisionPointRec(p, view) || a.Toolbar.Contains(view, p) || a.Minimap.Contains(view, p)
	}
	a.Controller.Chrome = chrome
	a.Sidebar.Chrome = chrome

	a.Sidebar.Update(view)
	a.Toolbar.Update(view)
	a.Minimap.Update(view)
	a.Controller.Update()
}

func (a *App) Frame() {
	width, height := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	a.Update(width, height)
	view := a.View(width, height)

	rl.BeginDrawing()
	rl.ClearBackground(a.Style.Background)

	rl.BeginScissorMode(int32(view.X), int32(view.Y), int32(view.Width), int32(view.Height))
	rl.BeginMode2D(a.Editor.Camera.Camera2D())
	drawGrid(a.Editor.Camera, view.Width, view.Height, a.Style)
	a.Surface.DrawEdges()
	drawNodes(a.Editor, a.Style)
	a.Surface.DrawOverlay()
	rl.EndMode2D()
	rl.EndScissorMode()

	a.Toolbar.Draw(view, a.Style)
	a.Minimap.Draw(view, a.Style)
	a.Sidebar.Draw(height, a.Style)

	rl.EndDrawing()
}

// Main opens the window and runs the editor until it is closed.
func Main(cfg *config.Config, logger *log.Logger, e *core.Editor) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if cfg.Window.Maximized {
		flags |= rl.FlagWindowMaximized
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)

	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "Flowcanvas")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(rl.GetMonitorRefreshRate(rl.GetCurrentMonitor())))
	rl.SetExitKey(0)

	a := New(cfg, RealInputProvider{}, logger, e)
	logger.Infof("window %dx%d, %d nodes", cfg.Window.Width, cfg.Window.Height, len(a.Editor.Nodes()))
	for !rl.WindowShouldClose() {
		a.Frame()
	}
}
