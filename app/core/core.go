// Package core is the headless graph interaction engine behind the canvas:
// node and port bookkeeping, the connection store, the drag-to-connect state
// machine, anchor geometry and the canvas transform. Front ends feed pointer
// events into an Editor and draw what it reports.
package core

import rl "github.com/gen2brain/raylib-go/raylib"

type V2 = rl.Vector2
