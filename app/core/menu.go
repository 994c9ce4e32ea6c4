package core

import "fmt"

type MenuAction int

const (
	MenuRun MenuAction = iota
	MenuPower
	MenuDelete
	MenuMore
)

var menuActionNames = [MenuItemCount]string{"run", "power", "delete", "more"}

func (a MenuAction) String() string {
	if a < 0 || int(a) >= len(menuActionNames) {
		return fmt.Sprintf("MenuAction(%d)", int(a))
	}
	return menuActionNames[a]
}

func ParseMenuAction(s string) (MenuAction, bool) {
	for i, name := range menuActionNames {
		if name == s {
			return MenuAction(i), true
		}
	}
	return 0, false
}

// At most one node menu is open per editor.
type menuState struct {
	open string
}

// ToggleMenu opens the menu of the given node, closing any other, or closes it
// if it was already open.
func (e *Editor) ToggleMenu(id string) {
	if e.menu.open == id {
		e.CloseMenu()
	} else {
		e.OpenMenu(id)
	}
}

func (e *Editor) OpenMenu(id string) {
	if _, ok := e.nodes[id]; !ok {
		return
	}
	e.menu.open = id
}

func (e *Editor) CloseMenu() {
	e.menu.open = ""
}

// OpenMenuNode reports which node's menu is open, if any.
func (e *Editor) OpenMenuNode() (string, bool) {
	return e.menu.open, e.menu.open != ""
}

// RunMenuAction performs a node menu entry and closes the menu. Run and More
// have no engine behavior and only reach Hooks.OnMenuAction.
func (e *Editor) RunMenuAction(id string, action MenuAction) error {
	n, ok := e.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	e.CloseMenu()

	switch action {
	case MenuDelete:
		if err := e.DeleteNode(id); err != nil {
			return err
		}
	case MenuPower:
		n.Disabled = !n.Disabled
		e.log.Debugf("%v disabled=%v", n, n.Disabled)
	}

	if e.Hooks.OnMenuAction != nil {
		e.Hooks.OnMenuAction(n, action)
	}
	return nil
}
