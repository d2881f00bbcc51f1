package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mini-adventure/core"
)

// Action is a decoded input intent
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionQuit
	ActionResize
	ActionOther // Any key without a binding
)

// Direction maps movement actions to a grid direction; other actions yield DirNone
func (a Action) Direction() core.Direction {
	switch a {
	case ActionUp:
		return core.DirUp
	case ActionDown:
		return core.DirDown
	case ActionLeft:
		return core.DirLeft
	case ActionRight:
		return core.DirRight
	}
	return core.DirNone
}

// ActionForKey decodes a tcell key event
func ActionForKey(ev *tcell.EventKey) Action {
	return ActionFor(ev.Key(), ev.Rune())
}

// ActionFor decodes a key and rune: arrows or WASD move, Enter confirms, Q/Esc/Ctrl-C quit
// Letters are case-insensitive
func ActionFor(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch unicode.ToLower(r) {
		case 'w':
			return ActionUp
		case 's':
			return ActionDown
		case 'a':
			return ActionLeft
		case 'd':
			return ActionRight
		case 'q':
			return ActionQuit
		case ' ':
			return ActionConfirm
		}
	}
	return ActionNone
}
