package game

import "fmt"

type State int

const (
	Lost State = iota
	Won
	Ongoing
	Paused
)

func (state State) String() string {
	switch state {
	case Lost:
		return "lost"
	case Won:
		return "won"
	case Ongoing:
		return "ongoing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(state))
	}
}

type Action int

const (
	Click Action = iota
	RightClick
	MiddleClick
)

func (action Action) String() string {
	switch action {
	case Click:
		return "click"
	case RightClick:
		return "right-click"
	case MiddleClick:
		return "middle-click"
	default:
		return fmt.Sprintf("Action(%d)", int(action))
	}
}

// CellAction is a single input event aimed at a board cell
type CellAction struct {
	X, Y   int
	Action Action
}

func (action CellAction) String() string {
	return fmt.Sprintf("%v(%d, %d)", action.Action, action.X, action.Y)
}

func ClickAt(x, y int) CellAction {
	return CellAction{X: x, Y: y, Action: Click}
}

func RightClickAt(x, y int) CellAction {
	return CellAction{X: x, Y: y, Action: RightClick}
}

func MiddleClickAt(x, y int) CellAction {
	return CellAction{X: x, Y: y, Action: MiddleClick}
}
