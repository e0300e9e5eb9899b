package minefield

import "fmt"

type Status int

const (
	Unopened Status = iota
	Flagged
	Revealed
	RevealedMine
	ExplodedMine
)

var statusNames = map[Status]string{
	Unopened:     "unopened",
	Flagged:      "flagged",
	Revealed:     "revealed",
	RevealedMine: "revealed-mine",
	ExplodedMine: "exploded-mine",
}

func (status Status) String() string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(status))
}

// IsOpen reports whether the status can no longer change through Open
func (status Status) IsOpen() bool {
	return status == Revealed || status == RevealedMine || status == ExplodedMine
}

// Cell is what a renderer sees of a single grid position. Count is only
// meaningful when Status is Revealed.
type Cell struct {
	Status Status
	Count  int
}

func (cell Cell) String() string {
	if cell.Status == Revealed {
		return fmt.Sprintf("revealed(%d)", cell.Count)
	}
	return cell.Status.String()
}

// Outcome is the result of an Open or Chord
type Outcome int

const (
	// Noop means nothing changed
	Noop Outcome = iota
	Safe
	Loss
)

func (outcome Outcome) String() string {
	switch outcome {
	case Noop:
		return "noop"
	case Safe:
		return "safe"
	case Loss:
		return "loss"
	default:
		return fmt.Sprintf("Outcome(%d)", int(outcome))
	}
}

type Point struct {
	X, Y int
}

func (pt Point) String() string {
	return fmt.Sprintf("(%d, %d)", pt.X, pt.Y)
}
