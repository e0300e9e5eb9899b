// Package minefield holds the board of a single game: where the mines are,
// how many mines touch each cell, and what the player can currently see.
package minefield

import (
	"math/rand"

	"github.com/gammazero/deque"
	"github.com/pkg/errors"
)

type cell struct {
	isMine   bool
	numMines int
	status   Status
}

type Minefield struct {
	width, height int // in number of cells
	numMines      int
	cells         [][]cell

	numRevealed int
	numFlags    int
	lost        bool
}

var neighborOffsets = [...]Point{
	{-1, -1},
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
}

// New places numMines mines uniformly at random on a width x height board.
// The same seed always produces the same layout.
func New(width, height, numMines int, seed int64) (*Minefield, error) {
	if err := validate(width, height, numMines); err != nil {
		return nil, err
	}

	field := newField(width, height)

	// Store cell indexes, to shuffle and take the first numMines as mines
	cellIndexes := make([]int, width*height)
	for i := range cellIndexes {
		cellIndexes[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})
	for _, idx := range cellIndexes[:numMines] {
		field.cells[idx/width][idx%width].isMine = true
	}

	field.numMines = numMines
	field.countNeighbors()
	return field, nil
}

// FromLayout builds a board from an explicit mine layout, indexed mines[y][x].
func FromLayout(mines [][]bool) (*Minefield, error) {
	height := len(mines)
	if height == 0 {
		return nil, errors.Wrap(ErrInvalidConfiguration, "layout has no rows")
	}
	width := len(mines[0])

	numMines := 0
	for y, row := range mines {
		if len(row) != width {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "row %d has %d cells, expected %d", y, len(row), width)
		}
		for _, isMine := range row {
			if isMine {
				numMines++
			}
		}
	}
	if err := validate(width, height, numMines); err != nil {
		return nil, err
	}

	field := newField(width, height)
	for y, row := range mines {
		for x, isMine := range row {
			field.cells[y][x].isMine = isMine
		}
	}

	field.numMines = numMines
	field.countNeighbors()
	return field, nil
}

func validate(width, height, numMines int) error {
	if width < 1 || height < 1 {
		return errors.Wrapf(ErrInvalidConfiguration, "board must be at least 1x1, got %dx%d", width, height)
	}
	if numMines < 0 || numMines >= width*height {
		return errors.Wrapf(ErrInvalidConfiguration,
			"mine count must be in [0, %d) for a %dx%d board, got %d", width*height, width, height, numMines)
	}
	return nil
}

func newField(width, height int) *Minefield {
	field := &Minefield{
		width:  width,
		height: height,
		cells:  make([][]cell, height),
	}
	for y := range field.cells {
		field.cells[y] = make([]cell, width)
	}
	return field
}

func (field *Minefield) countNeighbors() {
	for y, row := range field.cells {
		for x := range row {
			c := &row[x]
			if c.isMine {
				continue
			}
			c.numMines = 0
			for _, neighbor := range field.Neighbors(x, y) {
				if field.cells[neighbor.Y][neighbor.X].isMine {
					c.numMines++
				}
			}
		}
	}
}

func (field *Minefield) Width() int {
	return field.width
}

func (field *Minefield) Height() int {
	return field.height
}

func (field *Minefield) Mines() int {
	return field.numMines
}

func (field *Minefield) Flags() int {
	return field.numFlags
}

// SafeCells is the number of cells without a mine
func (field *Minefield) SafeCells() int {
	return field.width*field.height - field.numMines
}

// RevealedCells is the number of safe cells revealed so far
func (field *Minefield) RevealedCells() int {
	return field.numRevealed
}

// Cleared reports whether every safe cell has been revealed
func (field *Minefield) Cleared() bool {
	return field.numRevealed == field.SafeCells()
}

func (field *Minefield) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < field.width && y < field.height
}

// Neighbors returns the in-bounds cells sharing an edge or corner with (x, y).
func (field *Minefield) Neighbors(x, y int) []Point {
	neighbors := make([]Point, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		nx, ny := x+offset.X, y+offset.Y
		if field.InBounds(nx, ny) {
			neighbors = append(neighbors, Point{nx, ny})
		}
	}
	return neighbors
}

func (field *Minefield) cellAt(x, y int) (*cell, error) {
	if !field.InBounds(x, y) {
		return nil, errors.Wrapf(ErrOutOfBounds, "(%d, %d) on a %dx%d board", x, y, field.width, field.height)
	}
	return &field.cells[y][x], nil
}

// VisibleCell returns what the player can see at (x, y).
func (field *Minefield) VisibleCell(x, y int) (Cell, error) {
	c, err := field.cellAt(x, y)
	if err != nil {
		return Cell{}, err
	}

	visible := Cell{Status: c.status}
	if c.status == Revealed {
		visible.Count = c.numMines
	}
	return visible, nil
}

// Open reveals (x, y). Opening a mine returns Loss; opening a cell with no
// neighboring mines also reveals the whole empty region around it.
// Flagged and already-open cells are left untouched.
func (field *Minefield) Open(x, y int) (Outcome, error) {
	c, err := field.cellAt(x, y)
	if err != nil {
		return Noop, err
	}
	if c.status != Unopened {
		return Noop, nil
	}

	if c.isMine {
		c.status = ExplodedMine
		field.lost = true
		return Loss, nil
	}

	field.cascade(Point{x, y})
	return Safe, nil
}

// cascade reveals origin and, while the revealed cells have no neighboring
// mines, their unopened neighbors. A cell leaves Unopened the moment it is
// queued, so nothing is queued twice.
func (field *Minefield) cascade(origin Point) {
	var queue deque.Deque

	field.reveal(origin)
	queue.PushBack(origin)

	for queue.Len() > 0 {
		pt := queue.PopFront().(Point)
		if field.cells[pt.Y][pt.X].numMines > 0 {
			continue
		}

		for _, neighbor := range field.Neighbors(pt.X, pt.Y) {
			c := &field.cells[neighbor.Y][neighbor.X]
			if c.status != Unopened || c.isMine {
				continue
			}
			field.reveal(neighbor)
			queue.PushBack(neighbor)
		}
	}
}

func (field *Minefield) reveal(pt Point) {
	field.cells[pt.Y][pt.X].status = Revealed
	field.numRevealed++
}

// ToggleFlag flags an unopened cell or unflags a flagged one. It reports
// whether anything changed.
func (field *Minefield) ToggleFlag(x, y int) (bool, error) {
	c, err := field.cellAt(x, y)
	if err != nil {
		return false, err
	}

	switch c.status {
	case Unopened:
		c.status = Flagged
		field.numFlags++
	case Flagged:
		c.status = Unopened
		field.numFlags--
	default:
		return false, nil
	}
	return true, nil
}

// Chord opens every unopened neighbor of a revealed number once the player
// has placed that many flags around it. Opening stops at the first mine.
func (field *Minefield) Chord(x, y int) (Outcome, error) {
	c, err := field.cellAt(x, y)
	if err != nil {
		return Noop, err
	}
	if c.status != Revealed || c.numMines == 0 {
		return Noop, nil
	}

	neighbors := field.Neighbors(x, y)
	numFlagged := 0
	for _, neighbor := range neighbors {
		if field.cells[neighbor.Y][neighbor.X].status == Flagged {
			numFlagged++
		}
	}
	if numFlagged != c.numMines {
		return Noop, nil
	}

	outcome := Noop
	for _, neighbor := range neighbors {
		result, err := field.Open(neighbor.X, neighbor.Y)
		if err != nil {
			return outcome, err
		}
		if result > outcome {
			outcome = result
		}
		if outcome == Loss {
			break
		}
	}
	return outcome, nil
}

// RevealMines shows every unflagged mine once the game is lost.
func (field *Minefield) RevealMines() {
	for y := range field.cells {
		for x := range field.cells[y] {
			c := &field.cells[y][x]
			if c.isMine && c.status == Unopened {
				c.status = RevealedMine
			}
		}
	}
}

// FlagMines flags every remaining unopened mine once the game is won.
func (field *Minefield) FlagMines() {
	for y := range field.cells {
		for x := range field.cells[y] {
			c := &field.cells[y][x]
			if c.isMine && c.status == Unopened {
				c.status = Flagged
				field.numFlags++
			}
		}
	}
}

// WrongFlag reports whether (x, y) is flagged without holding a mine. It
// only answers after a mine has exploded.
func (field *Minefield) WrongFlag(x, y int) (bool, error) {
	c, err := field.cellAt(x, y)
	if err != nil {
		return false, err
	}
	return field.lost && c.status == Flagged && !c.isMine, nil
}

// Lost reports whether a mine has been opened
func (field *Minefield) Lost() bool {
	return field.lost
}
