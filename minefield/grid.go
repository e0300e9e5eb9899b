package minefield

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedGrid is returned when a text grid cannot be decoded
var ErrMalformedGrid = errors.New("malformed minefield grid")

const (
	charUnopened     = '#'
	charRevealed     = '.'
	charFlagged      = 'f'
	charMine         = 'O'
	charFlaggedMine  = 'F'
	charRevealedMine = 'x'
	charExplodedMine = '*'
)

func (c cell) serialize() byte {
	if c.isMine {
		switch c.status {
		case ExplodedMine:
			return charExplodedMine
		case RevealedMine:
			return charRevealedMine
		case Flagged:
			return charFlaggedMine
		default:
			return charMine
		}
	}

	switch c.status {
	case Flagged:
		return charFlagged
	case Revealed:
		return charRevealed
	default:
		return charUnopened
	}
}

func (c *cell) deserialize(char rune, fresh bool) bool {
	switch char {
	case charMine, charFlaggedMine, charRevealedMine, charExplodedMine:
		c.isMine = true
	case charUnopened, charRevealed, charFlagged:
		c.isMine = false
	default:
		return false
	}

	if fresh {
		c.status = Unopened
		return true
	}

	switch char {
	case charFlagged, charFlaggedMine:
		c.status = Flagged
	case charRevealed:
		c.status = Revealed
	case charRevealedMine:
		c.status = RevealedMine
	case charExplodedMine:
		c.status = ExplodedMine
	default:
		c.status = Unopened
	}
	return true
}

// MarshalText encodes the mine layout and visible state, one character per
// cell and one line per row.
func (field *Minefield) MarshalText() ([]byte, error) {
	var builder strings.Builder
	builder.Grow((field.width + 1) * field.height)

	for y, row := range field.cells {
		if y > 0 {
			builder.WriteByte('\n')
		}
		for _, c := range row {
			builder.WriteByte(c.serialize())
		}
	}
	return []byte(builder.String()), nil
}

// UnmarshalGrid decodes a grid written by MarshalText. With fresh set, only
// the mine layout is kept and every cell starts unopened.
func UnmarshalGrid(text string, fresh bool) (*Minefield, error) {
	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(rows) == 0 || rows[0] == "" {
		return nil, errors.Wrap(ErrMalformedGrid, "empty grid")
	}

	height := len(rows)
	width := len([]rune(rows[0]))
	decoded := make([][]cell, height)
	mines := make([][]bool, height)

	for y, row := range rows {
		chars := []rune(row)
		if len(chars) != width {
			return nil, errors.Wrapf(ErrMalformedGrid, "row %d has %d cells, expected %d", y, len(chars), width)
		}

		decoded[y] = make([]cell, width)
		mines[y] = make([]bool, width)
		for x, char := range chars {
			if !decoded[y][x].deserialize(char, fresh) {
				return nil, errors.Wrapf(ErrMalformedGrid, "unknown cell %q at (%d, %d)", char, x, y)
			}
			mines[y][x] = decoded[y][x].isMine
		}
	}

	field, err := FromLayout(mines)
	if err != nil {
		return nil, err
	}

	for y, row := range decoded {
		for x, c := range row {
			target := &field.cells[y][x]
			target.status = c.status
			switch c.status {
			case Revealed:
				field.numRevealed++
			case Flagged:
				field.numFlags++
			case ExplodedMine:
				field.lost = true
			}
		}
	}
	return field, nil
}
