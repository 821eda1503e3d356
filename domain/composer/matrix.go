package composer

import "fmt"

// Level is the error correction level requested from the encoder
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Matrix is the square boolean grid produced by an Encoder, one cell per pixel.
type Matrix struct {
	side int
	bits []bool
}

// NewMatrix copies rows into a Matrix. rows[y][x] is the cell at (x, y).
func NewMatrix(rows [][]bool) (*Matrix, error) {
	side := len(rows)
	if side == 0 {
		return nil, fmt.Errorf("matrix must not be empty")
	}

	bits := make([]bool, side*side)
	for y, row := range rows {
		if len(row) != side {
			return nil, fmt.Errorf("matrix row %d has %d cells, want %d", y, len(row), side)
		}
		copy(bits[y*side:], row)
	}

	return &Matrix{side: side, bits: bits}, nil
}

// Side returns the width (and height) of the matrix
func (m *Matrix) Side() int {
	return m.side
}

// Get reports whether the cell at (x, y) is dark. Out of range cells are light.
func (m *Matrix) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.side || y >= m.side {
		return false
	}
	return m.bits[y*m.side+x]
}
