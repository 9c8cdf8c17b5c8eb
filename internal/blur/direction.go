package blur

// Direction is a gradient orientation quantized to 45 degree steps.
type Direction uint8

const (
	UpDiagonal Direction = iota
	DownDiagonal
	Horizontal
	Vertical
)

func (d Direction) String() string {
	switch d {
	case UpDiagonal:
		return "up-diagonal"
	case DownDiagonal:
		return "down-diagonal"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "unknown"
}

// offset is a (row, column) displacement.
type offset struct {
	dy, dx int
}

// suppressionNeighbors lists, per direction, the two neighbors a magnitude
// must exceed to survive non-maximum suppression.
var suppressionNeighbors = [4][2]offset{
	UpDiagonal:   {{dy: 1, dx: -1}, {dy: -1, dx: 1}},
	DownDiagonal: {{dy: -1, dx: -1}, {dy: 1, dx: 1}},
	Horizontal:   {{dy: 0, dx: -1}, {dy: 0, dx: 1}},
	Vertical:     {{dy: -1, dx: 0}, {dy: 1, dx: 0}},
}

// walkSteps is the unit step followed when measuring an edge width.
var walkSteps = [4]offset{
	UpDiagonal:   {dy: -1, dx: 1},
	DownDiagonal: {dy: 1, dx: 1},
	Horizontal:   {dy: 0, dx: 1},
	Vertical:     {dy: 1, dx: 0},
}

func (d Direction) diagonal() bool {
	return d == UpDiagonal || d == DownDiagonal
}
