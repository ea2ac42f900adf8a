package view

import "hangman/logic"

// Shape is a single SVG element of the gallows drawing.
type Shape struct {
	Kind        string  `json:"kind"` // line, circle or path
	X1          float64 `json:"x1,omitempty"`
	Y1          float64 `json:"y1,omitempty"`
	X2          float64 `json:"x2,omitempty"`
	Y2          float64 `json:"y2,omitempty"`
	R           float64 `json:"r,omitempty"`
	D           string  `json:"d,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Fill        bool    `json:"fill,omitempty"`
}

func line(x1, y1, x2, y2, w float64) Shape {
	return Shape{Kind: "line", X1: x1, Y1: y1, X2: x2, Y2: y2, StrokeWidth: w}
}

// Drawn on a 200x240 canvas.
var frame = []Shape{
	line(20, 220, 180, 220, 3), // base
	line(60, 220, 60, 20, 3),   // pole
	line(60, 20, 140, 20, 3),   // beam
	line(140, 20, 140, 40, 2),  // rope
}

var partShapes = map[logic.Part][]Shape{
	logic.PartHead: {
		{Kind: "circle", X1: 140, Y1: 50, R: 10, StrokeWidth: 2},
		{Kind: "circle", X1: 137, Y1: 47, R: 1, Fill: true},
		{Kind: "circle", X1: 143, Y1: 47, R: 1, Fill: true},
		{Kind: "path", D: "M 135 55 Q 140 58 145 55", StrokeWidth: 1},
	},
	logic.PartTorso:    {line(140, 60, 140, 100, 2)},
	logic.PartLeftArm:  {line(140, 70, 120, 85, 2)},
	logic.PartRightArm: {line(140, 70, 160, 85, 2)},
	logic.PartLeftLeg:  {line(140, 100, 120, 130, 2)},
	logic.PartRightLeg: {line(140, 100, 160, 130, 2)},
}

// Drawing returns the shapes visible at stage: the frame plus one group per part.
func Drawing(stage int) []Shape {
	shapes := append([]Shape(nil), frame...)
	for _, p := range logic.VisibleParts(stage) {
		shapes = append(shapes, partShapes[p]...)
	}
	return shapes
}

var asciiFrame = []string{
	"  +---+",
	"  |   |",
	"      |",
	"      |",
	"      |",
	"      |",
	"=========",
}

// ASCII renders the gallows for a terminal.
func ASCII(stage int) []string {
	rows := append([]string(nil), asciiFrame...)
	set := func(row, col int, c byte) {
		b := []byte(rows[row])
		b[col] = c
		rows[row] = string(b)
	}
	for _, p := range logic.VisibleParts(stage) {
		switch p {
		case logic.PartHead:
			set(2, 2, 'O')
		case logic.PartTorso:
			set(3, 2, '|')
		case logic.PartLeftArm:
			set(3, 1, '/')
		case logic.PartRightArm:
			set(3, 3, '\\')
		case logic.PartLeftLeg:
			set(4, 1, '/')
		case logic.PartRightLeg:
			set(4, 3, '\\')
		}
	}
	return rows
}
