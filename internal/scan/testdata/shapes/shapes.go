package shapes

import (
	"errors"
	"math"
)

type Color int

const (
	Red Color = iota
	Green
	Blue
)

// Shape is implemented only in this package.
type Shape interface {
	Area() float64
	shape()
}

type Circle struct {
	Radius float64
}

func (Circle) shape() {}

func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

type Square struct {
	Side float64
}

func (*Square) shape() {}

func (s *Square) Area() float64 { return s.Side * s.Side }

// Named is open: anyone can implement it.
type Named interface {
	Name() string
}

type Canvas struct {
	Shapes     []Shape
	Background Color
}

func NewCanvas(background Color, shapes ...Shape) *Canvas {
	return &Canvas{Shapes: shapes, Background: background}
}

func NewCanvasFromJSON(data []byte) (*Canvas, error) {
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}
	return &Canvas{}, nil
}

func NewUnit(float64) Circle { return Circle{Radius: 1} }

func NewShape() Shape { return Circle{} }

func newSquare(side float64) (*Square, error) {
	if side < 0 {
		return nil, errors.New("negative side")
	}
	return &Square{Side: side}, nil
}

type Box[T any] struct {
	V T
}

func NewBox[T any](v T) Box[T] { return Box[T]{V: v} }

type Round = Circle

//dummy:skip
type cache struct {
	hits int
}

//dummy:skip
func newCache() *cache { return &cache{} }
