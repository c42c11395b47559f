package flowshop

import "fmt"

// MoveKind - тип окрестности.
type MoveKind string

const (
	// MoveShift извлекает работу из позиции From и вставляет её в позицию To.
	MoveShift MoveKind = "shift"
	// MoveSwap меняет местами работы в позициях From и To.
	MoveSwap MoveKind = "swap"
)

func ParseMoveKind(s string) (MoveKind, error) {
	switch MoveKind(s) {
	case MoveShift, "insert":
		return MoveShift, nil
	case MoveSwap:
		return MoveSwap, nil
	}
	return "", fmt.Errorf("unknown neighborhood: %s", s)
}

type Move struct {
	Kind     MoveKind
	From, To int
}

// Apply применяет ход к перестановке p на месте.
func (mv Move) Apply(p []int) {
	switch mv.Kind {
	case MoveSwap:
		p[mv.From], p[mv.To] = p[mv.To], p[mv.From]
	default:
		applyShift(p, mv.From, mv.To)
	}
}

// Lowest - первая позиция, затрагиваемая ходом.
func (mv Move) Lowest() int {
	if mv.From < mv.To {
		return mv.From
	}
	return mv.To
}

func applyShift(p []int, from, to int) {
	if from == to {
		return
	}
	val := p[from]
	if from < to {
		copy(p[from:to], p[from+1:to+1])
		p[to] = val
		return
	}
	copy(p[to+1:from+1], p[to:from])
	p[to] = val
}

// NeighborhoodSize - число различных соседей решения длины n.
func NeighborhoodSize(kind MoveKind, n int) int {
	if n < 2 {
		return 0
	}
	if kind == MoveSwap {
		return n * (n - 1) / 2
	}
	return (n - 1) * (n - 1)
}

// Neighborhood перечисляет все ходы без дубликатов.
// Для shift исключаются ходы (i, i-1): они совпадают с (i-1, i).
func Neighborhood(kind MoveKind, n int) []Move {
	moves := make([]Move, 0, NeighborhoodSize(kind, n))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case i == j:
				continue
			case kind == MoveSwap && j < i:
				continue
			case kind == MoveShift && j == i-1:
				continue
			}
			moves = append(moves, Move{Kind: kind, From: i, To: j})
		}
	}
	return moves
}
