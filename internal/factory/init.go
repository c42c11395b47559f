package factory

import (
	"math"
	"math/rand"

	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/heuristics"
)

// InitKind - вид генератора начального решения.
type InitKind int

const (
	InitRandom InitKind = iota
	InitOrder
	InitNEH
	InitAppendingNEH
)

func (k InitKind) String() string {
	switch k {
	case InitRandom:
		return "random"
	case InitOrder:
		return "order"
	case InitNEH:
		return "neh"
	case InitAppendingNEH:
		return "appending_neh"
	}
	return "unknown"
}

// Init генерирует начальные решения. Ссылается на компоненты арены
// фабрики и недействителен после её освобождения.
type Init struct {
	Kind  InitKind
	Ratio float64

	n         int
	arena     *Arena
	first     OrderID
	neh       OrderID
	insertion InsertionID
}

// Generate строит решение. rng нужен только случайным стратегиям.
func (in *Init) Generate(rng *rand.Rand) (*flowshop.Solution, error) {
	if in.Kind == InitRandom {
		return flowshop.RandomSolution(in.n, rng), nil
	}
	if in.arena.Released() {
		return nil, ErrArenaReleased
	}

	switch in.Kind {
	case InitOrder:
		first, err := in.arena.Order(in.first)
		if err != nil {
			return nil, err
		}
		return flowshop.NewSolution(first), nil
	case InitNEH:
		order, ins, err := in.nehParts()
		if err != nil {
			return nil, err
		}
		return solution(heuristics.NEH(order, ins, rng)), nil
	default:
		order, ins, err := in.nehParts()
		if err != nil {
			return nil, err
		}
		first, err := in.arena.Order(in.first)
		if err != nil {
			return nil, err
		}
		return solution(heuristics.AppendingNEH(first, order, in.Ratio, ins, rng)), nil
	}
}

func (in *Init) nehParts() ([]int, *heuristics.Insertion, error) {
	order, err := in.arena.Order(in.neh)
	if err != nil {
		return nil, nil, err
	}
	ins, err := in.arena.Insertion(in.insertion)
	if err != nil {
		return nil, nil, err
	}
	return order, ins, nil
}

func solution(seq []int, fitness float64) *flowshop.Solution {
	sol := flowshop.NewSolution(seq)
	if !math.IsNaN(fitness) {
		sol.SetFitness(fitness)
	}
	return sol
}
