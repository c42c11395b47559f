package heuristics

import (
	"fmt"
	"math/rand"

	"flowShopSolver/internal/flowshop"
)

// PartialEvaluator вычисляет целевую функцию частичной последовательности.
type PartialEvaluator interface {
	EvalPartial(seq []int) float64
}

// TieBreak - правило выбора среди позиций с одинаковой оценкой.
type TieBreak int

const (
	TieFirst TieBreak = iota
	TieLast
	TieRandom
	TieKK1
	TieKK2
	TieNM1
)

// Insertion выбирает позицию вставки работы в частичную последовательность.
type Insertion struct {
	name string
	tie  TieBreak
	eval PartialEvaluator
	inst *flowshop.Instance // только для предметных правил

	buf  []int
	ties []int
}

func (s *Insertion) Name() string { return s.name }

// BuildInsertion - обобщённые стратегии; им достаточно оценщика.
func BuildInsertion(name string, eval PartialEvaluator) (*Insertion, error) {
	var tie TieBreak
	switch name {
	case "first_best":
		tie = TieFirst
	case "last_best":
		tie = TieLast
	case "random_best":
		tie = TieRandom
	default:
		return nil, fmt.Errorf("insertion %s: %w", name, ErrNotFound)
	}
	return &Insertion{name: name, tie: tie, eval: eval}, nil
}

// BuildInsertionFSP - стратегии, которым нужны данные экземпляра.
func BuildInsertionFSP(name string, eval PartialEvaluator, inst *flowshop.Instance) (*Insertion, error) {
	var tie TieBreak
	switch name {
	case "kk1":
		tie = TieKK1
	case "kk2":
		tie = TieKK2
	case "nm1":
		tie = TieNM1
	default:
		return nil, fmt.Errorf("insertion %s: %w", name, ErrNotFound)
	}
	return &Insertion{name: name, tie: tie, eval: eval, inst: inst}, nil
}

// Insert оценивает все len(seq)+1 позиций для job и возвращает лучшую
// и значение целевой функции последовательности после вставки.
// rng используется только правилом random_best.
func (s *Insertion) Insert(seq []int, job int, rng *rand.Rand) (int, float64) {
	return s.InsertFrom(seq, job, 0, rng)
}

// InsertFrom рассматривает только позиции lo..len(seq): префикс seq[:lo] не сдвигается.
func (s *Insertion) InsertFrom(seq []int, job, lo int, rng *rand.Rand) (int, float64) {
	k := len(seq)
	if cap(s.buf) < k+1 {
		s.buf = make([]int, k+1)
	}
	cand := s.buf[:k+1]
	s.ties = s.ties[:0]

	best := 0.0
	for pos := lo; pos <= k; pos++ {
		copy(cand, seq[:pos])
		cand[pos] = job
		copy(cand[pos+1:], seq[pos:])
		f := s.eval.EvalPartial(cand)
		switch {
		case pos == lo || f < best:
			best = f
			s.ties = append(s.ties[:0], pos)
		case f == best:
			s.ties = append(s.ties, pos)
		}
	}
	return s.pick(seq, job, rng), best
}

func (s *Insertion) pick(seq []int, job int, rng *rand.Rand) int {
	first, last := s.ties[0], s.ties[len(s.ties)-1]
	if len(s.ties) == 1 {
		return first
	}
	switch s.tie {
	case TieLast:
		return last
	case TieRandom:
		return s.ties[rng.Intn(len(s.ties))]
	case TieKK1:
		if a, b := kk1Index(s.inst, job); a > b {
			return last
		}
	case TieKK2:
		if a, b := kk2Index(s.inst, job); a > b {
			return last
		}
	case TieNM1:
		return s.leastIdle(seq, job)
	}
	return first
}

// leastIdle выбирает среди равных позиций ту, где суммарный простой машин минимален.
func (s *Insertion) leastIdle(seq []int, job int) int {
	bestPos, bestIdle := s.ties[0], -1
	cand := s.buf[:len(seq)+1]
	for _, pos := range s.ties {
		copy(cand, seq[:pos])
		cand[pos] = job
		copy(cand[pos+1:], seq[pos:])
		idle := idleTime(s.inst, cand)
		if bestIdle < 0 || idle < bestIdle {
			bestPos, bestIdle = pos, idle
		}
	}
	return bestPos
}

// idleTime - суммарный простой машин при обработке seq.
func idleTime(inst *flowshop.Instance, seq []int) int {
	completion := make([]int, inst.Machines)
	idle := 0
	for _, job := range seq {
		completion[0] += inst.Time(job, 0)
		for m := 1; m < inst.Machines; m++ {
			if completion[m-1] > completion[m] {
				idle += completion[m-1] - completion[m]
				completion[m] = completion[m-1]
			}
			completion[m] += inst.Time(job, m)
		}
	}
	return idle
}
