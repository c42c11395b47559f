package fla

import (
	"errors"
	"fmt"
	"math/rand"

	"flowShopSolver/internal/compare"
	"flowShopSolver/internal/factory"
	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/logging"
	"flowShopSolver/internal/metrics"
)

// Стратегии выбора соседа при блуждании.
const (
	WalkRandom           = "random"
	WalkFirstImprovement = "first_improvement"
	WalkBestImprovement  = "best_improvement"
)

type Sampler struct {
	problem *flowshop.Problem
	kind    flowshop.MoveKind
	cmp     compare.Comparator
	log     *logging.Logger
}

type Option func(*Sampler)

// WithMoveKind задаёт окрестность (по умолчанию shift).
func WithMoveKind(kind flowshop.MoveKind) Option {
	return func(s *Sampler) { s.kind = kind }
}

// WithComparator задаёт сравнение соседа с текущей точкой (по умолчанию строгое).
func WithComparator(c compare.Comparator) Option {
	return func(s *Sampler) { s.cmp = c }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Sampler) { s.log = l }
}

func NewSampler(problem *flowshop.Problem, opts ...Option) *Sampler {
	s := &Sampler{
		problem: problem,
		kind:    flowshop.MoveShift,
		cmp:     compare.Default(compare.RoleSolutionNeighbor),
		log:     logging.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("fla")
	return s
}

func (s *Sampler) check(rng *rand.Rand, noSamples int) error {
	if rng == nil {
		return errors.New("генератор случайных чисел не инициализирован (nil)")
	}
	if noSamples <= 0 {
		return fmt.Errorf("noSamples must be > 0 (got %d)", noSamples)
	}
	if s.problem.Size() < 2 {
		return fmt.Errorf("landscape needs at least 2 jobs (got %d)", s.problem.Size())
	}
	return nil
}

// ClassifyPoint перебирает всех соседей sol и возвращает число
// лучших, равных и худших соседей и класс точки.
func (s *Sampler) ClassifyPoint(sol *flowshop.Solution) (down, side, up int, class PointClass) {
	cur := s.problem.Fitness(sol)
	for _, mv := range flowshop.Neighborhood(s.kind, sol.Len()) {
		switch s.cmp.Compare(s.problem.NeighborEval(sol, mv), cur) {
		case -1:
			down++
		case 0:
			side++
		default:
			up++
		}
	}
	return down, side, up, Classify(down, side, up)
}

// SampleStatistics классифицирует noSamples случайных решений.
func (s *Sampler) SampleStatistics(rng *rand.Rand, noSamples int) (Sample, error) {
	if err := s.check(rng, noSamples); err != nil {
		return Sample{}, err
	}
	start := s.problem.Counts()

	var res Sample
	for i := 0; i < noSamples; i++ {
		sol := flowshop.RandomSolution(s.problem.Size(), rng)
		down, side, up, class := s.ClassifyPoint(sol)
		res.Down += int64(down)
		res.Side += int64(side)
		res.Up += int64(up)
		res.add(class)
	}

	for c := StrictLocalMin; c <= StrictLocalMax; c++ {
		metrics.LandscapePoints.WithLabelValues(c.String()).Add(float64(res.Count(c)))
	}
	metrics.ObserveEvaluations(diff(s.problem.Counts(), start))
	s.log.Debug("statistics sampled", "points", res.Points(), "moves", res.Moves())
	return res, nil
}

// RandomWalk делает noSamples шагов из случайного решения и возвращает
// значение целевой функции после каждого шага. Шаг выполняется всегда,
// даже если выбранный сосед хуже текущего решения.
func (s *Sampler) RandomWalk(rng *rand.Rand, noSamples int, strategy string) ([]float64, error) {
	return s.walk(rng, noSamples, strategy, nil)
}

// RandomWalkFrom - то же, но из заданного решения (оно изменяется).
func (s *Sampler) RandomWalkFrom(rng *rand.Rand, start *flowshop.Solution, noSamples int, strategy string) ([]float64, error) {
	if start == nil || start.Len() != s.problem.Size() {
		return nil, errors.New("start solution does not match problem size")
	}
	return s.walk(rng, noSamples, strategy, start)
}

func (s *Sampler) walk(rng *rand.Rand, noSamples int, strategy string, sol *flowshop.Solution) ([]float64, error) {
	var pick func(*flowshop.Solution, []flowshop.Move, *rand.Rand) (flowshop.Move, float64)
	switch strategy {
	case WalkRandom:
		pick = s.pickRandom
	case WalkFirstImprovement:
		pick = s.pickFirst
	case WalkBestImprovement:
		pick = s.pickBest
	default:
		return nil, &factory.UnknownStrategyError{Kind: "sampling strategy", Name: strategy}
	}
	if err := s.check(rng, noSamples); err != nil {
		return nil, err
	}
	start := s.problem.Counts()

	if sol == nil {
		sol = flowshop.RandomSolution(s.problem.Size(), rng)
	}
	s.problem.Fitness(sol)
	moves := flowshop.Neighborhood(s.kind, sol.Len())

	series := make([]float64, noSamples)
	for i := range series {
		mv, f := pick(sol, moves, rng)
		sol.Apply(mv)
		sol.SetFitness(f)
		series[i] = f
	}

	metrics.WalkSteps.WithLabelValues(strategy).Add(float64(noSamples))
	metrics.ObserveEvaluations(diff(s.problem.Counts(), start))
	s.log.Debug("random walk sampled", "strategy", strategy, "steps", noSamples)
	return series, nil
}

func (s *Sampler) pickRandom(sol *flowshop.Solution, moves []flowshop.Move, rng *rand.Rand) (flowshop.Move, float64) {
	mv := moves[rng.Intn(len(moves))]
	return mv, s.problem.NeighborEval(sol, mv)
}

// pickFirst просматривает соседей в случайном порядке и берёт первого
// улучшающего; если такого нет - последнего просмотренного.
func (s *Sampler) pickFirst(sol *flowshop.Solution, moves []flowshop.Move, rng *rand.Rand) (flowshop.Move, float64) {
	cur, _ := sol.Fitness()
	rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	var (
		mv flowshop.Move
		f  float64
	)
	for _, mv = range moves {
		f = s.problem.NeighborEval(sol, mv)
		if s.cmp.Better(f, cur) {
			break
		}
	}
	return mv, f
}

// pickBest выбирает лучшего соседа (среди равных - первого в случайном порядке).
func (s *Sampler) pickBest(sol *flowshop.Solution, moves []flowshop.Move, rng *rand.Rand) (flowshop.Move, float64) {
	rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	best, bestF := moves[0], s.problem.NeighborEval(sol, moves[0])
	for _, mv := range moves[1:] {
		if f := s.problem.NeighborEval(sol, mv); s.cmp.Better(f, bestF) {
			best, bestF = mv, f
		}
	}
	return best, bestF
}

func diff(a, b flowshop.EvalCounts) flowshop.EvalCounts {
	return flowshop.EvalCounts{Full: a.Full - b.Full, Neighbor: a.Neighbor - b.Neighbor, Partial: a.Partial - b.Partial}
}
