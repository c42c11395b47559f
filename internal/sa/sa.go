package sa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/opt"
)

// Solver - структура реализации алгоритма имитации отжига
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve улучшает start отжигом. start не изменяется.
func (s *Solver) Solve(ctx context.Context, prob *flowshop.Problem, start *flowshop.Solution, cmp opt.Comparators, budget opt.Budget) (opt.Result, error) {
	begin := time.Now()
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	n := prob.Size()
	if start.Len() != n {
		return opt.Result{}, fmt.Errorf("start length must be %d (got %d)", n, start.Len())
	}

	maxIter := s.Cfg.IterationsPerJob * n
	evals0 := prob.Evaluations()
	used := func() int64 { return prob.Evaluations() - evals0 }

	// Текущее и глобально лучшее решения
	curr := start.Clone()
	currCost := prob.Fitness(curr)
	best := curr.Clone()
	bestCost := currCost

	T := s.Cfg.InitialTemp
	iter := 0
	for ; iter < maxIter && T > s.Cfg.FinalTemp && !budget.Exhausted(used()); iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := opt.FromSolution(best, bestCost, used(), iter, map[string]any{"stopped": "context", "T": T})
			res.Finish(begin)
			return res, err
		}

		mv := randomMove(s.Cfg.Neighborhood, n, s.Rng)
		candCost := prob.NeighborEval(curr, mv)

		accept := false
		if cmp.SolutionNeighbor.Compare(candCost, currCost) <= 0 {
			// Улучшающее или равное решение принимаем всегда
			accept = true
		} else {
			// Критерий Метрополиса:
			// допускает принятие ухудшающих решений
			p := math.Exp(-(candCost - currCost) / T)
			if s.Rng.Float64() < p {
				accept = true
			}
		}

		if accept {
			curr.Apply(mv)
			curr.SetFitness(candCost)
			currCost = candCost

			// Обновление глобально лучшего решения
			if cmp.Solution.Better(currCost, bestCost) {
				bestCost = currCost
				best.CopyFrom(curr)
			}
		}

		// Охлаждение температуры
		T *= s.Cfg.Alpha
	}

	res := opt.FromSolution(best, bestCost, used(), iter, map[string]any{
		"initial_temp": s.Cfg.InitialTemp,
		"final_temp":   s.Cfg.FinalTemp,
		"alpha":        s.Cfg.Alpha,
		"neighborhood": string(s.Cfg.Neighborhood),
	})
	res.Finish(begin)
	return res, nil
}

// randomMove выбирает случайный ход с двумя различными позициями.
func randomMove(kind flowshop.MoveKind, n int, rng *rand.Rand) flowshop.Move {
	if n < 2 {
		return flowshop.Move{Kind: kind}
	}
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return flowshop.Move{Kind: kind, From: i, To: j}
}
