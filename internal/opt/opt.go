package opt

import (
	"context"
	"time"

	"flowShopSolver/internal/compare"
	"flowShopSolver/internal/flowshop"
)

// Optimizer улучшает начальное решение start.
type Optimizer interface {
	Solve(ctx context.Context, prob *flowshop.Problem, start *flowshop.Solution, cmp Comparators, budget Budget) (Result, error)
}

// Comparators - компараторы, которыми пользуется локальный поиск.
type Comparators struct {
	Solution         compare.Comparator
	SolutionNeighbor compare.Comparator
	Neighbor         compare.Comparator
}

// StrictComparators - строгие компараторы для всех ролей.
func StrictComparators() Comparators {
	return Comparators{
		Solution:         compare.Default(compare.RoleSolution),
		SolutionNeighbor: compare.Default(compare.RoleSolutionNeighbor),
		Neighbor:         compare.Default(compare.RoleNeighbor),
	}
}

// Budget ограничивает число вычислений целевой функции (0 - без ограничения).
// Ограничение по времени задаётся через context.
type Budget struct {
	MaxEvaluations int64
}

// Exhausted сообщает, что бюджет исчерпан.
func (b Budget) Exhausted(used int64) bool {
	return b.MaxEvaluations > 0 && used >= b.MaxEvaluations
}

type Result struct {
	Permutation []int          `json:"permutation"`
	Fitness     float64        `json:"fitness"`
	Time        float64        `json:"time"`
	NoEvals     int64          `json:"no_evals"`
	Iterations  int            `json:"iterations"`
	Duration    time.Duration  `json:"-"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Finish заполняет длительность и время в секундах.
func (r *Result) Finish(start time.Time) {
	r.Duration = time.Since(start)
	r.Time = r.Duration.Seconds()
}

// FromSolution строит результат по решению (перестановка копируется).
func FromSolution(sol *flowshop.Solution, fitness float64, evals int64, iterations int, meta map[string]any) Result {
	return Result{
		Permutation: sol.Jobs(),
		Fitness:     fitness,
		NoEvals:     evals,
		Iterations:  iterations,
		Meta:        meta,
	}
}
