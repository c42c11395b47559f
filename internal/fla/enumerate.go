package fla

import (
	"fmt"

	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/metrics"
)

// ScoredSolution - перестановка и её значение целевой функции.
type ScoredSolution struct {
	Solution []int   `json:"solution"`
	Fitness  float64 `json:"fitness"`
}

// Factorial возвращает n! или ошибку, если значение не помещается в int64.
func Factorial(n int) (int64, error) {
	if n < 0 || n > 20 {
		return 0, fmt.Errorf("factorial of %d is not representable", n)
	}
	f := int64(1)
	for i := int64(2); i <= int64(n); i++ {
		f *= i
	}
	return f, nil
}

// EnumerateFitness полностью оценивает все n! перестановок
// в лексикографическом порядке. Размер задачи ограничивает вызывающий.
func EnumerateFitness(p *flowshop.Problem) ([]float64, error) {
	out, err := alloc[float64](p.Size())
	if err != nil {
		return nil, err
	}
	enumerate(p, func(perm []int, f float64) {
		out = append(out, f)
	})
	return out, nil
}

// EnumerateSolutions - то же, но вместе с перестановками.
func EnumerateSolutions(p *flowshop.Problem) ([]ScoredSolution, error) {
	out, err := alloc[ScoredSolution](p.Size())
	if err != nil {
		return nil, err
	}
	enumerate(p, func(perm []int, f float64) {
		out = append(out, ScoredSolution{Solution: append([]int(nil), perm...), Fitness: f})
	})
	return out, nil
}

func alloc[T any](n int) ([]T, error) {
	total, err := Factorial(n)
	if err != nil {
		return nil, err
	}
	return make([]T, 0, total), nil
}

func enumerate(p *flowshop.Problem, visit func(perm []int, f float64)) {
	perm := flowshop.IdentityPermutation(p.Size())
	sol := flowshop.NewSolution(perm)
	visited := int64(0)
	for {
		sol.SetPerm(perm)
		visit(perm, p.Eval(sol))
		visited++
		if !flowshop.NextPermutation(perm) {
			break
		}
	}
	metrics.ObserveEvaluations(flowshop.EvalCounts{Full: visited})
}
