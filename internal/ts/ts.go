package ts

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/opt"
)

// Solver - структура реализации поиска с запретами.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый TS-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// candidate - оценённый ход.
type candidate struct {
	mv   flowshop.Move
	cost float64
	key  uint64
	job  int
}

func (c candidate) ok() bool { return c.mv.From >= 0 }

var noCandidate = candidate{mv: flowshop.Move{From: -1, To: -1}, cost: math.Inf(1)}

// Solve — основной цикл алгоритма
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

	curr := start.Clone()
	currCost := prob.Fitness(curr)

	// Глобально лучшее решение
	best := curr.Clone()
	bestCost := currCost

	// Табу-список - кольцевой буфер с мапой
	// Ёмкость выбирается с запасом относительно длины табу
	tabu := newTabuList(max(32, (s.Cfg.TabuTenure+s.Cfg.TabuTenureRand)*4))

	iter := 0
	for ; iter < maxIter && n > 1; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := opt.FromSolution(best, bestCost, used(), iter, map[string]any{"stopped": "context"})
			res.Finish(begin)
			return res, err
		}
		if budget.Exhausted(used()) {
			break
		}

		// Лучший допустимый ход и запасной (лучший без учёта табу),
		// используется если все допустимые ходы табуированы
		chosen, fallback := noCandidate, noCandidate

		// Итерация по случайно сгенерированным соседям
		for k := 0; k < s.Cfg.NeighborsPerIter && !budget.Exhausted(used()); k++ {
			from := s.Rng.Intn(n)
			to := s.Rng.Intn(n - 1)
			if to >= from {
				to++
			}
			mv := flowshop.Move{Kind: s.Cfg.Neighborhood, From: from, To: to}
			job := curr.Job(from)
			c := candidate{mv: mv, cost: prob.NeighborEval(curr, mv), key: moveKey(job, from, to), job: job}

			if !fallback.ok() || cmp.Neighbor.Better(c.cost, fallback.cost) {
				fallback = c
			}

			// Табуированный ход пропускается,
			// если не выполняется критерий аспирации
			if tabu.IsTabu(c.key, iter) && !cmp.Solution.Better(c.cost, bestCost) {
				continue
			}
			if !chosen.ok() || cmp.Neighbor.Better(c.cost, chosen.cost) {
				chosen = c
			}
		}

		if !chosen.ok() {
			chosen = fallback
		}
		// Нет допустимых ходов — завершаем поиск
		if !chosen.ok() {
			break
		}

		// Применение выбранного хода
		curr.Apply(chosen.mv)
		curr.SetFitness(chosen.cost)
		currCost = chosen.cost

		// Добавление обратного хода в табу-список
		tenure := s.Cfg.TabuTenure
		if s.Cfg.TabuTenureRand > 0 {
			tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
		}
		tabu.Add(moveKey(chosen.job, chosen.mv.To, chosen.mv.From), iter+tenure)

		// Обновление глобально лучшего решения
		if cmp.Solution.Better(currCost, bestCost) {
			bestCost = currCost
			best.CopyFrom(curr)
		}
	}

	res := opt.FromSolution(best, bestCost, used(), iter, map[string]any{
		"tabu_tenure":        s.Cfg.TabuTenure,
		"tabu_tenure_rand":   s.Cfg.TabuTenureRand,
		"neighbors_per_iter": s.Cfg.NeighborsPerIter,
		"neighborhood":       string(s.Cfg.Neighborhood),
	})
	res.Finish(begin)
	return res, nil
}

// tabuList — структура табу-списка.
// Реализована как кольцевой буфер фиксированного размера
// с map для быстрой проверки табуированности.
type tabuList struct {
	m   map[uint64]int // ключ → итерация истечения табу
	key []uint64       // кольцевой буфер ключей
	exp []int          // соответствующие сроки истечения
	i   int            // текущая позиция в кольце
}

// newTabuList создаёт табу-список заданной ёмкости.
func newTabuList(capacity int) *tabuList {
	if capacity < 8 {
		capacity = 8
	}
	return &tabuList{
		m:   make(map[uint64]int, capacity*2),
		key: make([]uint64, capacity),
		exp: make([]int, capacity),
	}
}

// IsTabu проверяет, является ли ход табуированным на текущей итерации.
func (t *tabuList) IsTabu(k uint64, iter int) bool {
	exp, ok := t.m[k]
	return ok && exp > iter
}

// Add добавляет новый табу-ход с указанием итерации истечения.
func (t *tabuList) Add(k uint64, expiry int) {
	// Вытеснение старого элемента из кольцевого буфера
	if oldK := t.key[t.i]; oldK != 0 {
		if curExp, ok := t.m[oldK]; ok && curExp == t.exp[t.i] {
			delete(t.m, oldK)
		}
	}

	t.key[t.i] = k
	t.exp[t.i] = expiry
	t.m[k] = expiry

	t.i = (t.i + 1) % len(t.key)
}

// moveKey формирует уникальный ключ хода.
// Старший бит отличает ключ от пустой ячейки буфера.
func moveKey(job, from, to int) uint64 {
	return 1<<63 |
		(uint64(uint32(job)) << 42) |
		(uint64(uint32(from)) << 21) |
		uint64(uint32(to))
}
