package heuristics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"flowShopSolver/internal/flowshop"
)

// ErrNotFound сообщает, что построитель не знает запрошенного имени.
// Это ожидаемый исход: вызывающий пробует следующий построитель.
var ErrNotFound = errors.New("not found")

// PriorityRule вычисляет приоритет работы.
type PriorityRule func(inst *flowshop.Instance, job int) float64

// PriorityOrder - направление сортировки по приоритету.
type PriorityOrder string

const (
	OrderIncr   PriorityOrder = "incr"
	OrderDecr   PriorityOrder = "decr"
	OrderHill   PriorityOrder = "hill"
	OrderValley PriorityOrder = "valley"
)

var priorityRules = map[string]PriorityRule{
	"sum_pij":  sumPij,
	"avg_pt":   avgPt,
	"max_pt":   maxPt,
	"min_pt":   minPt,
	"dev_pt":   devPt,
	"abs_dif":  absDif,
	"ss_sra":   palmerSlope,
	"ra_c1":    raFront,
	"ra_c2":    raBack,
	"ra_c3":    func(inst *flowshop.Instance, j int) float64 { return raFront(inst, j) - raBack(inst, j) },
	"kk1":      func(inst *flowshop.Instance, j int) float64 { a, b := kk1Index(inst, j); return math.Min(a, b) },
	"kk2":      func(inst *flowshop.Instance, j int) float64 { a, b := kk2Index(inst, j); return math.Min(a, b) },
	"due_date": dueDate,
}

// PriorityRules возвращает имена известных правил в алфавитном порядке.
func PriorityRules() []string {
	names := lo.Keys(priorityRules)
	sort.Strings(names)
	return names
}

// BuildPriority строит порядок работ по правилу rule.
// weighted делит приоритет на вес работы. Равные приоритеты
// упорядочиваются по номеру работы в направлении order.
func BuildPriority(inst *flowshop.Instance, rule string, weighted bool, order string) ([]int, error) {
	fn, ok := priorityRules[rule]
	if !ok {
		return nil, fmt.Errorf("priority %s: %w", rule, ErrNotFound)
	}
	if rule == "due_date" && !inst.HasDueDates() {
		return nil, fmt.Errorf("priority %s: instance has no due dates", rule)
	}

	prio := make([]float64, inst.Jobs)
	for j := range prio {
		prio[j] = fn(inst, j)
		if weighted {
			prio[j] /= float64(inst.Weight(j))
		}
	}

	// Сортировка по возрастанию (приоритет, номер работы)
	asc := flowshop.IdentityPermutation(inst.Jobs)
	sort.SliceStable(asc, func(a, b int) bool {
		return prio[asc[a]] < prio[asc[b]]
	})

	switch PriorityOrder(order) {
	case OrderIncr:
		return asc, nil
	case OrderDecr:
		return lo.Reverse(asc), nil
	case OrderHill:
		return arrangeEnds(asc), nil
	case OrderValley:
		return arrangeEnds(lo.Reverse(asc)), nil
	}
	return nil, fmt.Errorf("priority order %s: %w", order, ErrNotFound)
}

// arrangeEnds раскладывает sorted поочерёдно с двух концов:
// первые элементы оказываются по краям, последние - в середине.
func arrangeEnds(sorted []int) []int {
	out := make([]int, len(sorted))
	l, r := 0, len(sorted)-1
	for i, job := range sorted {
		if i%2 == 0 {
			out[l] = job
			l++
		} else {
			out[r] = job
			r--
		}
	}
	return out
}

func jobTimes(inst *flowshop.Instance, job int) []float64 {
	out := make([]float64, inst.Machines)
	for m := range out {
		out[m] = float64(inst.Time(job, m))
	}
	return out
}

func sumPij(inst *flowshop.Instance, job int) float64 { return float64(inst.TotalTime(job)) }

func avgPt(inst *flowshop.Instance, job int) float64 {
	return float64(inst.TotalTime(job)) / float64(inst.Machines)
}

func maxPt(inst *flowshop.Instance, job int) float64 { return lo.Max(jobTimes(inst, job)) }

func minPt(inst *flowshop.Instance, job int) float64 { return lo.Min(jobTimes(inst, job)) }

// devPt - стандартное отклонение времён обработки работы.
func devPt(inst *flowshop.Instance, job int) float64 {
	times := jobTimes(inst, job)
	mean := lo.Sum(times) / float64(len(times))
	variance := lo.SumBy(times, func(t float64) float64 { return (t - mean) * (t - mean) })
	return math.Sqrt(variance / float64(len(times)))
}

// absDif - сумма модулей разностей времён на соседних машинах.
func absDif(inst *flowshop.Instance, job int) float64 {
	sum := 0.0
	for m := 1; m < inst.Machines; m++ {
		sum += math.Abs(float64(inst.Time(job, m) - inst.Time(job, m-1)))
	}
	return sum
}

// palmerSlope - индекс наклона Палмера.
func palmerSlope(inst *flowshop.Instance, job int) float64 {
	sum := 0.0
	for m := 0; m < inst.Machines; m++ {
		sum += float64(2*m-inst.Machines+1) * float64(inst.Time(job, m))
	}
	return sum
}

// raFront и raBack - взвешенные суммы rapid access (Dannenbring).
func raFront(inst *flowshop.Instance, job int) float64 {
	sum := 0.0
	for m := 0; m < inst.Machines; m++ {
		sum += float64(inst.Machines-m) * float64(inst.Time(job, m))
	}
	return sum
}

func raBack(inst *flowshop.Instance, job int) float64 {
	sum := 0.0
	for m := 0; m < inst.Machines; m++ {
		sum += float64(m+1) * float64(inst.Time(job, m))
	}
	return sum
}

// kk1Index - индексы a_j и b_j Калчинского–Камбуровского.
func kk1Index(inst *flowshop.Instance, job int) (a, b float64) {
	m := float64(inst.Machines)
	base := (m - 1) * (m - 2) / 2
	for i := 1; i <= inst.Machines; i++ {
		p := float64(inst.Time(job, i-1))
		a += (base + m - float64(i)) * p
		b += (base + float64(i) - 1) * p
	}
	return a, b
}

// kk2Index - вариант индексов, разделяющий машины на две половины.
func kk2Index(inst *flowshop.Instance, job int) (a, b float64) {
	half := float64(inst.Machines) / 2
	for i := 0; i < inst.Machines; i++ {
		p := float64(inst.Time(job, i))
		if float64(i) < half {
			a += (half - float64(i)) * p
		} else {
			b += (float64(i) - half + 1) * p
		}
	}
	return a, b
}

func dueDate(inst *flowshop.Instance, job int) float64 { return float64(inst.DueDates[job]) }
