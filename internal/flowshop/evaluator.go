package flowshop

import "fmt"

// Objective - целевая функция задачи.
type Objective string

const (
	ObjectiveMakespan Objective = "MAKESPAN"
	ObjectiveFlowtime Objective = "FLOWTIME"
)

type Evaluator struct {
	inst              *Instance
	objective         Objective
	machineCompletion []int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	return NewObjectiveEvaluator(inst, ObjectiveMakespan)
}

func NewObjectiveEvaluator(inst *Instance, objective Objective) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	switch objective {
	case ObjectiveMakespan, ObjectiveFlowtime:
	default:
		return nil, fmt.Errorf("unknown objective: %s", objective)
	}
	return &Evaluator{inst: inst, objective: objective, machineCompletion: make([]int, inst.Machines)}, nil
}

func (e *Evaluator) Objective() Objective { return e.objective }

func (e *Evaluator) Makespan(perm []int) (int, error) {
	if err := e.check(perm); err != nil {
		return 0, err
	}
	e.run(perm)
	return e.machineCompletion[e.inst.Machines-1], nil
}

func (e *Evaluator) MustMakespan(perm []int) int {
	ms, err := e.Makespan(perm)
	if err != nil {
		panic(err)
	}
	return ms
}

// Cost вычисляет значение целевой функции для полной перестановки.
func (e *Evaluator) Cost(perm []int) (int, error) {
	if err := e.check(perm); err != nil {
		return 0, err
	}
	return e.PartialCost(perm), nil
}

func (e *Evaluator) MustCost(perm []int) int {
	c, err := e.Cost(perm)
	if err != nil {
		panic(err)
	}
	return c
}

// PartialCost вычисляет целевую функцию для частичной последовательности
// работ без проверки на биекцию. Используется на этапе вставки в NEH.
func (e *Evaluator) PartialCost(seq []int) int {
	flow := e.run(seq)
	if e.objective == ObjectiveFlowtime {
		return flow
	}
	return e.machineCompletion[e.inst.Machines-1]
}

func (e *Evaluator) check(perm []int) error {
	if e == nil || e.inst == nil {
		return fmt.Errorf("nil evaluator")
	}
	if len(perm) != e.inst.Jobs {
		return fmt.Errorf("permutation length must be %d (got %d)", e.inst.Jobs, len(perm))
	}
	return ValidatePermutation(perm, e.inst.Jobs)
}

// run прогоняет последовательность по машинам и возвращает суммарное
// время завершения работ (flowtime).
func (e *Evaluator) run(seq []int) int {
	for m := range e.machineCompletion {
		e.machineCompletion[m] = 0
	}
	last := e.inst.Machines - 1
	flow := 0
	for _, job := range seq {
		e.machineCompletion[0] += e.inst.Time(job, 0)
		for m := 1; m < e.inst.Machines; m++ {
			left := e.machineCompletion[m-1]
			up := e.machineCompletion[m]
			if left > up {
				e.machineCompletion[m] = left + e.inst.Time(job, m)
			} else {
				e.machineCompletion[m] = up + e.inst.Time(job, m)
			}
		}
		flow += e.machineCompletion[last]
	}
	return flow
}
