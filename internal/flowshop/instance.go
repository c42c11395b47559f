package flowshop

import (
	"errors"
	"fmt"
	"math/rand"
)

type Instance struct {
	Jobs     int
	Machines int
	// ProcTimes length must be Jobs*Machines.
	ProcTimes []int
	// Weights и DueDates необязательны: пустой срез означает единичные веса
	// и отсутствие директивных сроков.
	Weights  []int
	DueDates []int
}

func NewInstance(jobs, machines int, procTimes []int) (*Instance, error) {
	inst := &Instance{Jobs: jobs, Machines: machines, ProcTimes: procTimes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Jobs <= 0 {
		return fmt.Errorf("jobs must be > 0 (got %d)", inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("machines must be > 0 (got %d)", inst.Machines)
	}
	if len(inst.ProcTimes) != inst.Jobs*inst.Machines {
		return fmt.Errorf("procTimes length must be jobs*machines=%d (got %d)", inst.Jobs*inst.Machines, len(inst.ProcTimes))
	}
	for i, v := range inst.ProcTimes {
		if v < 0 {
			return fmt.Errorf("procTimes[%d] must be >= 0 (got %d)", i, v)
		}
	}
	if len(inst.Weights) != 0 && len(inst.Weights) != inst.Jobs {
		return fmt.Errorf("weights length must be jobs=%d (got %d)", inst.Jobs, len(inst.Weights))
	}
	for j, w := range inst.Weights {
		if w <= 0 {
			return fmt.Errorf("weights[%d] must be > 0 (got %d)", j, w)
		}
	}
	if len(inst.DueDates) != 0 && len(inst.DueDates) != inst.Jobs {
		return fmt.Errorf("dueDates length must be jobs=%d (got %d)", inst.Jobs, len(inst.DueDates))
	}
	return nil
}

func (inst *Instance) Time(job, machine int) int {
	return inst.ProcTimes[job*inst.Machines+machine]
}

// Weight возвращает вес работы (1, если веса не заданы).
func (inst *Instance) Weight(job int) int {
	if len(inst.Weights) == 0 {
		return 1
	}
	return inst.Weights[job]
}

// HasDueDates сообщает, заданы ли директивные сроки.
func (inst *Instance) HasDueDates() bool {
	return len(inst.DueDates) == inst.Jobs
}

// TotalTime - суммарное время обработки работы на всех машинах.
func (inst *Instance) TotalTime(job int) int {
	sum := 0
	for m := 0; m < inst.Machines; m++ {
		sum += inst.Time(job, m)
	}
	return sum
}

func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	pt := make([]int, jobs*machines)
	span := maxTime - minTime + 1
	for i := range pt {
		pt[i] = minTime
		if span > 1 {
			pt[i] += rng.Intn(span)
		}
	}
	inst, err := NewInstance(jobs, machines, pt)
	if err != nil {
		panic(err)
	}
	return inst
}
