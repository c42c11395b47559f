package flowshop

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

type Budget string

const (
	BudgetLow  Budget = "low"
	BudgetMed  Budget = "med"
	BudgetHigh Budget = "high"
)

type StoppingCriterion string

const (
	StopEvals StoppingCriterion = "EVALS"
	StopTime  StoppingCriterion = "TIME"
)

// ProblemSpec - строковое описание варианта задачи.
// Заполняется из map[string]string через mapstructure.
type ProblemSpec struct {
	Type              string            `mapstructure:"fsp_type"`
	Objective         Objective         `mapstructure:"objective"`
	Budget            Budget            `mapstructure:"budget"`
	StoppingCriterion StoppingCriterion `mapstructure:"stopping_criterion"`
	// Допуск, в пределах которого значения целевой функции считаются равными.
	Tolerance float64 `mapstructure:"tolerance"`
}

func DefaultProblemSpec() ProblemSpec {
	return ProblemSpec{
		Type:              "PERM",
		Objective:         ObjectiveMakespan,
		Budget:            BudgetLow,
		StoppingCriterion: StopEvals,
		Tolerance:         1e-6,
	}
}

// DecodeProblemSpec накладывает значения из raw на значения по умолчанию.
// Неизвестные ключи считаются ошибкой.
func DecodeProblemSpec(raw map[string]string) (ProblemSpec, error) {
	spec := DefaultProblemSpec()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return ProblemSpec{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return ProblemSpec{}, fmt.Errorf("decode problem spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return ProblemSpec{}, err
	}
	return spec, nil
}

func (s ProblemSpec) Validate() error {
	if s.Type != "PERM" {
		return fmt.Errorf("unknown fsp_type: %s", s.Type)
	}
	switch s.Objective {
	case ObjectiveMakespan, ObjectiveFlowtime:
	default:
		return fmt.Errorf("unknown objective: %s", s.Objective)
	}
	switch s.Budget {
	case BudgetLow, BudgetMed, BudgetHigh:
	default:
		return fmt.Errorf("unknown budget: %s", s.Budget)
	}
	switch s.StoppingCriterion {
	case StopEvals, StopTime:
	default:
		return fmt.Errorf("unknown stopping_criterion: %s", s.StoppingCriterion)
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance must be >= 0 (got %f)", s.Tolerance)
	}
	return nil
}

func (s ProblemSpec) budgetFactor(low, med, high int) int {
	switch s.Budget {
	case BudgetMed:
		return med
	case BudgetHigh:
		return high
	default:
		return low
	}
}

// MaxEvaluations - лимит вычислений целевой функции для критерия EVALS: n² × {10, 100, 1000}.
func (s ProblemSpec) MaxEvaluations(jobs int) int64 {
	return int64(jobs) * int64(jobs) * int64(s.budgetFactor(10, 100, 1000))
}

// TimeLimit - лимит времени для критерия TIME: n·m/2 × {1, 3, 6} мс.
func (s ProblemSpec) TimeLimit(jobs, machines int) time.Duration {
	ms := jobs * machines / 2 * s.budgetFactor(1, 3, 6)
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}
