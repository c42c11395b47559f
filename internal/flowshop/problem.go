package flowshop

import "fmt"

// EvalCounts - счётчики вычислений целевой функции.
type EvalCounts struct {
	Full     int64
	Neighbor int64
	Partial  int64
}

func (c EvalCounts) Total() int64 { return c.Full + c.Neighbor + c.Partial }

// Problem связывает экземпляр задачи с целевой функцией и предоставляет
// полное, частичное и инкрементальное (по ходу) вычисление.
// Содержит рабочие буферы, поэтому не разделяется между горутинами.
type Problem struct {
	inst   *Instance
	spec   ProblemSpec
	eval   *Evaluator
	counts EvalCounts

	// Кэш времён завершения префиксов для инкрементальной оценки соседей.
	cached     *Solution
	cachedVer  uint64
	heads      []int // heads[k*m+i] - завершение k-й работы на машине i
	flowPrefix []int
	scratch    []int
	machine    []int
}

func NewProblem(inst *Instance, spec ProblemSpec) (*Problem, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	eval, err := NewObjectiveEvaluator(inst, spec.Objective)
	if err != nil {
		return nil, err
	}
	return &Problem{
		inst:       inst,
		spec:       spec,
		eval:       eval,
		heads:      make([]int, inst.Jobs*inst.Machines),
		flowPrefix: make([]int, inst.Jobs),
		scratch:    make([]int, inst.Jobs),
		machine:    make([]int, inst.Machines),
	}, nil
}

// Clone возвращает независимую копию с обнулёнными счётчиками.
// Экземпляр задачи разделяется (он только читается).
func (p *Problem) Clone() *Problem {
	c, err := NewProblem(p.inst, p.spec)
	if err != nil {
		panic(err)
	}
	return c
}

func (p *Problem) Size() int { return p.inst.Jobs }

func (p *Problem) Instance() *Instance { return p.inst }

func (p *Problem) Spec() ProblemSpec { return p.spec }

func (p *Problem) Tolerance() float64 { return p.spec.Tolerance }

func (p *Problem) Counts() EvalCounts { return p.counts }

// Evaluations - общее число вычислений (полных, частичных и по соседям).
func (p *Problem) Evaluations() int64 { return p.counts.Total() }

func (p *Problem) ResetCounters() { p.counts = EvalCounts{} }

// Eval полностью пересчитывает целевую функцию и сохраняет её в решении.
func (p *Problem) Eval(sol *Solution) float64 {
	if sol.Len() != p.inst.Jobs {
		panic(fmt.Sprintf("solution length must be %d (got %d)", p.inst.Jobs, sol.Len()))
	}
	f := float64(p.eval.MustCost(sol.perm))
	p.counts.Full++
	sol.SetFitness(f)
	return f
}

// Fitness возвращает закэшированное значение или вычисляет его.
func (p *Problem) Fitness(sol *Solution) float64 {
	if f, ok := sol.Fitness(); ok {
		return f
	}
	return p.Eval(sol)
}

// EvalPartial вычисляет целевую функцию частичной последовательности.
func (p *Problem) EvalPartial(seq []int) float64 {
	p.counts.Partial++
	return float64(p.eval.PartialCost(seq))
}

// NeighborEval вычисляет значение соседа sol по ходу mv, не изменяя sol.
// Пересчитывается только суффикс, начиная с первой затронутой позиции.
func (p *Problem) NeighborEval(sol *Solution, mv Move) float64 {
	p.bind(sol)
	p.counts.Neighbor++

	n, m := p.inst.Jobs, p.inst.Machines
	copy(p.scratch, sol.perm)
	mv.Apply(p.scratch)

	lo := mv.Lowest()
	flow := 0
	if lo > 0 {
		copy(p.machine, p.heads[(lo-1)*m:lo*m])
		flow = p.flowPrefix[lo-1]
	} else {
		for i := range p.machine {
			p.machine[i] = 0
		}
	}
	for k := lo; k < n; k++ {
		job := p.scratch[k]
		p.machine[0] += p.inst.Time(job, 0)
		for i := 1; i < m; i++ {
			p.machine[i] = max(p.machine[i-1], p.machine[i]) + p.inst.Time(job, i)
		}
		flow += p.machine[m-1]
	}
	if p.spec.Objective == ObjectiveFlowtime {
		return float64(flow)
	}
	return float64(p.machine[m-1])
}

// bind пересчитывает кэш префиксов, если решение изменилось.
func (p *Problem) bind(sol *Solution) {
	if p.cached == sol && p.cachedVer == sol.version {
		return
	}
	m := p.inst.Machines
	flow := 0
	for k, job := range sol.perm {
		row := p.heads[k*m : (k+1)*m]
		for i := 0; i < m; i++ {
			ready := 0
			if i > 0 {
				ready = row[i-1]
			}
			if k > 0 && p.heads[(k-1)*m+i] > ready {
				ready = p.heads[(k-1)*m+i]
			}
			row[i] = ready + p.inst.Time(job, i)
		}
		flow += row[m-1]
		p.flowPrefix[k] = flow
	}
	p.cached, p.cachedVer = sol, sol.version
}
