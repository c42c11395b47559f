// Package factory собирает по набору параметров генератор начального
// решения (случайный, порядок по приоритету, NEH, AppendingNEH) и
// компараторы. Все компоненты одного построения живут в арене фабрики.
package factory

import (
	"errors"
	"math"
	"strconv"

	"github.com/samber/lo"

	"flowShopSolver/internal/compare"
	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/heuristics"
	"flowShopSolver/internal/logging"
	"flowShopSolver/internal/params"
)

// InsertionBuilder строит стратегию вставки по имени или возвращает
// heuristics.ErrNotFound, чтобы цепочка перешла к следующему построителю.
type InsertionBuilder func(name string) (*heuristics.Insertion, error)

// GenericInsertion - построитель, которому нужна только оценка частичных последовательностей.
func GenericInsertion(p *flowshop.Problem) InsertionBuilder {
	return func(name string) (*heuristics.Insertion, error) {
		return heuristics.BuildInsertion(name, p)
	}
}

// DomainInsertion - построитель, которому нужны данные экземпляра.
func DomainInsertion(p *flowshop.Problem) InsertionBuilder {
	return func(name string) (*heuristics.Insertion, error) {
		return heuristics.BuildInsertionFSP(name, p, p.Instance())
	}
}

type Factory struct {
	params  *params.Set
	problem *flowshop.Problem
	arena   *Arena
	chain   []InsertionBuilder
	log     *logging.Logger
}

type Option func(*Factory)

func WithLogger(l *logging.Logger) Option {
	return func(f *Factory) { f.log = l }
}

// WithInsertionChain заменяет цепочку построителей вставки.
func WithInsertionChain(chain ...InsertionBuilder) Option {
	return func(f *Factory) { f.chain = chain }
}

func New(set *params.Set, problem *flowshop.Problem, opts ...Option) *Factory {
	f := &Factory{
		params:  set,
		problem: problem,
		arena:   &Arena{},
		chain:   []InsertionBuilder{GenericInsertion(problem), DomainInsertion(problem)},
		log:     logging.Noop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.WithComponent("factory")
	return f
}

func (f *Factory) Arena() *Arena { return f.arena }

// Release завершает время жизни всех построенных компонентов.
func (f *Factory) Release() { f.arena.Release() }

// BuildInit читает .Init и строит генератор начального решения.
func (f *Factory) BuildInit() (*Init, error) {
	name, err := f.params.Categorical(".Init")
	if err != nil {
		return nil, err
	}
	if name == "random" {
		f.log.Debug("init built", "init", name)
		return &Init{Kind: InitRandom, n: f.problem.Size(), arena: f.arena}, nil
	}
	return f.domainInit(name)
}

func (f *Factory) domainInit(name string) (*Init, error) {
	if name != "neh" {
		return nil, &UnknownStrategyError{Kind: "init", Name: name}
	}
	ratio, err := f.ratio(".Init.NEH.Ratio")
	if err != nil {
		return nil, err
	}

	in := &Init{Ratio: ratio, n: f.problem.Size(), arena: f.arena}
	if ratio > 0 {
		if in.first, err = f.buildPriority(".Init.NEH.First"); err != nil {
			return nil, err
		}
		if ratio == 1 {
			in.Kind = InitOrder
			f.logInit(in)
			return in, nil
		}
	}

	if in.neh, err = f.buildPriority(".Init.NEH"); err != nil {
		return nil, err
	}
	insertion, err := f.params.Categorical(".Init.NEH.Insertion")
	if err != nil {
		return nil, err
	}
	if in.insertion, err = f.buildInsertion(insertion); err != nil {
		return nil, err
	}

	in.Kind = InitAppendingNEH
	if ratio == 0 {
		in.Kind = InitNEH
	}
	f.logInit(in)
	return in, nil
}

func (f *Factory) logInit(in *Init) {
	f.log.Debug("init built", "init", in.Kind.String(), "ratio", in.Ratio, "components", f.arena.Len())
}

// ratio принимает как вещественный параметр, так и категориальную запись числа.
func (f *Factory) ratio(param string) (float64, error) {
	r, err := f.params.Real(param)
	var mismatch *TypeMismatchError
	if errors.As(err, &mismatch) && mismatch.Stored == params.Categorical {
		var s string
		if s, err = f.params.Categorical(param); err == nil {
			if r, err = strconv.ParseFloat(s, 64); err != nil {
				return 0, &UnknownStrategyError{Kind: "ratio", Name: s}
			}
		}
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(r) || r < 0 || r > 1 {
		return 0, &ConfigurationRatioError{Ratio: r}
	}
	return r, nil
}

// buildPriority читает prefix.Priority, prefix.PriorityWeighted и
// prefix.PriorityOrder и регистрирует порядок в арене.
func (f *Factory) buildPriority(prefix string) (OrderID, error) {
	rule, err := f.params.Categorical(prefix + ".Priority")
	if err != nil {
		return 0, err
	}
	weighted, err := f.params.Categorical(prefix + ".PriorityWeighted")
	if err != nil {
		return 0, err
	}
	order, err := f.params.Categorical(prefix + ".PriorityOrder")
	if err != nil {
		return 0, err
	}

	jobs, err := heuristics.BuildPriority(f.problem.Instance(), rule, weighted == "yes", order)
	if errors.Is(err, heuristics.ErrNotFound) {
		if lo.Contains(heuristics.PriorityRules(), rule) {
			return 0, &UnknownStrategyError{Kind: "priority order", Name: order}
		}
		return 0, &UnknownStrategyError{Kind: "priority", Name: rule}
	}
	if err != nil {
		return 0, err
	}
	return f.arena.addOrder(jobs), nil
}

// buildInsertion проходит цепочку построителей; первый успех попадает в арену.
func (f *Factory) buildInsertion(name string) (InsertionID, error) {
	for _, build := range f.chain {
		ins, err := build(name)
		if errors.Is(err, heuristics.ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, err
		}
		return f.arena.addInsertion(ins), nil
	}
	return 0, &UnknownStrategyError{Kind: "insertion", Name: name}
}

// Comparators - компараторы трёх ролей, разрешённые по .Comp.Strat.
type Comparators struct {
	Solution         compare.Comparator
	SolutionNeighbor compare.Comparator
	Neighbor         compare.Comparator
}

func (f *Factory) BuildSolComparator() (compare.Comparator, error) {
	return f.buildComparator(compare.RoleSolution)
}

func (f *Factory) BuildSolNeighborComparator() (compare.Comparator, error) {
	return f.buildComparator(compare.RoleSolutionNeighbor)
}

func (f *Factory) BuildNeighborComparator() (compare.Comparator, error) {
	return f.buildComparator(compare.RoleNeighbor)
}

func (f *Factory) BuildComparators() (Comparators, error) {
	var (
		c   Comparators
		err error
	)
	if c.Solution, err = f.BuildSolComparator(); err != nil {
		return Comparators{}, err
	}
	if c.SolutionNeighbor, err = f.BuildSolNeighborComparator(); err != nil {
		return Comparators{}, err
	}
	if c.Neighbor, err = f.BuildNeighborComparator(); err != nil {
		return Comparators{}, err
	}
	return c, nil
}

func (f *Factory) buildComparator(role compare.Role) (compare.Comparator, error) {
	name, err := f.params.Categorical(".Comp.Strat")
	if err != nil {
		return compare.Comparator{}, err
	}
	c, err := compare.Resolve(role, name, f.problem.Tolerance(), fspComparator)
	if errors.Is(err, compare.ErrUnknown) {
		return compare.Comparator{}, &UnknownStrategyError{Kind: "comparator", Name: name}
	}
	return c, err
}

// fspComparator - предметные компараторы задачи flow-shop.
func fspComparator(name string, tol float64) (compare.Comparator, bool) {
	if name == "relative" {
		return compare.NewDomain(name, tol, compare.RelativeEqual), true
	}
	return compare.Comparator{}, false
}
