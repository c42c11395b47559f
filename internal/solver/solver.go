// Package solver - точка входа: по имени метода, описанию задачи и
// набору параметров строит начальное решение и при необходимости
// улучшает его локальным поиском.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"flowShopSolver/internal/factory"
	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/logging"
	"flowShopSolver/internal/metrics"
	"flowShopSolver/internal/opt"
	"flowShopSolver/internal/params"
	"flowShopSolver/internal/sa"
	"flowShopSolver/internal/ts"
)

// errTimeLimit - причина отмены контекста по лимиту времени задачи.
// Такое завершение штатное.
var errTimeLimit = errors.New("time limit reached")

type config struct {
	log   *logging.Logger
	chain []factory.InsertionBuilder
}

type Option func(*config)

func WithLogger(l *logging.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithInsertionChain передаётся фабрике как есть.
func WithInsertionChain(chain ...factory.InsertionBuilder) Option {
	return func(c *config) { c.chain = chain }
}

// SolveWith решает экземпляр inst методом mh ("NEH", "SA", "TS" или
// "all", тогда метод выбирает параметр MH).
func SolveWith(
	ctx context.Context,
	mh string,
	problemSpecs map[string]string,
	inst *flowshop.Instance,
	raw map[string]string,
	rng *rand.Rand,
	opts ...Option,
) (opt.Result, error) {
	cfg := config{log: logging.Noop()}
	for _, o := range opts {
		o(&cfg)
	}
	if rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	spec, err := flowshop.DecodeProblemSpec(problemSpecs)
	if err != nil {
		return opt.Result{}, err
	}
	prob, err := flowshop.NewProblem(inst, spec)
	if err != nil {
		return opt.Result{}, err
	}
	set, err := paramSet(mh, raw)
	if err != nil {
		return opt.Result{}, err
	}
	method := set.Method()
	log := cfg.log.WithMH(method)

	begin := time.Now()
	res, err := solve(ctx, method, prob, set, rng, cfg, log)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.Solves.WithLabelValues(method, status).Inc()
	metrics.SolveDuration.WithLabelValues(method).Observe(time.Since(begin).Seconds())
	metrics.ObserveEvaluations(prob.Counts())
	if err != nil {
		return opt.Result{}, err
	}

	res.NoEvals = prob.Evaluations()
	res.Finish(begin)
	log.Info("solved", "fitness", res.Fitness, "evals", res.NoEvals, "time", res.Time)
	return res, nil
}

// paramSet разбирает raw по встроенным описаниям метода и
// возвращает набор с префиксом выбранного метода.
func paramSet(mh string, raw map[string]string) (*params.Set, error) {
	specs, err := params.Builtin(mh)
	if err != nil {
		return nil, &factory.UnknownStrategyError{Kind: "mh", Name: mh}
	}
	if mh != "all" {
		return params.New(mh, specs, raw)
	}
	set, err := params.New("", specs, raw)
	if err != nil {
		return nil, err
	}
	chosen, err := set.Categorical("MH")
	if err != nil {
		return nil, err
	}
	return set.WithMethod(chosen), nil
}

func solve(
	ctx context.Context,
	method string,
	prob *flowshop.Problem,
	set *params.Set,
	rng *rand.Rand,
	cfg config,
	log *logging.Logger,
) (opt.Result, error) {
	fopts := []factory.Option{factory.WithLogger(log)}
	if cfg.chain != nil {
		fopts = append(fopts, factory.WithInsertionChain(cfg.chain...))
	}
	f := factory.New(set, prob, fopts...)
	defer f.Release()

	in, err := f.BuildInit()
	if err != nil {
		return opt.Result{}, err
	}
	start, err := in.Generate(rng)
	if err != nil {
		return opt.Result{}, err
	}
	fitness := prob.Fitness(start)
	log.Debug("initial solution", "init", in.Kind.String(), "fitness", fitness)

	if method == "NEH" {
		return opt.FromSolution(start, fitness, prob.Evaluations(), 0, map[string]any{"init": in.Kind.String()}), nil
	}

	optimizer, err := newOptimizer(method, set, rng)
	if err != nil {
		return opt.Result{}, err
	}
	cmp, err := comparators(f, set)
	if err != nil {
		return opt.Result{}, err
	}

	var budget opt.Budget
	spec := prob.Spec()
	switch spec.StoppingCriterion {
	case flowshop.StopTime:
		limit := spec.TimeLimit(prob.Size(), prob.Instance().Machines)
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, limit, errTimeLimit)
		defer cancel()
	default:
		budget.MaxEvaluations = spec.MaxEvaluations(prob.Size())
	}

	res, err := optimizer.Solve(ctx, prob, start, cmp, budget)
	if err != nil && errors.Is(context.Cause(ctx), errTimeLimit) {
		log.Debug("time limit reached", "iterations", res.Iterations)
		err = nil
	}
	return res, err
}

func newOptimizer(method string, set *params.Set, rng *rand.Rand) (opt.Optimizer, error) {
	switch method {
	case "SA":
		cfg, err := sa.ConfigFromParams(set)
		if err != nil {
			return nil, err
		}
		return sa.New(cfg, rng)
	case "TS":
		cfg, err := ts.ConfigFromParams(set)
		if err != nil {
			return nil, err
		}
		return ts.New(cfg, rng)
	}
	return nil, &factory.UnknownStrategyError{Kind: "mh", Name: method}
}

// comparators строит компараторы фабрикой; без .Comp.Strat сравнение строгое.
func comparators(f *factory.Factory, set *params.Set) (opt.Comparators, error) {
	if !set.Has(".Comp.Strat") {
		return opt.StrictComparators(), nil
	}
	c, err := f.BuildComparators()
	if err != nil {
		return opt.Comparators{}, err
	}
	return opt.Comparators(c), nil
}
