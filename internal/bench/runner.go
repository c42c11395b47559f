package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/logging"
	"flowShopSolver/internal/solver"
)

// Algorithm - метод решения и его параметры.
type Algorithm struct {
	Name   string
	MH     string
	Params map[string]string
}

type Case struct {
	Jobs         int
	Machines     int
	InstanceSeed int64
	// Описание задачи (objective, budget, stopping_criterion).
	ProblemSpecs map[string]string
}

// Instance генерирует экземпляр задачи, фиксированный сидом конфигурации.
func (c Case) Instance() *flowshop.Instance {
	return flowshop.RandomInstance(c.Jobs, c.Machines, 1, 99, randForSeed(c.InstanceSeed))
}

type Record struct {
	Batch    string
	Algo     string
	Jobs     int
	Machines int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	FitnessBest float64
	FitnessMean float64
	FitnessStd  float64

	EvalsMean float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
	// Число параллельных запусков (<=0 - по одному).
	Workers int
	Logger  *logging.Logger
}

func (r Runner) logger() *logging.Logger {
	if r.Logger == nil {
		return logging.Noop()
	}
	return r.Logger
}

func (r Runner) limit() int {
	if r.Workers <= 0 {
		return 1
	}
	return r.Workers
}

// RunCase выполняет r.Runs независимых запусков алгоритма на экземпляре c.
// Каждый запуск получает свой генератор с сидом BaseSeed+i.
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	inst := c.Instance()
	batch := uuid.NewString()
	log := r.logger().WithMH(algo.MH).WithBatch(batch)

	fitness := make([]float64, r.Runs)
	timesMs := make([]float64, r.Runs)
	evals := make([]int64, r.Runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())
	for i := 0; i < r.Runs; i++ {
		g.Go(func() error {
			runSeed := r.BaseSeed + int64(i)

			runCtx := gctx
			cancel := func() {}
			if r.PerRunTimeout > 0 {
				runCtx, cancel = context.WithTimeout(gctx, r.PerRunTimeout)
			}
			defer cancel()

			res, err := solver.SolveWith(runCtx, algo.MH, c.ProblemSpecs, inst, algo.Params, randForSeed(runSeed),
				solver.WithLogger(log.WithSeed(runSeed)))
			if err != nil && runCtx.Err() != nil {
				return fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
			}
			if err != nil {
				return fmt.Errorf("run %d: solve error: %w", i, err)
			}
			if err := flowshop.ValidatePermutation(res.Permutation, inst.Jobs); err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}

			fitness[i] = res.Fitness
			timesMs[i] = float64(res.Duration.Microseconds()) / 1000.0
			evals[i] = res.NoEvals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Record{}, err
	}

	fStats := CalcStats(fitness)
	tStats := CalcStats(timesMs)

	return Record{
		Batch:    batch,
		Algo:     algo.Name,
		Jobs:     c.Jobs,
		Machines: c.Machines,
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		FitnessBest: fStats.Best,
		FitnessMean: fStats.Mean,
		FitnessStd:  fStats.Std,

		EvalsMean: CalcStats(evals).Mean,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	header := []string{
		"batch", "algo", "jobs", "machines", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"fitness_best", "fitness_mean", "fitness_std",
		"evals_mean",
	}
	rows := lo.Map(records, func(r Record, _ int) []string {
		return []string{
			r.Batch,
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.FitnessBest),
			ftoa(r.FitnessMean),
			ftoa(r.FitnessStd),

			ftoa(r.EvalsMean),
		}
	})
	return writeRows(path, header, rows)
}
