package bench

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"flowShopSolver/internal/fla"
	"flowShopSolver/internal/flowshop"
)

// Landscape - настройки анализа ландшафта для одной конфигурации.
type Landscape struct {
	Neighborhood flowshop.MoveKind
	Samples      int
	WalkLength   int
	WalkStrategy string
}

type LandscapeRecord struct {
	Batch        string
	Jobs         int
	Machines     int
	Runs         int
	Neighborhood flowshop.MoveKind

	// Суммарные счётчики по всем запускам.
	Sample fla.Sample

	// Последнее значение блуждания (средний и лучший по запускам).
	WalkEndMean float64
	WalkEndBest float64
}

// RunLandscape выполняет r.Runs выборок и блужданий на экземпляре c.
func (r Runner) RunLandscape(ctx context.Context, c Case, l Landscape) (LandscapeRecord, error) {
	inst := c.Instance()
	spec, err := flowshop.DecodeProblemSpec(c.ProblemSpecs)
	if err != nil {
		return LandscapeRecord{}, err
	}
	batch := uuid.NewString()
	log := r.logger().WithBatch(batch)

	samples := make([]fla.Sample, r.Runs)
	ends := make([]float64, r.Runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())
	for i := 0; i < r.Runs; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Problem держит буферы, поэтому у каждого запуска своя.
			prob, err := flowshop.NewProblem(inst, spec)
			if err != nil {
				return err
			}
			runSeed := r.BaseSeed + int64(i)
			rng := randForSeed(runSeed)
			s := fla.NewSampler(prob, fla.WithMoveKind(l.Neighborhood), fla.WithLogger(log.WithSeed(runSeed)))

			if samples[i], err = s.SampleStatistics(rng, l.Samples); err != nil {
				return fmt.Errorf("run %d: sample: %w", i, err)
			}
			walk, err := s.RandomWalk(rng, l.WalkLength, l.WalkStrategy)
			if err != nil {
				return fmt.Errorf("run %d: walk: %w", i, err)
			}
			ends[i] = lo.LastOrEmpty(walk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LandscapeRecord{}, err
	}

	total := lo.Reduce(samples, func(acc fla.Sample, s fla.Sample, _ int) fla.Sample {
		return acc.Merge(s)
	}, fla.Sample{})
	endStats := CalcStats(ends)

	return LandscapeRecord{
		Batch:        batch,
		Jobs:         c.Jobs,
		Machines:     c.Machines,
		Runs:         r.Runs,
		Neighborhood: l.Neighborhood,
		Sample:       total,
		WalkEndMean:  endStats.Mean,
		WalkEndBest:  endStats.Best,
	}, nil
}

func WriteLandscapeCSV(path string, records []LandscapeRecord) error {
	header := []string{
		"batch", "jobs", "machines", "runs", "neighborhood",
		"up", "down", "side",
		"slmin", "lmin", "iplat", "ledge", "slope", "lmax", "slmax",
		"walk_end_mean", "walk_end_best",
	}
	i64 := func(v int64) string { return itoa(int(v)) }
	rows := lo.Map(records, func(r LandscapeRecord, _ int) []string {
		s := r.Sample
		return []string{
			r.Batch,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),
			string(r.Neighborhood),

			i64(s.Up), i64(s.Down), i64(s.Side),
			i64(s.SLMin), i64(s.LMin), i64(s.IPlat), i64(s.Ledge),
			i64(s.Slope), i64(s.LMax), i64(s.SLMax),

			ftoa(r.WalkEndMean),
			ftoa(r.WalkEndBest),
		}
	})
	return writeRows(path, header, rows)
}
