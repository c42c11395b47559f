package fla

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowShopSolver/internal/compare"
	"flowShopSolver/internal/factory"
	"flowShopSolver/internal/flowshop"
)

func problemOf(t *testing.T, inst *flowshop.Instance, obj flowshop.Objective) *flowshop.Problem {
	t.Helper()
	spec := flowshop.DefaultProblemSpec()
	spec.Objective = obj
	prob, err := flowshop.NewProblem(inst, spec)
	require.NoError(t, err)
	return prob
}

func randomProblem(t *testing.T, jobs, machines int, seed int64) *flowshop.Problem {
	t.Helper()
	inst := flowshop.RandomInstance(jobs, machines, 1, 20, rand.New(rand.NewSource(seed)))
	return problemOf(t, inst, flowshop.ObjectiveMakespan)
}

// singleMachine - одна машина с различными временами: для flowtime
// порядок SPT - единственный минимум, LPT - единственный максимум.
func singleMachine(t *testing.T) *flowshop.Problem {
	t.Helper()
	inst, err := flowshop.NewInstance(5, 1, []int{5, 1, 4, 2, 3})
	require.NoError(t, err)
	return problemOf(t, inst, flowshop.ObjectiveFlowtime)
}

func TestClassifyPartitionsAllPatterns(t *testing.T) {
	tests := []struct {
		down, side, up int
		want           PointClass
	}{
		{0, 0, 3, StrictLocalMin},
		{0, 1, 2, LocalMin},
		{0, 3, 0, InteriorPlateau},
		{1, 1, 1, Ledge},
		{1, 0, 2, Slope},
		{2, 1, 0, LocalMax},
		{3, 0, 0, StrictLocalMax},
	}
	seen := map[PointClass]bool{}
	for _, tt := range tests {
		got := Classify(tt.down, tt.side, tt.up)
		assert.Equal(t, tt.want, got, "%+v", tt)
		seen[got] = true
	}
	assert.Len(t, seen, 7)
	assert.Equal(t, "ledge", Ledge.String())
}

func TestSampleStatisticsInvariants(t *testing.T) {
	for _, kind := range []flowshop.MoveKind{flowshop.MoveShift, flowshop.MoveSwap} {
		prob := randomProblem(t, 6, 3, 17)
		s := NewSampler(prob, WithMoveKind(kind))
		rng := rand.New(rand.NewSource(1))
		size := flowshop.NeighborhoodSize(kind, 6)

		for i := 0; i < 20; i++ {
			sol := flowshop.RandomSolution(6, rng)
			down, side, up, class := s.ClassifyPoint(sol)
			assert.Equal(t, size, down+side+up)
			assert.Equal(t, Classify(down, side, up), class)
		}

		res, err := s.SampleStatistics(rng, 30)
		require.NoError(t, err)
		assert.EqualValues(t, 30, res.Points())
		assert.EqualValues(t, 30*size, res.Moves())
	}
}

func TestSampleStatisticsFlatLandscape(t *testing.T) {
	inst, err := flowshop.NewInstance(4, 1, []int{3, 3, 3, 3})
	require.NoError(t, err)
	s := NewSampler(problemOf(t, inst, flowshop.ObjectiveMakespan))

	res, err := s.SampleStatistics(rand.New(rand.NewSource(2)), 10)
	require.NoError(t, err)
	assert.Equal(t, Sample{Side: 90, IPlat: 10}, res)
}

func TestClassifyExtremes(t *testing.T) {
	prob := singleMachine(t)
	s := NewSampler(prob)

	_, _, _, class := s.ClassifyPoint(flowshop.NewSolution([]int{1, 3, 4, 2, 0}))
	assert.Equal(t, StrictLocalMin, class)

	_, _, _, class = s.ClassifyPoint(flowshop.NewSolution([]int{0, 2, 4, 3, 1}))
	assert.Equal(t, StrictLocalMax, class)
}

func TestEqualComparatorFlattensLandscape(t *testing.T) {
	prob := randomProblem(t, 5, 2, 4)
	wide, err := compare.Resolve(compare.RoleSolutionNeighbor, "equal", 1e9, nil)
	require.NoError(t, err)

	res, err := NewSampler(prob, WithComparator(wide)).SampleStatistics(rand.New(rand.NewSource(1)), 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.IPlat)
	assert.Zero(t, res.Up+res.Down)
}

func TestSamplingIsAllOrNothing(t *testing.T) {
	s := NewSampler(randomProblem(t, 5, 2, 1))
	rng := rand.New(rand.NewSource(1))

	_, err := s.SampleStatistics(rng, 0)
	assert.Error(t, err)
	_, err = s.SampleStatistics(nil, 3)
	assert.Error(t, err)

	series, err := s.RandomWalk(rng, -1, WalkRandom)
	assert.Error(t, err)
	assert.Nil(t, series)

	tiny := NewSampler(randomProblem(t, 1, 2, 1))
	_, err = tiny.SampleStatistics(rng, 3)
	assert.Error(t, err)

	series, err = s.RandomWalk(rng, 10, "levy")
	var unknown *factory.UnknownStrategyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "unknown sampling strategy: levy", err.Error())
	assert.Nil(t, series)
}

func TestRandomWalk(t *testing.T) {
	for _, strategy := range []string{WalkRandom, WalkFirstImprovement, WalkBestImprovement} {
		t.Run(strategy, func(t *testing.T) {
			prob := randomProblem(t, 8, 4, 21)
			s := NewSampler(prob)

			a, err := s.RandomWalk(rand.New(rand.NewSource(5)), 25, strategy)
			require.NoError(t, err)
			assert.Len(t, a, 25)

			b, err := s.RandomWalk(rand.New(rand.NewSource(5)), 25, strategy)
			require.NoError(t, err)
			assert.Equal(t, a, b)

			start := flowshop.RandomSolution(8, rand.New(rand.NewSource(6)))
			series, err := s.RandomWalkFrom(rand.New(rand.NewSource(7)), start, 12, strategy)
			require.NoError(t, err)
			assert.Equal(t, prob.Eval(start.Clone()), series[len(series)-1])
		})
	}
}

func TestWalkAlwaysMoves(t *testing.T) {
	prob := singleMachine(t)
	s := NewSampler(prob)
	start := flowshop.NewSolution([]int{1, 3, 4, 2, 0})
	best := prob.Eval(start.Clone())

	series, err := s.RandomWalkFrom(rand.New(rand.NewSource(1)), start, 1, WalkBestImprovement)
	require.NoError(t, err)
	assert.Greater(t, series[0], best)
}

func TestEnumerateFixedInstance(t *testing.T) {
	inst, err := flowshop.NewInstance(4, 3, []int{
		5, 9, 8,
		9, 3, 10,
		9, 4, 5,
		4, 8, 8,
	})
	require.NoError(t, err)
	prob := problemOf(t, inst, flowshop.ObjectiveMakespan)

	fitness, err := EnumerateFitness(prob)
	require.NoError(t, err)
	require.Len(t, fitness, 24)

	sols, err := EnumerateSolutions(prob)
	require.NoError(t, err)
	require.Len(t, sols, 24)

	ev, err := flowshop.NewEvaluator(inst)
	require.NoError(t, err)
	seen := map[[4]int]bool{}
	for i, s := range sols {
		assert.Equal(t, fitness[i], s.Fitness)
		assert.Equal(t, float64(ev.MustMakespan(s.Solution)), s.Fitness)
		var key [4]int
		copy(key[:], s.Solution)
		seen[key] = true
	}
	assert.Len(t, seen, 24)
	assert.Equal(t, []int{0, 1, 2, 3}, sols[0].Solution)
	assert.Equal(t, []int{3, 2, 1, 0}, sols[23].Solution)
}

func TestFactorial(t *testing.T) {
	f, err := Factorial(10)
	require.NoError(t, err)
	assert.EqualValues(t, 3628800, f)

	_, err = Factorial(21)
	assert.Error(t, err)
}

func TestSampleMerge(t *testing.T) {
	a := Sample{Up: 1, Down: 2, SLMin: 1, Ledge: 3}
	b := Sample{Up: 4, Side: 5, SLMin: 2, SLMax: 1}
	m := a.Merge(b)
	assert.Equal(t, Sample{Up: 5, Down: 2, Side: 5, SLMin: 3, Ledge: 3, SLMax: 1}, m)
	assert.Equal(t, a.Points()+b.Points(), m.Points())
	assert.Equal(t, a.Moves()+b.Moves(), m.Moves())
}
