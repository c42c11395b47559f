package sa

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/opt"
	"flowShopSolver/internal/params"
)

func newProblem(t *testing.T, seed int64) *flowshop.Problem {
	t.Helper()
	inst := flowshop.RandomInstance(10, 4, 1, 50, rand.New(rand.NewSource(seed)))
	prob, err := flowshop.NewProblem(inst, flowshop.DefaultProblemSpec())
	require.NoError(t, err)
	return prob
}

func TestSolveImprovesAndRespectsBudget(t *testing.T) {
	prob := newProblem(t, 1)
	rng := rand.New(rand.NewSource(2))
	start := flowshop.RandomSolution(10, rng)
	startCost := prob.Eval(start)

	cfg := DefaultConfig()
	cfg.Neighborhood = flowshop.MoveShift
	s, err := New(cfg, rng)
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), prob, start, opt.StrictComparators(), opt.Budget{MaxEvaluations: 500})
	require.NoError(t, err)

	require.NoError(t, flowshop.ValidatePermutation(res.Permutation, 10))
	assert.LessOrEqual(t, res.Fitness, startCost)
	assert.LessOrEqual(t, res.NoEvals, int64(500))
	assert.Equal(t, prob.Eval(flowshop.NewSolution(res.Permutation)), res.Fitness)

	f, _ := start.Fitness()
	assert.Equal(t, startCost, f, "start must not change")
}

func TestSolveStopsOnContext(t *testing.T) {
	prob := newProblem(t, 3)
	rng := rand.New(rand.NewSource(4))
	s, err := New(DefaultConfig(), rng)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Solve(ctx, prob, flowshop.IdentitySolution(10), opt.StrictComparators(), opt.Budget{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "context", res.Meta["stopped"])
	assert.Len(t, res.Permutation, 10)
}

func TestConfigFromParams(t *testing.T) {
	specs, err := params.Builtin("SA")
	require.NoError(t, err)
	set, err := params.New("SA", specs, map[string]string{
		"SA.Temp.Init":    "100",
		"SA.Neighborhood": "shift",
	})
	require.NoError(t, err)

	cfg, err := ConfigFromParams(set)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.InitialTemp)
	assert.Equal(t, DefaultConfig().Alpha, cfg.Alpha)
	assert.Equal(t, flowshop.MoveShift, cfg.Neighborhood)

	set, err = params.New("SA", specs, map[string]string{"SA.Temp.Init": "0.1"})
	require.NoError(t, err)
	_, err = ConfigFromParams(set)
	assert.Error(t, err)

	_, err = New(DefaultConfig(), nil)
	assert.Error(t, err)
}
