package factory

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowShopSolver/internal/compare"
	"flowShopSolver/internal/flowshop"
	"flowShopSolver/internal/heuristics"
	"flowShopSolver/internal/params"
)

func nehValues(ratio, insertion string) map[string]string {
	return map[string]string{
		"NEH.Init":                            "neh",
		"NEH.Init.NEH.Ratio":                  ratio,
		"NEH.Init.NEH.First.Priority":         "ra_c3",
		"NEH.Init.NEH.First.PriorityWeighted": "no",
		"NEH.Init.NEH.First.PriorityOrder":    "incr",
		"NEH.Init.NEH.Priority":               "sum_pij",
		"NEH.Init.NEH.PriorityWeighted":       "no",
		"NEH.Init.NEH.PriorityOrder":          "decr",
		"NEH.Init.NEH.Insertion":              insertion,
		"NEH.Comp.Strat":                      "strict",
	}
}

func newSet(t *testing.T, raw map[string]string) *params.Set {
	t.Helper()
	specs, err := params.Builtin("NEH")
	require.NoError(t, err)
	set, err := params.New("NEH", specs, raw)
	require.NoError(t, err)
	return set
}

func newProblem(t *testing.T, jobs int, seed int64) *flowshop.Problem {
	t.Helper()
	inst := flowshop.RandomInstance(jobs, 5, 1, 99, rand.New(rand.NewSource(seed)))
	prob, err := flowshop.NewProblem(inst, flowshop.DefaultProblemSpec())
	require.NoError(t, err)
	return prob
}

func generate(t *testing.T, f *Factory, rng *rand.Rand) *flowshop.Solution {
	t.Helper()
	in, err := f.BuildInit()
	require.NoError(t, err)
	sol, err := in.Generate(rng)
	require.NoError(t, err)
	return sol
}

func TestRatioOneReturnsFirstOrder(t *testing.T) {
	prob := newProblem(t, 10, 1)
	f := New(newSet(t, nehValues("1", "first_best")), prob)

	in, err := f.BuildInit()
	require.NoError(t, err)
	assert.Equal(t, InitOrder, in.Kind)

	sol, err := in.Generate(nil)
	require.NoError(t, err)

	want, err := heuristics.BuildPriority(prob.Instance(), "ra_c3", false, "incr")
	require.NoError(t, err)
	assert.Equal(t, want, sol.Jobs())
	assert.Zero(t, prob.Evaluations())
}

func TestRatioZeroIsNEH(t *testing.T) {
	prev := int64(0)
	for n := 2; n <= 9; n++ {
		prob := newProblem(t, n, int64(n))
		f := New(newSet(t, nehValues("0", "first_best")), prob)

		in, err := f.BuildInit()
		require.NoError(t, err)
		assert.Equal(t, InitNEH, in.Kind)

		sol, err := in.Generate(nil)
		require.NoError(t, err)
		require.NoError(t, flowshop.ValidatePermutation(sol.Jobs(), n))

		evals := prob.Counts().Partial
		assert.EqualValues(t, n*(n+1)/2, evals)
		assert.Greater(t, evals, prev)
		prev = evals

		f1, ok := sol.Fitness()
		require.True(t, ok)
		assert.Equal(t, prob.Eval(sol.Clone()), f1)
	}
}

func TestBlendedRatioKeepsPrefix(t *testing.T) {
	prob := newProblem(t, 20, 4)
	first, err := heuristics.BuildPriority(prob.Instance(), "ra_c3", false, "incr")
	require.NoError(t, err)

	for _, ratio := range []string{"0.05", "0.3", "0.5", "0.75", "0.999"} {
		f := New(newSet(t, nehValues(ratio, "kk1")), prob)
		in, err := f.BuildInit()
		require.NoError(t, err)
		assert.Equal(t, InitAppendingNEH, in.Kind)

		sol, err := in.Generate(nil)
		require.NoError(t, err)
		require.NoError(t, flowshop.ValidatePermutation(sol.Jobs(), 20))

		k := int(math.Floor(in.Ratio * 20))
		assert.Equal(t, first[:k], sol.Jobs()[:k], "ratio %s", ratio)
	}
}

func TestDeterministicInit(t *testing.T) {
	for _, ratio := range []string{"0", "0.4", "1"} {
		a := generate(t, New(newSet(t, nehValues(ratio, "nm1")), newProblem(t, 15, 8)), nil)
		b := generate(t, New(newSet(t, nehValues(ratio, "nm1")), newProblem(t, 15, 8)), nil)
		assert.Equal(t, a.Jobs(), b.Jobs(), "ratio %s", ratio)
	}

	raw := nehValues("0", "random_best")
	a := generate(t, New(newSet(t, raw), newProblem(t, 15, 8)), rand.New(rand.NewSource(3)))
	b := generate(t, New(newSet(t, raw), newProblem(t, 15, 8)), rand.New(rand.NewSource(3)))
	assert.Equal(t, a.Jobs(), b.Jobs())
}

func TestRandomInit(t *testing.T) {
	prob := newProblem(t, 12, 2)
	f := New(newSet(t, map[string]string{"NEH.Init": "random", "NEH.Init.NEH.Ratio": "7"}), prob)

	in, err := f.BuildInit()
	require.NoError(t, err)
	assert.Equal(t, InitRandom, in.Kind)

	a, err := in.Generate(rand.New(rand.NewSource(10)))
	require.NoError(t, err)
	b, err := in.Generate(rand.New(rand.NewSource(10)))
	require.NoError(t, err)
	require.NoError(t, flowshop.ValidatePermutation(a.Jobs(), 12))
	assert.Equal(t, a.Jobs(), b.Jobs())
	assert.Zero(t, prob.Evaluations())
}

func TestUnknownInitIsFatal(t *testing.T) {
	raw := nehValues("0", "first_best")
	raw["NEH.Init"] = "bogus"
	in, err := New(newSet(t, raw), newProblem(t, 5, 1)).BuildInit()

	assert.Nil(t, in)
	var unknown *UnknownStrategyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "init", unknown.Kind)
	assert.EqualError(t, err, "unknown init: bogus")
}

func TestUnknownInsertionIndependentOfChainOrder(t *testing.T) {
	prob := newProblem(t, 6, 1)
	generic, domain := GenericInsertion(prob), DomainInsertion(prob)

	for _, name := range []string{"bogus", "first_best", "kk2"} {
		var outcomes []string
		for _, chain := range [][]InsertionBuilder{{generic, domain}, {domain, generic}} {
			f := New(newSet(t, nehValues("0", name)), prob, WithInsertionChain(chain...))
			_, err := f.BuildInit()
			if err != nil {
				outcomes = append(outcomes, err.Error())
			} else {
				outcomes = append(outcomes, "ok")
			}
		}
		assert.Equal(t, outcomes[0], outcomes[1], name)
	}

	_, err := New(newSet(t, nehValues("0", "bogus")), prob).BuildInit()
	var unknown *UnknownStrategyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "insertion", unknown.Kind)
}

func TestUnknownPriority(t *testing.T) {
	raw := nehValues("0", "first_best")
	raw["NEH.Init.NEH.Priority"] = "shortest"
	_, err := New(newSet(t, raw), newProblem(t, 5, 1)).BuildInit()
	assert.EqualError(t, err, "unknown priority: shortest")

	raw = nehValues("0.5", "first_best")
	raw["NEH.Init.NEH.First.PriorityOrder"] = "zigzag"
	_, err = New(newSet(t, raw), newProblem(t, 5, 1)).BuildInit()
	assert.EqualError(t, err, "unknown priority order: zigzag")
}

func TestRatioOutOfRange(t *testing.T) {
	for _, ratio := range []string{"-0.1", "1.5", "NaN", "+Inf"} {
		_, err := New(newSet(t, nehValues(ratio, "first_best")), newProblem(t, 5, 1)).BuildInit()
		var rerr *ConfigurationRatioError
		assert.True(t, errors.As(err, &rerr), ratio)
	}
}

func TestCategoricalRatio(t *testing.T) {
	specs := []params.Spec{
		{Name: "X.Init", Kind: params.Categorical},
		{Name: "X.Init.NEH.Ratio", Kind: params.Categorical},
		{Name: "X.Init.NEH.First.Priority", Kind: params.Categorical},
		{Name: "X.Init.NEH.First.PriorityWeighted", Kind: params.Categorical},
		{Name: "X.Init.NEH.First.PriorityOrder", Kind: params.Categorical},
	}
	build := func(ratio string) error {
		set, err := params.New("X", specs, map[string]string{
			"X.Init":                            "neh",
			"X.Init.NEH.Ratio":                  ratio,
			"X.Init.NEH.First.Priority":         "sum_pij",
			"X.Init.NEH.First.PriorityWeighted": "yes",
			"X.Init.NEH.First.PriorityOrder":    "decr",
		})
		require.NoError(t, err)
		_, err = New(set, newProblem(t, 5, 1)).BuildInit()
		return err
	}

	assert.NoError(t, build("1.0"))
	assert.EqualError(t, build("half"), "unknown ratio: half")
	// при r < 1 нужны параметры второго порядка
	var missing *MissingParameterError
	assert.True(t, errors.As(build("0.5"), &missing))
}

func TestArenaOwnership(t *testing.T) {
	prob := newProblem(t, 8, 1)
	f := New(newSet(t, nehValues("0.5", "first_best")), prob)

	in, err := f.BuildInit()
	require.NoError(t, err)
	assert.Equal(t, 3, f.Arena().Len())

	f.Release()
	_, err = in.Generate(nil)
	assert.True(t, errors.Is(err, ErrArenaReleased))

	_, err = f.Arena().Order(0)
	assert.True(t, errors.Is(err, ErrArenaReleased))
}

func TestComparators(t *testing.T) {
	prob := newProblem(t, 4, 1)

	build := func(strat string) (Comparators, error) {
		return New(newSet(t, map[string]string{"NEH.Comp.Strat": strat}), prob).BuildComparators()
	}

	c, err := build("strict")
	require.NoError(t, err)
	assert.Equal(t, compare.Strict, c.Solution.Strategy)
	assert.Equal(t, compare.RoleNeighbor, c.Neighbor.Role)

	c, err = build("equal")
	require.NoError(t, err)
	assert.Equal(t, compare.Equal, c.SolutionNeighbor.Strategy)
	assert.Equal(t, prob.Tolerance(), c.SolutionNeighbor.Tolerance())

	c, err = build("relative")
	require.NoError(t, err)
	assert.Equal(t, compare.Domain, c.Neighbor.Strategy)

	_, err = build("fuzzy")
	assert.EqualError(t, err, "unknown comparator: fuzzy")

	_, err = New(newSet(t, map[string]string{}), prob).BuildSolComparator()
	var missing *MissingParameterError
	assert.True(t, errors.As(err, &missing))
}
