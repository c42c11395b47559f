package params

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nehSet(t *testing.T, raw map[string]string) *Set {
	t.Helper()
	specs, err := Builtin("NEH")
	require.NoError(t, err)
	set, err := New("NEH", specs, raw)
	require.NoError(t, err)
	return set
}

func TestSetLookup(t *testing.T) {
	set := nehSet(t, map[string]string{
		"NEH.Init":           "neh",
		"NEH.Init.NEH.Ratio": "0.25",
	})

	name, err := set.Categorical(".Init")
	require.NoError(t, err)
	assert.Equal(t, "neh", name)

	ratio, err := set.Real("Init.NEH.Ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.25, ratio)

	assert.True(t, set.Has(".Init"))
	assert.False(t, set.Has(".Comp.Strat"))
	assert.Equal(t, []string{"NEH.Init", "NEH.Init.NEH.Ratio"}, set.Names())
	assert.Equal(t, "NEH.Init=neh,NEH.Init.NEH.Ratio=0.25", set.String())
}

func TestSetErrors(t *testing.T) {
	set := nehSet(t, map[string]string{"NEH.Init": "neh"})

	_, err := set.Categorical(".Comp.Strat")
	var missing *MissingParameterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "NEH.Comp.Strat", missing.Name)
	assert.EqualError(t, err, "unknown parameter: NEH.Comp.Strat")

	_, err = set.Integer(".Init")
	var mismatch *TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, Categorical, mismatch.Stored)
	assert.Equal(t, Integer, mismatch.Wanted)

	_, err = set.Real(".Init")
	assert.True(t, errors.As(err, &mismatch))
}

func TestNewRejectsBadValues(t *testing.T) {
	specs, err := Builtin("TS")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  map[string]string
	}{
		{"unknown name", map[string]string{"TS.Color": "red"}},
		{"categorical domain", map[string]string{"TS.Init.NEH.PriorityWeighted": "maybe"}},
		{"integer syntax", map[string]string{"TS.Tenure": "seven"}},
		{"integer range", map[string]string{"TS.Tenure": "0"}},
		{"real syntax", map[string]string{"TS.Init.NEH.Ratio": "half"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("TS", specs, tt.raw)
			assert.Error(t, err)
		})
	}

	set, err := New("TS", specs, map[string]string{"TS.Tenure": " 7 "})
	require.NoError(t, err)
	v, err := set.Integer(".Tenure")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestWithMethodSharesValues(t *testing.T) {
	specs, err := Builtin("all")
	require.NoError(t, err)
	set, err := New("", specs, map[string]string{"MH": "SA", "SA.Init": "random"})
	require.NoError(t, err)

	mh, err := set.Categorical("MH")
	require.NoError(t, err)
	assert.Equal(t, "SA", mh)

	initName, err := set.WithMethod(mh).Categorical(".Init")
	require.NoError(t, err)
	assert.Equal(t, "random", initName)

	_, err = Builtin("GA")
	assert.EqualError(t, err, "unknown mh: GA")
}

func TestLoadSpecsAndValues(t *testing.T) {
	specs, err := LoadSpecs(strings.NewReader(`
method: NEH
params:
  - name: NEH.Init
    kind: categorical
    values: [random, neh]
  - name: NEH.Init.NEH.Ratio
    kind: real
    min: 0
    max: 1
`))
	require.NoError(t, err)
	assert.Equal(t, "NEH", specs.Method)
	require.Len(t, specs.Params, 2)

	raw, err := LoadValues(strings.NewReader(`
NEH.Init: neh
NEH.Init.NEH.Ratio: 0.5
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"NEH.Init": "neh", "NEH.Init.NEH.Ratio": "0.5"}, raw)

	set, err := New(specs.Method, specs.Params, raw)
	require.NoError(t, err)
	r, err := set.Real(".Init.NEH.Ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.5, r)

	_, err = New(specs.Method, specs.Params, map[string]string{"NEH.Init.NEH.Ratio": "1.5"})
	assert.Error(t, err)

	_, err = LoadSpecs(strings.NewReader("method: NEH\nparams:\n  - name: x\n    kind: complex\n"))
	assert.EqualError(t, err, "unknown kind: complex")
}
