package compare

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltins(t *testing.T) {
	strict, err := Resolve(RoleSolution, "strict", 0.5, nil)
	require.NoError(t, err)
	assert.Equal(t, Strict, strict.Strategy)
	assert.Equal(t, 1, strict.Compare(10.25, 10))
	assert.Equal(t, -1, strict.Compare(10, 10.25))
	assert.Equal(t, 0, strict.Compare(10, 10))

	equal, err := Resolve(RoleNeighbor, "equal", 0.5, nil)
	require.NoError(t, err)
	assert.Equal(t, RoleNeighbor, equal.Role)
	assert.Equal(t, 0, equal.Compare(10.25, 10))
	assert.Equal(t, 0, equal.Compare(10, 10.5))
	assert.True(t, equal.Better(9, 10))
	assert.False(t, equal.Better(9.75, 10))
}

func TestResolveDomain(t *testing.T) {
	domain := func(name string, tol float64) (Comparator, bool) {
		if name != "relative" {
			return Comparator{}, false
		}
		return NewDomain(name, tol, RelativeEqual), true
	}

	c, err := Resolve(RoleSolutionNeighbor, "relative", 0.01, domain)
	require.NoError(t, err)
	assert.Equal(t, Domain, c.Strategy)
	assert.Equal(t, RoleSolutionNeighbor, c.Role)
	assert.Equal(t, 0, c.Compare(1000, 1005))
	assert.Equal(t, -1, c.Compare(1000, 1020))

	for _, d := range []DomainResolver{nil, domain} {
		_, err = Resolve(RoleSolution, "fuzzy", 0.01, d)
		assert.True(t, errors.Is(err, ErrUnknown))
	}
}
