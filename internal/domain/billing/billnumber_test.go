package billing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/domain/billing"
)

func TestNumberGenerator_Format(t *testing.T) {
	g := billing.NewNumberGenerator()
	n, err := g.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(n, billing.NumberPrefix))
	tok := strings.TrimPrefix(n, billing.NumberPrefix)
	assert.Len(t, tok, 25)
	assert.Equal(t, strings.ToUpper(tok), tok, "token is upper case")
}

func TestNumberGenerator_PairwiseUnique(t *testing.T) {
	g := billing.NewNumberGenerator()
	seen := make(map[string]struct{}, 10_000)
	for i := 0; i < 10_000; i++ {
		n, err := g.Generate()
		require.NoError(t, err)
		_, dup := seen[n]
		require.Falsef(t, dup, "duplicate bill number %s at iteration %d", n, i)
		seen[n] = struct{}{}
	}
}
