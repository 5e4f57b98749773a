package calc

import (
	"testing"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateFittings(t *testing.T) {
	f, err := EstimateFittings(5, 2)
	require.NoError(t, err)
	assert.Equal(t, Fittings{Elbows90: 10, Tees: 1, Valves: 1, CheckValves: 1, Filters: 1}, f)

	f, err = EstimateFittings(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Tees)
	assert.Equal(t, 0, f.Elbows90)

	_, err = EstimateFittings(-1, 1)
	assert.True(t, domain.IsValidationError(err))
}

func TestSingularLoss(t *testing.T) {
	f := Fittings{Elbows90: 2, Elbows45: 1, Tees: 1, Valves: 1, CheckValves: 1, Filters: 1}
	assert.InDelta(t, 2*0.9+0.4+1.8+0.2+2.5+5.0, f.SumK(), 1e-12)

	hs, err := SingularLoss(2, f)
	require.NoError(t, err)
	assert.InDelta(t, f.SumK()*4/(2*9.81), hs, 1e-12)

	hs, err = SingularLoss(0, f)
	require.NoError(t, err)
	assert.Zero(t, hs)
}

func TestTotalDynamicHead(t *testing.T) {
	tdh, err := TotalDynamicHead(1.5, 0.3, 2.5)
	require.NoError(t, err)
	assert.InDelta(t, (1.5+0.3+2.5+10)*1.15, tdh, 1e-12)

	_, err = TotalDynamicHead(-1, 0, 0)
	assert.True(t, domain.IsValidationError(err))
}
