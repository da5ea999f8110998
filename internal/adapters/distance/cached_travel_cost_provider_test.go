package distance

import (
	"context"
	"errors"
	"testing"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTravelCostCache struct {
	m       map[ports.CoordinatePair]ports.TravelCost
	readErr error
}

func (c *memTravelCostCache) GetMany(_ context.Context, pairs []ports.CoordinatePair) (map[ports.CoordinatePair]ports.TravelCost, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	out := map[ports.CoordinatePair]ports.TravelCost{}
	for _, p := range pairs {
		if v, ok := c.m[p]; ok {
			out[p] = v
		}
	}
	return out, nil
}

func (c *memTravelCostCache) PutMany(_ context.Context, costs map[ports.CoordinatePair]ports.TravelCost) error {
	for k, v := range costs {
		c.m[k] = v
	}
	return nil
}

func TestCachedTravelCostProviderServesRepeatsFromCache(t *testing.T) {
	mock := NewMockTravelCostProvider([]MockPair{
		{From: pA, To: pC, Status: "NO_ROUTE"},
	}).WithMaxElements(25)
	cache := &memTravelCostCache{m: map[ports.CoordinatePair]ports.TravelCost{}}

	p, err := NewCachedTravelCostProvider(mock, cache)
	require.NoError(t, err)
	assert.Equal(t, 25, p.MaxMatrixElements())

	coords := []domain.Coordinates{pA, pB}
	first, err := p.GetMatrix(context.Background(), coords, coords)
	require.NoError(t, err)
	require.Len(t, mock.Calls(), 1)

	second, err := p.GetMatrix(context.Background(), coords, coords)
	require.NoError(t, err)
	assert.Len(t, mock.Calls(), 1, "fully cached request must not reach the provider")
	assert.Equal(t, first[0][1], second[0][1])
	assert.Equal(t, ports.ElementOK, second[0][0].Status)

	// unroutable pairs are never cached, so requests touching them go upstream
	_, err = p.GetMatrix(context.Background(), []domain.Coordinates{pA}, []domain.Coordinates{pC})
	require.NoError(t, err)
	_, err = p.GetMatrix(context.Background(), []domain.Coordinates{pA}, []domain.Coordinates{pC})
	require.NoError(t, err)
	assert.Len(t, mock.Calls(), 3)
}

func TestCachedTravelCostProviderToleratesCacheFailure(t *testing.T) {
	mock := NewMockTravelCostProvider(nil)
	cache := &memTravelCostCache{m: map[ports.CoordinatePair]ports.TravelCost{}, readErr: errors.New("disk on fire")}

	p, err := NewCachedTravelCostProvider(mock, cache)
	require.NoError(t, err)

	out, err := p.GetMatrix(context.Background(), []domain.Coordinates{pA}, []domain.Coordinates{pB})
	require.NoError(t, err)
	assert.Equal(t, ports.ElementOK, out[0][0].Status)
}

func TestCachedTravelCostProviderPropagatesProviderError(t *testing.T) {
	p, err := NewCachedTravelCostProvider(FailingTravelCostProvider{}, &memTravelCostCache{m: map[ports.CoordinatePair]ports.TravelCost{}})
	require.NoError(t, err)

	_, err = p.GetMatrix(context.Background(), []domain.Coordinates{pA}, []domain.Coordinates{pB})
	assert.Error(t, err)

	_, err = NewCachedTravelCostProvider(nil, nil)
	assert.Error(t, err)
}
