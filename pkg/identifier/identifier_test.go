package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSingleID(t *testing.T) {
	res, err := Normalize([]ID{ByID(42)}, nil)
	require.NoError(t, err)
	assert.True(t, res.IsSingle)
	require.Len(t, res.Items, 1)
	require.NotNil(t, res.Items[0].ID)
	assert.Equal(t, int64(42), *res.Items[0].ID)
}

func TestNormalizeMixedPreservesOrder(t *testing.T) {
	res, err := Normalize(
		[]ID{ByID(10), ByID(20)},
		[]ID{ByExternalID("abc")},
	)
	require.NoError(t, err)
	assert.False(t, res.IsSingle)
	require.Len(t, res.Items, 3)
	assert.Equal(t, int64(10), *res.Items[0].ID)
	assert.Equal(t, int64(20), *res.Items[1].ID)
	assert.Equal(t, "abc", *res.Items[2].ExternalID)
}

func TestNormalizeRejectsEmpty(t *testing.T) {
	_, err := Normalize(nil, nil)
	require.Error(t, err)
}

func TestNormalizeCarriesPerSeriesAggregates(t *testing.T) {
	res, err := Normalize([]ID{ByID(1).WithAggregates(Average, Max)}, nil)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].HasAggregates)
	assert.Equal(t, []Aggregate{Average, Max}, res.Items[0].Aggregates)
}

func TestIsSingleFalseWhenBothArgsGiven(t *testing.T) {
	res, err := Normalize([]ID{ByID(1)}, []ID{ByExternalID("x")})
	require.NoError(t, err)
	assert.False(t, res.IsSingle)
}
