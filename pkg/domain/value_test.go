package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/laplace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_ZeroIsUndefined(t *testing.T) {
	var v domain.Value
	assert.False(t, v.IsDefined())
	assert.Equal(t, domain.Undefined, v)
	assert.True(t, math.IsNaN(v.NaN()))
	assert.Equal(t, 10.0, v.Or(10))
}

func TestValue_JSON(t *testing.T) {
	values := []domain.Value{domain.Defined(0.5), domain.Undefined, domain.Defined(0)}

	data, err := json.Marshal(values)
	require.NoError(t, err)
	assert.JSONEq(t, `[0.5, null, 0]`, string(data))

	var decoded []domain.Value
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, values, decoded)
}
