package background_test

import (
	"testing"

	"github.com/grailbio/bio/background"
	"github.com/grailbio/testutil/assert"
)

func TestValidateNormalizesSum(t *testing.T) {
	b, err := background.Validate(background.Background{1, 1, 1, 1}, nil)
	assert.NoError(t, err)
	assert.EQ(t, b, background.Uniform)
}

func TestValidatePadsBelowMinimum(t *testing.T) {
	b, err := background.Validate(background.Background{0, 0.4, 0.4, 0.2}, nil)
	assert.NoError(t, err)
	var sum float64
	for _, v := range b {
		sum += v
		assert.True(t, v >= background.MinValue)
	}
	assert.InEpsilon(t, sum, 1.0, 1e-9)
}

func TestValidateRejectsNonPositiveSum(t *testing.T) {
	_, err := background.Validate(background.Background{0, 0, 0, 0}, nil)
	assert.Error(t, err)
}

func TestFromSlice(t *testing.T) {
	b, err := background.FromSlice([]float64{0.1, 0.4, 0.4, 0.1}, nil)
	assert.NoError(t, err)
	assert.InEpsilon(t, b[0], 0.1, 1e-9)
	assert.InEpsilon(t, b[1], 0.4, 1e-9)

	_, err = background.FromSlice([]float64{0.1, 0.4, 0.4}, nil)
	assert.Error(t, err)
}
