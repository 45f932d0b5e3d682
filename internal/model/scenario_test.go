package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReplicationSet_CopiesInput(t *testing.T) {
	in := []float64{1, 2, 3}
	rs, err := NewReplicationSet("base", in)
	require.NoError(t, err)

	in[0] = 99
	assert.Equal(t, 1.0, rs.At(0))

	out := rs.Values()
	out[1] = 99
	assert.Equal(t, 2.0, rs.At(1))
	assert.Equal(t, 3, rs.Len())
	assert.Equal(t, "base", rs.Label())
}

func TestNewReplicationSet_RejectsNonFinite(t *testing.T) {
	_, err := NewReplicationSet("bad", []float64{1, math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewReplicationSet("bad", []float64{math.Inf(1)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestScenarios_Labels(t *testing.T) {
	sc := Scenarios{
		MustReplicationSet("", 1),
		MustReplicationSet("fast", 2),
		MustReplicationSet("", 3),
	}
	assert.Equal(t, []string{"S1", "fast", "S3"}, sc.Labels())
}

func TestScenarios_Validate(t *testing.T) {
	assert.ErrorIs(t, Scenarios{}.Validate(), ErrInsufficientData)

	sc := Scenarios{MustReplicationSet("", 1, 2), MustReplicationSet("")}
	err := sc.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Contains(t, err.Error(), "S2")
}

func TestScenarios_Aligned(t *testing.T) {
	aligned := Scenarios{MustReplicationSet("", 1, 2, 3), MustReplicationSet("", 4, 5, 6)}
	assert.NoError(t, aligned.Aligned())

	ragged := Scenarios{MustReplicationSet("", 1, 2, 3), MustReplicationSet("", 4, 5)}
	assert.ErrorIs(t, ragged.Aligned(), ErrMisalignedScenarios)
}

func TestScenarios_Subset(t *testing.T) {
	sc := Scenarios{MustReplicationSet("a", 1), MustReplicationSet("b", 2), MustReplicationSet("c", 3)}

	sub, err := sc.Subset([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, sub.Labels())

	_, err = sc.Subset([]int{3})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, []int{0, 1, 2}, sc.AllIndices())
}

func TestMatrixFromSeries_Transposes(t *testing.T) {
	m, err := MatrixFromSeries([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	assert.Equal(t, 3, m.NBoots())
	assert.Equal(t, 2, m.NScenarios())
	assert.Equal(t, []float64{1, 4}, m[0])
	assert.Equal(t, []float64{5, 6}, []float64{m[1][1], m[2][1]})
	assert.Equal(t, []float64{4, 5, 6}, m.Column(1))
	assert.NoError(t, m.Validate())
}

func TestMatrixFromSeries_RejectsRagged(t *testing.T) {
	_, err := MatrixFromSeries([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = MatrixFromSeries(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	assert.ErrorIs(t, ResampleMatrix{}.Validate(), ErrInsufficientData)
}
