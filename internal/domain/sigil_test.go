package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSigilValues(t *testing.T) {
	values, err := ParseSigilValues("10, 20.5, 30")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20.5, 30}, values)

	// пробелы вокруг элементов не мешают
	values, err = ParseSigilValues("  7 ,3.25")
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 3.25}, values)

	// одно число без запятых тоже валидно
	values, err = ParseSigilValues("42")
	require.NoError(t, err)
	assert.Equal(t, []float64{42}, values)
}

func TestParseSigilValues_InvalidItemReportsIndex(t *testing.T) {
	_, err := ParseSigilValues("10, abc, 30")
	require.Error(t, err)

	var inputErr *SigilInputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, 1, inputErr.Index)
	assert.Equal(t, "abc", inputErr.Value)

	// пустой элемент между запятыми тоже невалиден
	_, err = ParseSigilValues("10,,30")
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, 1, inputErr.Index)
}

func TestParseSigilValues_Empty(t *testing.T) {
	for _, in := range []string{"", "   "} {
		_, err := ParseSigilValues(in)
		assert.ErrorIs(t, err, ErrSigilEmptyInput, "input=%q", in)
	}
}

func TestBuildSigilReport(t *testing.T) {
	report := BuildSigilReport([]float64{10, 20.5, 30})

	assert.InDelta(t, 60.5, report.Sum, 1e-9)
	assert.InDelta(t, 60.5/3, report.Average, 1e-9)
	assert.Len(t, report.Values, 3)
	assert.False(t, report.GeneratedAt.IsZero())
}
