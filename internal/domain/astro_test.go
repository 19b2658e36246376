package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLongitude(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359.9, 359.9},
		{360, 0},
		{390, 30},
		{720, 0},
		{-30, 330},
		{-360, 0},
		{-0.5, 359.5},
	}

	for _, c := range cases {
		assert.InDelta(t, c.want, NormalizeLongitude(c.in), 1e-9, "lon=%v", c.in)
	}
}

func TestClassify_SignBoundaries(t *testing.T) {
	// долгота ровно на границе 30k° принадлежит знаку, начинающемуся с неё
	for i := 0; i < 12; i++ {
		lon := float64(i * DegreesPerSign)
		p := Classify(lon)
		assert.Equal(t, ZodiacSign(i), p.Sign, "lon=%v", lon)
		assert.Equal(t, 0, p.Degree)
		assert.Equal(t, 0, p.Minute)
	}

	// чуть ниже границы - ещё предыдущий знак
	p := Classify(29.999)
	assert.Equal(t, Aries, p.Sign)
	assert.Equal(t, 29, p.Degree)
}

func TestClassify_DegreeMinute(t *testing.T) {
	p := Classify(45.5) // 15°30' тельца
	assert.Equal(t, Taurus, p.Sign)
	assert.Equal(t, 15, p.Degree)
	assert.Equal(t, 30, p.Minute)
	assert.Equal(t, "15° 30'", p.PositionFa())

	p = Classify(359.999)
	assert.Equal(t, Pisces, p.Sign)
	assert.Equal(t, 29, p.Degree)
	assert.Equal(t, 59, p.Minute)
}

func TestClassify_NegativeAndOverflow(t *testing.T) {
	p := Classify(-15)
	assert.Equal(t, Pisces, p.Sign)
	assert.InDelta(t, 345, p.Longitude, 1e-9)

	p = Classify(405)
	assert.Equal(t, Taurus, p.Sign)
	assert.Equal(t, 15, p.Degree)
}

func TestClassify_RangesForArbitraryLongitudes(t *testing.T) {
	for lon := -720.0; lon < 720; lon += 7.3 {
		p := Classify(lon)
		require.GreaterOrEqual(t, int(p.Sign), 0, "lon=%v", lon)
		require.LessOrEqual(t, int(p.Sign), 11, "lon=%v", lon)
		require.GreaterOrEqual(t, p.Degree, 0)
		require.Less(t, p.Degree, DegreesPerSign)
		require.GreaterOrEqual(t, p.Minute, 0)
		require.Less(t, p.Minute, 60)
		require.GreaterOrEqual(t, p.Longitude, 0.0)
		require.Less(t, p.Longitude, 360.0)
	}
}

func TestZodiacSignNames(t *testing.T) {
	assert.Equal(t, "حمل", Aries.NameFa())
	assert.Equal(t, "حوت", Pisces.NameFa())
	assert.Equal(t, "Aries", Aries.String())
	assert.Equal(t, "؟", ZodiacSign(12).NameFa())
}

func TestTrackedBodies(t *testing.T) {
	bodies := TrackedBodies()
	require.Len(t, bodies, 10)
	assert.Equal(t, BodySun, bodies[0])
	assert.Equal(t, BodyPluto, bodies[9])

	for _, b := range bodies {
		assert.True(t, b.IsValid(), "body=%s", b)
		assert.NotEmpty(t, b.NameFa())
	}
	assert.False(t, TrackedBody("vulcan").IsValid())
}

func TestNatalChartResult_SuccessCount(t *testing.T) {
	chart := &NatalChartResult{
		Bodies: []BodyPlacement{
			{Body: BodySun, Placement: &ZodiacPlacement{Sign: Aries}},
			{Body: BodyMoon, Err: "ephemeris failure"},
			{Body: BodyMars, Placement: &ZodiacPlacement{Sign: Leo}},
		},
	}
	assert.Equal(t, 2, chart.SuccessCount())
}

func TestConversationSession_Reset(t *testing.T) {
	s := NewSession(42)
	require.Equal(t, StepStart, s.Step)

	s.Step = StepAwaitingPlace
	s.Year, s.Month, s.Day = 1370, 1, 1
	s.Hour, s.Minute = 8, 30
	s.DateInput = "1370/01/01"
	s.TimeInput = "08:30"

	s.Reset()
	assert.Equal(t, StepStart, s.Step)
	assert.Equal(t, int64(42), s.ChatID)
	assert.Zero(t, s.Year)
	assert.Zero(t, s.Hour)
	assert.Empty(t, s.DateInput)
	assert.Empty(t, s.TimeInput)
}

func TestConversationStep_IsValid(t *testing.T) {
	for _, step := range []ConversationStep{StepStart, StepAwaitingDate, StepAwaitingTime, StepAwaitingPlace} {
		assert.True(t, step.IsValid(), fmt.Sprintf("step=%s", step))
	}
	assert.False(t, ConversationStep("PAYMENT").IsValid())
}
