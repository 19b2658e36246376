package jalali

import (
	"testing"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	year, month, day, err := ParseDate("1370/01/01")
	require.NoError(t, err)
	assert.Equal(t, 1370, year)
	assert.Equal(t, 1, month)
	assert.Equal(t, 1, day)

	// одно- и двузначные части допустимы
	year, month, day, err = ParseDate(" 1402/7/5 ")
	require.NoError(t, err)
	assert.Equal(t, 1402, year)
	assert.Equal(t, 7, month)
	assert.Equal(t, 5, day)
}

func TestParseDate_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"1370-01-01",
		"1370/01",
		"1370/01/01/05",
		"abcd/01/01",
		"1370/13/01",
		"1370/00/10",
		"1370/01/00",
		"1370/01/32",
	}
	for _, s := range invalid {
		_, _, _, err := ParseDate(s)
		assert.ErrorIs(t, err, domain.ErrInvalidCalendarDate, "input=%q", s)
	}
}

func TestValidateDate_MonthLengths(t *testing.T) {
	// месяцы 1-6 по 31 дню
	assert.NoError(t, ValidateDate(1370, 1, 31))
	assert.Error(t, ValidateDate(1370, 1, 32))

	// месяцы 7-11 по 30 дней
	assert.NoError(t, ValidateDate(1370, 7, 30))
	assert.Error(t, ValidateDate(1370, 7, 31))

	// эсфанд невисокосного года - 29 дней
	require.False(t, IsLeapYear(1402))
	assert.NoError(t, ValidateDate(1402, 12, 29))
	assert.Error(t, ValidateDate(1402, 12, 30))

	// високосный год - 30
	require.True(t, IsLeapYear(1403))
	assert.NoError(t, ValidateDate(1403, 12, 30))
}

func TestMonthDays(t *testing.T) {
	assert.Equal(t, 31, MonthDays(1370, 3))
	assert.Equal(t, 30, MonthDays(1370, 9))
	assert.Equal(t, 0, MonthDays(1370, 13))
}

func TestToUTC(t *testing.T) {
	loc := DefaultLocation()

	m, err := ToUTC(1370, 1, 1, 8, 30, loc)
	require.NoError(t, err)

	// 1 фарвардина 1370 = 21 марта 1991
	assert.Equal(t, "1370/01/01", m.CivilDate)
	assert.Equal(t, "08:30", m.CivilTime)
	assert.Equal(t, "Asia/Tehran", m.TimeZone)
	assert.True(t, m.UTC.Equal(time.Date(1991, time.March, 21, 8, 30, 0, 0, loc)))
	assert.Equal(t, time.UTC, m.UTC.Location())

	local := m.UTC.In(loc)
	assert.Equal(t, 1991, local.Year())
	assert.Equal(t, time.March, local.Month())
	assert.Equal(t, 21, local.Day())
	assert.Equal(t, 8, local.Hour())
	assert.Equal(t, 30, local.Minute())
}

func TestToUTC_NilLocationDefaultsToTehran(t *testing.T) {
	m, err := ToUTC(1370, 1, 1, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tehran", m.TimeZone)
}

func TestToUTC_RejectsBadClock(t *testing.T) {
	_, err := ToUTC(1370, 1, 1, 24, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCalendarDate)

	_, err = ToUTC(1370, 1, 1, 12, 60, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCalendarDate)

	_, err = ToUTC(1370, 1, 1, -1, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCalendarDate)
}

func TestFormatCivil_RoundTrip(t *testing.T) {
	loc := DefaultLocation()
	m, err := ToUTC(1375, 6, 15, 14, 45, loc)
	require.NoError(t, err)

	assert.Equal(t, "1375/06/15 14:45", FormatCivil(m, loc))
}
